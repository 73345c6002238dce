package cache_test

import (
	"testing"
	"time"

	"github.com/odlemon/khaya-portal-sub000/internal/infra/cache"
)

func TestRoundTrip(t *testing.T) {
	c := cache.New[int](time.Minute)

	c.Set("dashboard", 42)
	got, ok := c.Get("dashboard")
	if !ok || got != 42 {
		t.Fatalf("Get = (%d, %v), want (42, true)", got, ok)
	}
}

func TestMissOnUnknownKey(t *testing.T) {
	c := cache.New[int](time.Minute)

	if _, ok := c.Get("never-set"); ok {
		t.Fatal("unknown key reported a hit")
	}
}

func TestExpiredEntryReadsAsAbsent(t *testing.T) {
	c := cache.New[string](20 * time.Millisecond)

	c.Set("earnings", "payload")
	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("earnings"); ok {
		t.Fatal("expired entry still readable")
	}
}

func TestDeleteDropsKey(t *testing.T) {
	c := cache.New[string](time.Minute)

	c.Set("report", "x")
	c.Delete("report")

	if _, ok := c.Get("report"); ok {
		t.Fatal("deleted key still readable")
	}
}

func TestSetRefreshesDeadline(t *testing.T) {
	c := cache.New[string](60 * time.Millisecond)

	c.Set("k", "v1")
	time.Sleep(40 * time.Millisecond)
	c.Set("k", "v2")
	time.Sleep(40 * time.Millisecond)

	got, ok := c.Get("k")
	if !ok || got != "v2" {
		t.Fatalf("Get = (%q, %v), want refreshed v2", got, ok)
	}
}
