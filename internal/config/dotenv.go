package config

import (
	"bufio"
	"os"
	"strings"
)

// LoadDotEnv loads KEY=VALUE pairs from a local .env file into the
// process environment. Variables already present in the environment win
// over the file, so deployment config always beats the checked-in
// defaults. A leading "export " is tolerated for files that double as
// shell scripts.
func LoadDotEnv(path string) error {
	file, err := os.Open(path)
	if err != nil {
		// Absence of a .env file is normal outside local development.
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if key == "" || os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, value)
	}
	return scanner.Err()
}
