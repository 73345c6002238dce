// Package domain holds the portal's view of the upstream API entities.
// All of these are owned and mutated by the backend; the portal keeps
// transient read-mostly copies for rendering and export.
package domain

// User is the staff/landlord/tenant profile as returned by the auth endpoints.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FirmName  string `json:"firmName,omitempty"`
	Role      string `json:"role"`
}

// FullName returns "First Last" for display and search.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Session pairs a bearer token with the user it belongs to.
// One session per portal process; see the session package for its lifecycle.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Party is a populated user sub-document embedded in agreements, payments
// and maintenance requests (the backend populates landlordId/tenantId refs).
type Party struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
