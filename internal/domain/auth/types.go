package auth

// Package auth contains domain-level types for authentication against the
// department service. It is pure and free of transport concerns.

// DefaultProfile is the profile key used when a caller does not name one.
// A profile stands in for a browser profile: it holds at most one token.
const DefaultProfile = "default"

// Credentials are the inputs to a login request.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration carries the inputs for creating an account.
type Registration struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegistrationResult confirms a created account.
// Token is set only when the service issues one on registration; callers
// still log in explicitly before using it.
type RegistrationResult struct {
	Message string
	Token   string
}
