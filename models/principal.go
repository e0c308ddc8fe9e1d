package models

// Principal is the identity resolved by the auth middleware for the current
// request. The booking engine treats it as opaque input.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
