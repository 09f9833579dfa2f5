package auth

import "errors"

// ErrNoIdentity is returned when a request carries no usable identity token.
var ErrNoIdentity = errors.New("auth: no identity")

// Identity is the caller identity extracted from the platform-issued token.
type Identity struct {
	Sub      string
	Email    string
	Name     string
	Username string
	Picture  string
}

// Decision is the result of authorizing an identity.
type Decision struct {
	Principal string
	IsAdmin   bool
}
