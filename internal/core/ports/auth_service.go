package ports

import "context"

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token string
	User  UserView
}

// AuthService issues credentials.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// AdminAuthenticator checks the static administrator credential. It never
// touches the identity store.
type AdminAuthenticator interface {
	Check(username, password string) bool
}
