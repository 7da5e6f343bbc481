package ports

import "context"

// AuthService issues bearer tokens for the back-office operator.
type AuthService interface {
	Enabled() bool
	Login(ctx context.Context, username, password string) (string, error)
}
