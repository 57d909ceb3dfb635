package auth

import (
	"context"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/errs"
)

// Caller is the identity attached to one request: Anonymous or Authenticated
type Caller interface {
	isCaller()
}

// Anonymous - no credential was presented
type Anonymous struct{}

// Authenticated - a verified token referencing an existing user
type Authenticated struct {
	User *user.User
}

func (Anonymous) isCaller()     {}
func (Authenticated) isCaller() {}

type callerKey struct{}

// WithCaller attaches c to ctx
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller attached to ctx; Anonymous when there is none
func CallerFrom(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok && c != nil {
		return c
	}
	return Anonymous{}
}

// CurrentUser returns the authenticated user, or nil for anonymous callers
func CurrentUser(ctx context.Context) *user.User {
	if a, ok := CallerFrom(ctx).(Authenticated); ok {
		return a.User
	}
	return nil
}

// RequireUser is the single authorization check for protected operations
func RequireUser(ctx context.Context) (*user.User, error) {
	if u := CurrentUser(ctx); u != nil {
		return u, nil
	}
	return nil, errs.NewAuthentication("not authenticated", nil)
}
