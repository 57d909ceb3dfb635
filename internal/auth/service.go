package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/errs"
	"library-catalog/internal/shared/metrics"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/jwt"
	"library-catalog/pkg/logger"
)

const (
	failedLoginKeyPrefix = "login:failed:"

	msgWrongCredentials = "wrong credentials"
	msgTooManyAttempts  = "too many login attempts"
)

// Options tune login behaviour
type Options struct {
	// LegacyPassword authenticates users stored without a password hash.
	// Empty means such users cannot log in.
	LegacyPassword string

	// MaxFailedLogins within FailedLoginWindow block further attempts; 0 disables
	MaxFailedLogins   int
	FailedLoginWindow time.Duration
}

// Service issues tokens, resolves callers and checks credentials
type Service struct {
	users   user.Service
	tokens  *jwt.Manager
	cache   cache.Cache
	metrics *metrics.Metrics
	opts    Options
}

func NewService(users user.Service, tokens *jwt.Manager, c cache.Cache, m *metrics.Metrics, opts Options) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{
		users:   users,
		tokens:  tokens,
		cache:   c,
		metrics: m,
		opts:    opts,
	}
}

// IssueToken signs {username, id} for u
func (s *Service) IssueToken(u *user.User) (string, error) {
	token, err := s.tokens.GenerateToken(u.ID.String(), u.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// ResolveCaller turns an Authorization header value into a Caller.
// An absent header or a non-bearer scheme is Anonymous. A bearer token that
// fails verification, or names an unknown user, is an AuthenticationError.
func (s *Service) ResolveCaller(ctx context.Context, header string) (Caller, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Anonymous{}, nil
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "bearer") {
		return Anonymous{}, nil
	}

	token = strings.TrimSpace(token)
	if token == "" {
		s.metrics.TokenRejected()
		return nil, errs.NewAuthentication("missing bearer token", nil)
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		s.metrics.TokenRejected()
		log.Warn().Err(err).Msg("bearer token rejected")
		return nil, errs.NewAuthentication("invalid token", err)
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		s.metrics.TokenRejected()
		return nil, errs.NewAuthentication("invalid token", err)
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			s.metrics.TokenRejected()
			log.Warn().Str("user_id", id.String()).Msg("token references an unknown user")
			return nil, errs.NewAuthentication("invalid token", err)
		}
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}

	return Authenticated{User: u}, nil
}

// Login checks credentials and returns a signed token.
// Every credential failure carries the same message.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (string, error) {
	args := map[string]interface{}{"username": req.Username}
	key := failedLoginKeyPrefix + req.Username

	if s.throttled(ctx, key) {
		s.metrics.LoginThrottled()
		return "", errs.NewValidation(msgTooManyAttempts, args, nil)
	}

	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}

	if u == nil || req.Validate() != nil || !s.passwordMatches(u, req.Password) {
		s.recordFailure(ctx, key)
		return "", errs.NewValidation(msgWrongCredentials, args, nil)
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn("failed to clear login failures", map[string]interface{}{"error": err.Error()})
	}

	return s.IssueToken(u)
}

func (s *Service) passwordMatches(u *user.User, password string) bool {
	if u.HasPassword() {
		return bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)) == nil
	}
	if s.opts.LegacyPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.opts.LegacyPassword)) == 1
}

func (s *Service) throttled(ctx context.Context, key string) bool {
	if s.opts.MaxFailedLogins <= 0 {
		return false
	}

	var failures int64
	found, err := s.cache.Get(ctx, key, &failures)
	if err != nil {
		logger.Warn("failed to read login failures", map[string]interface{}{"error": err.Error()})
		return false
	}
	return found && failures >= int64(s.opts.MaxFailedLogins)
}

func (s *Service) recordFailure(ctx context.Context, key string) {
	s.metrics.LoginFailed()
	if s.opts.MaxFailedLogins <= 0 {
		return
	}

	// The window starts at the first failure and is never extended
	if _, err := s.cache.Increment(ctx, key, s.opts.FailedLoginWindow); err != nil {
		logger.Warn("failed to record login failure", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
