package auth

import (
	"context"
	"errors"
	"fmt"
)

// Service composes the credential verifier and token service to implement the
// login and refresh flows exposed over HTTP. Every internal token failure is
// collapsed to ErrUnauthorized here so no detail about why a token or login
// was rejected crosses the trust boundary.
type Service struct {
	verifier *Verifier
	tokens   *TokenService
}

// NewService wires the orchestrator.
func NewService(verifier *Verifier, tokens *TokenService) (*Service, error) {
	if verifier == nil || tokens == nil {
		return nil, errors.New("verifier and token service are required")
	}
	return &Service{verifier: verifier, tokens: tokens}, nil
}

// Login validates credentials and, on success, issues a token pair. Unknown
// emails and wrong passwords produce the identical error.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, error) {
	id, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return TokenPair{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return TokenPair{}, err
	}
	pair, err := s.tokens.Issue(id)
	if err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. Malformed, tampered
// and expired tokens are deliberately not distinguished.
func (s *Service) Refresh(_ context.Context, refreshToken string) (TokenPair, error) {
	pair, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: refresh token invalid or expired", ErrUnauthorized)
	}
	return pair, nil
}

// Profile returns the context-attached identity verbatim. There is no
// persistence lookup: the caller sees exactly what was embedded in the token,
// which may be stale relative to the stored user record.
func (s *Service) Profile(ctx context.Context) (Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return Identity{}, ErrUnauthorized
	}
	return id, nil
}

// Tokens exposes the underlying token service for request guards.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}
