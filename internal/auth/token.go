package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenConfig carries the signing configuration supplied at startup. The
// secret is mandatory: there is deliberately no fallback value, so a missing
// secret fails construction instead of silently weakening signatures.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenPair bundles a freshly signed access/refresh token pair.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Claims is the JWT payload shape shared by access and refresh tokens.
type Claims struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed bearer tokens. Tokens are stateless:
// validity is signature plus expiry, there is no server-side revocation list.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService validates cfg and returns a ready service. It fails closed
// when the secret is unset.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: signing secret is not configured")
	}
	svc := &TokenService{
		secret:     []byte(secret),
		issuer:     strings.TrimSpace(cfg.Issuer),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	if svc.accessTTL <= 0 {
		svc.accessTTL = defaultAccessTTL
	}
	if svc.refreshTTL <= 0 {
		svc.refreshTTL = defaultRefreshTTL
	}
	return svc, nil
}

// Issue signs the identity twice: a short-lived access token and a long-lived
// refresh token carrying the same claim set.
func (s *TokenService) Issue(id Identity) (TokenPair, error) {
	if strings.TrimSpace(id.UserID) == "" || strings.TrimSpace(id.Role) == "" {
		return TokenPair{}, fmt.Errorf("%w: identity requires subject and role", ErrInvalidToken)
	}
	now := s.now().UTC()
	accessExp := now.Add(s.accessTTL)
	refreshExp := now.Add(s.refreshTTL)

	access, err := s.sign(id, now, accessExp)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(id, now, refreshExp)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Verify checks signature and expiry, then reconstructs the embedded identity.
// It returns ErrExpiredToken for lapsed tokens and ErrInvalidToken for every
// other failure, including payloads missing subject or role.
func (s *TokenService) Verify(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return Identity{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.Role) == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		UserID:   claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     claims.Role,
	}, nil
}

// Refresh verifies the refresh token and re-issues a brand-new pair from the
// claim embedded in it. The backing user record is not re-checked: a role
// change between issuance and refresh still yields the old privileges. That
// staleness is a property of the stateless-token design, kept on purpose.
func (s *TokenService) Refresh(refreshToken string) (TokenPair, error) {
	id, err := s.Verify(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	pair, err := s.Issue(id)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	return pair, nil
}

func (s *TokenService) sign(id Identity, now, exp time.Time) (string, error) {
	claims := Claims{
		Email:    id.Email,
		FullName: id.FullName,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
