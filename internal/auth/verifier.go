package auth

import (
	"context"
	"errors"
	"strings"
)

// Credential is the transient read model used during login. The hash never
// leaves this package.
type Credential struct {
	UserID       string
	Email        string
	FullName     string
	Role         string
	Active       bool
	PasswordHash string
}

// ErrCredentialNotFound is returned by CredentialStore implementations when no
// record exists for an email. The verifier collapses it into
// ErrInvalidCredentials before anything reaches a caller.
var ErrCredentialNotFound = errors.New("auth: credential not found")

// CredentialStore is the narrow persistence view the verifier needs.
type CredentialStore interface {
	FindCredentialByEmail(ctx context.Context, email string) (Credential, error)
}

// Verifier checks login credentials against stored bcrypt hashes.
type Verifier struct {
	store CredentialStore
}

// NewVerifier constructs a Verifier over the given credential source.
func NewVerifier(store CredentialStore) (*Verifier, error) {
	if store == nil {
		return nil, errors.New("credential store is required")
	}
	return &Verifier{store: store}, nil
}

// Verify looks up the credential record for email and compares the plaintext
// password against its hash. Unknown email, disabled account and wrong
// password are indistinguishable to the caller: all return
// ErrInvalidCredentials. The lookup is read-only.
func (v *Verifier) Verify(ctx context.Context, email, password string) (Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}
	cred, err := v.store.FindCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}
	if !cred.Active {
		return Identity{}, ErrInvalidCredentials
	}
	if err := CheckPassword(cred.PasswordHash, password); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{
		UserID:   cred.UserID,
		Email:    cred.Email,
		FullName: cred.FullName,
		Role:     cred.Role,
	}, nil
}
