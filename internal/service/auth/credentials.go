package auth

import (
	"context"
	"fmt"

	"github.com/gmao-ics/techniciens-api/pkg/security"
)

// demoAccount seeds the in-memory provider. Demo only; production
// deployments inject a CredentialProvider backed by a real identity store.
type demoAccount struct {
	ID       int
	Username string
	Email    string
	Role     string
	Password string
}

var demoAccounts = []demoAccount{
	{ID: 1, Username: "admin", Email: "admin@ics.sn", Role: "admin", Password: "admin123"},
	{ID: 2, Username: "manager", Email: "manager@ics.sn", Role: "manager", Password: "manager123"},
	{ID: 3, Username: "tech1", Email: "tech1@ics.sn", Role: "technicien", Password: "tech123"},
}

// InMemoryCredentials is a read-only credential list hashed at startup.
type InMemoryCredentials struct {
	byUsername map[string]*Credential
}

func NewInMemoryCredentials(hasher security.PasswordHasher) (*InMemoryCredentials, error) {
	byUsername := make(map[string]*Credential, len(demoAccounts))
	for _, acct := range demoAccounts {
		hash, err := hasher.Hash(acct.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash demo credential %q: %w", acct.Username, err)
		}
		byUsername[acct.Username] = &Credential{
			ID:           acct.ID,
			Username:     acct.Username,
			Email:        acct.Email,
			Role:         acct.Role,
			PasswordHash: string(hash),
		}
	}
	return &InMemoryCredentials{byUsername: byUsername}, nil
}

func (p *InMemoryCredentials) FindByUsername(_ context.Context, username string) (*Credential, error) {
	cred, ok := p.byUsername[username]
	if !ok {
		return nil, nil
	}
	return cred, nil
}
