package auth

import (
	"context"

	"github.com/gmao-ics/techniciens-api/internal/model"
	"github.com/gmao-ics/techniciens-api/pkg/auth"
	apperrors "github.com/gmao-ics/techniciens-api/pkg/errors"
	"github.com/gmao-ics/techniciens-api/pkg/security"
)

// Credential is an identity record the service can authenticate against.
type Credential struct {
	ID           int
	Username     string
	Email        string
	Role         string
	PasswordHash string
}

// CredentialProvider abstracts the identity store so production wiring
// can substitute a real one for the demo list.
type CredentialProvider interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
}

type Service struct {
	credentials CredentialProvider
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
}

func NewService(credentials CredentialProvider, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{credentials: credentials, jwtSvc: jwtSvc, hasher: hasher}
}

func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	cred, err := s.credentials.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if cred == nil {
		return nil, apperrors.Unauthorized("incorrect username or password")
	}

	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized("incorrect username or password")
	}

	token, err := s.jwtSvc.GenerateToken(cred.Username, cred.ID, cred.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserInfo: model.UserInfo{
			ID:       cred.ID,
			Username: cred.Username,
			Email:    cred.Email,
			Role:     cred.Role,
		},
	}, nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	return s.jwtSvc.ValidateToken(token)
}
