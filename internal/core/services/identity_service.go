package services

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

const voterTokenIssuer = "quickpoll"

type identityService struct {
	secret []byte
	parser *jwt.Parser
}

// NewIdentityService returns an assigner that signs voter tokens with secret.
// Tokens carry no expiry; the browser keeps them for as long as the cookie lives.
func NewIdentityService(secret string) (ports.IdentityAssigner, error) {
	if secret == "" {
		return nil, errors.New("voter token secret is required")
	}
	return &identityService{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(voterTokenIssuer),
		),
	}, nil
}

func (s *identityService) Assign(presented string) (domain.VoterIdentity, error) {
	if presented != "" {
		if token, ok := s.verify(presented); ok {
			return domain.VoterIdentity{Token: token, Signed: presented}, nil
		}
	}

	token := uuid.NewString()
	signed, err := s.sign(token)
	if err != nil {
		return domain.VoterIdentity{}, err
	}

	return domain.VoterIdentity{Token: token, Signed: signed, Minted: true}, nil
}

func (s *identityService) verify(signed string) (string, bool) {
	claims := &jwt.RegisteredClaims{}
	_, err := s.parser.ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func (s *identityService) sign(voterToken string) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:  voterTokenIssuer,
		Subject: voterToken,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign voter token: %w", err)
	}
	return signed, nil
}
