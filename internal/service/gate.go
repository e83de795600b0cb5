package service

import (
	"strings"

	"health_guardian/internal/domain"
	"health_guardian/internal/utils"
)

// Gate turns bearer credentials into verified principals
type Gate struct {
	secret string
}

// NewGate creates a Gate verifying tokens signed with secret
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Verify checks the credential and returns the identity it encodes
func (g *Gate) Verify(token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	claims, err := utils.ParseJWT(token, g.secret)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleUser {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return domain.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}
