package auth

import (
	"context"

	"musicstore/internal/domain"
)

// UserStore is the subset of the users collection auth relies on.
type UserStore interface {
	GetByID(id string) (domain.User, error)
	Find(pred func(domain.User) bool) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}
