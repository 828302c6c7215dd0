package services

import (
	"context"

	"github.com/bizledger/bizops_backend/internal/core/domain"
	"github.com/bizledger/bizops_backend/internal/dto"
)

// AccountService defines operations on the chart of accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
