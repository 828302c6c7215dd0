package repositories

import (
	"context"

	"github.com/bizledger/bizops_backend/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, updatedByUserID string) error
}
