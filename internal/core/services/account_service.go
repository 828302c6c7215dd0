package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizops_backend/internal/apperrors"
	"github.com/bizledger/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizops_backend/internal/core/ports/services"
	"github.com/bizledger/bizops_backend/internal/dto"
	"github.com/google/uuid"
)

const (
	defaultAccountListLimit = 50
	maxAccountListLimit     = 200
)

// accountService implements the AccountService interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepository) portssvc.AccountService {
	return &accountService{accountRepo: repo}
}

// Ensure accountService implements the AccountService interface
var _ portssvc.AccountService = (*accountService)(nil)

// CreateAccount registers a new account in the chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_name", req.Name))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a page of accounts ordered by name.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = defaultAccountListLimit
	}
	if limit > maxAccountListLimit {
		limit = maxAccountListLimit
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive. Ledger history referencing the
// account is kept; only new postings stop using it.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return apperrors.NewAppError(409, "account is already inactive", apperrors.ErrDuplicate)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
