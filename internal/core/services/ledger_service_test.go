package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizledger/bizops_backend/internal/apperrors"
	"github.com/bizledger/bizops_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizops_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizops_backend/internal/core/ports/services"
	"github.com/bizledger/bizops_backend/internal/core/services"
	"github.com/bizledger/bizops_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, []domain.LedgerLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Get(1).([]domain.LedgerLine), args.Error(2)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, from, to time.Time, filter *domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, from, to, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) GetFinancialMetrics(ctx context.Context, from, to time.Time) (*domain.FinancialMetrics, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialMetrics), args.Error(1)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.LedgerService
	cashAccountID  string
	rentAccountID  string
	userID         string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo)
	suite.cashAccountID = uuid.NewString()
	suite.rentAccountID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) rentDraft() domain.DraftEntry {
	return domain.DraftEntry{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Office rent March",
		Lines: []domain.DraftLine{
			{AccountID: suite.rentAccountID, DebitAmount: decimal.NewFromInt(5000)},
			{AccountID: suite.cashAccountID, CreditAmount: decimal.NewFromInt(5000)},
		},
	}
}

// --- Validation Cases ---

func (suite *LedgerServiceTestSuite) TestValidateDraft_Valid() {
	errs := suite.service.ValidateDraft(suite.rentDraft())
	suite.Empty(errs)
}

func (suite *LedgerServiceTestSuite) TestValidateDraft_MissingEverything() {
	errs := suite.service.ValidateDraft(domain.DraftEntry{})

	suite.Contains(errs, "date")
	suite.Contains(errs, "description")
	suite.Contains(errs, "lines")
}

func (suite *LedgerServiceTestSuite) TestValidateDraft_ReportsAllProblemsAtOnce() {
	draft := domain.DraftEntry{
		Lines: []domain.DraftLine{
			{AccountID: "", DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccountID},
		},
	}

	errs := suite.service.ValidateDraft(draft)

	suite.Contains(errs, "date")
	suite.Contains(errs, "description")
	suite.Contains(errs, "line0Account")
	suite.Contains(errs, "line1Amount")
	suite.Contains(errs, "balance")
	suite.Equal("account is required", errs["line0Account"])
	suite.Equal("amount required", errs["line1Amount"])
}

func (suite *LedgerServiceTestSuite) TestValidateDraft_LineExclusivity() {
	draft := suite.rentDraft()
	draft.Lines[0] = domain.DraftLine{
		AccountID:    suite.rentAccountID,
		DebitAmount:  decimal.NewFromInt(5000),
		CreditAmount: decimal.NewFromInt(5000),
	}

	errs := suite.service.ValidateDraft(draft)

	suite.Equal("cannot have both debit and credit", errs["line0Amount"])
}

func (suite *LedgerServiceTestSuite) TestValidateDraft_NegativeAmount() {
	draft := suite.rentDraft()
	draft.Lines[1].CreditAmount = decimal.NewFromInt(-5000)

	errs := suite.service.ValidateDraft(draft)

	suite.Equal("amount cannot be negative", errs["line1Amount"])
}

func (suite *LedgerServiceTestSuite) TestValidateDraft_BalanceWithinTolerance() {
	draft := suite.rentDraft()
	draft.Lines[1].CreditAmount = decimal.RequireFromString("5000.01")

	errs := suite.service.ValidateDraft(draft)

	suite.NotContains(errs, "balance")
	suite.Empty(errs)
}

func (suite *LedgerServiceTestSuite) TestValidateDraft_BalanceBeyondTolerance() {
	draft := suite.rentDraft()
	draft.Lines[1].CreditAmount = decimal.RequireFromString("5000.02")

	errs := suite.service.ValidateDraft(draft)

	suite.Contains(errs, "balance")
	suite.Contains(errs["balance"], "5000")
	suite.Contains(errs["balance"], "5000.02")
}

func (suite *LedgerServiceTestSuite) TestValidateDraft_CrossSumsBalance() {
	draft := domain.DraftEntry{
		Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Description: "Split payment",
		Lines: []domain.DraftLine{
			{AccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), CreditAmount: decimal.NewFromInt(60)},
			{AccountID: uuid.NewString(), CreditAmount: decimal.NewFromInt(40)},
		},
	}

	errs := suite.service.ValidateDraft(draft)

	suite.Empty(errs)
}

// --- CreateEntry Cases ---

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Office rent March",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.rentAccountID, DebitAmount: decimal.NewFromInt(5000)},
			{AccountID: suite.cashAccountID, CreditAmount: decimal.NewFromInt(5000)},
		},
	}

	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("[]domain.LedgerLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.EntryTypeManualAdjustment, entry.EntryType)
	suite.Equal(domain.ReferenceOther, entry.ReferenceType)
	suite.Equal(domain.EntryStatusPosted, entry.Status)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(5000)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(5000)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_LinesInheritEntryDescription() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Office rent March",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.rentAccountID, DebitAmount: decimal.NewFromInt(5000), Description: "Rent expense"},
			{AccountID: suite.cashAccountID, CreditAmount: decimal.NewFromInt(5000)},
		},
	}

	var savedLines []domain.LedgerLine
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("[]domain.LedgerLine")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.LedgerLine)
		}).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(savedLines, 2)
	suite.Equal("Rent expense", savedLines[0].Description)
	suite.Equal("Office rent March", savedLines[1].Description)
	suite.Equal(savedLines[0].EntryID, savedLines[1].EntryID)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ValidationFailure() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description: "Missing date and unbalanced",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.rentAccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccountID, CreditAmount: decimal.NewFromInt(90)},
		},
	}

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.True(errors.Is(err, apperrors.ErrValidation))

	var validationErr *apperrors.ValidationError
	suite.Require().True(errors.As(err, &validationErr))
	suite.Contains(validationErr.Fields, "date")
	suite.Contains(validationErr.Fields, "balance")
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_RepoError() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Office rent March",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.rentAccountID, DebitAmount: decimal.NewFromInt(5000)},
			{AccountID: suite.cashAccountID, CreditAmount: decimal.NewFromInt(5000)},
		},
	}
	dbErr := errors.New("connection refused")

	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("[]domain.LedgerLine")).Return(dbErr).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.True(errors.Is(err, dbErr))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- ListEntries Cases ---

func (suite *LedgerServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("ListEntries", ctx, from, to, (*domain.EntryFilter)(nil), 25, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	entries, token, err := suite.service.ListEntries(ctx, from, to, nil, 0, nil)

	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.Nil(token)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListEntries_CapsLimit() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("ListEntries", ctx, from, to, (*domain.EntryFilter)(nil), 100, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	_, _, err := suite.service.ListEntries(ctx, from, to, nil, 5000, nil)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
