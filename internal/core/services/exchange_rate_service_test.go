package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/finbase/currency_exchange_app/internal/core/ports/repositories"
	"github.com/finbase/currency_exchange_app/internal/core/services"
	"github.com/finbase/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestRateAsOf(ctx context.Context, code domain.CurrencyCode, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, code, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) CountRatesForCurrency(ctx context.Context, currencyID string) (int, error) {
	args := m.Called(ctx, currencyID)
	return args.Int(0), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, params portsrepo.ListExchangeRatesParams) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeleteExchangeRate(ctx context.Context, rateID string) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}

// --- Mock BaseCurrencyService ---
type MockBaseCurrencyService struct {
	mock.Mock
}

func (m *MockBaseCurrencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockBaseCurrencyService) SetBaseCurrency(ctx context.Context, code string, updaterUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, code, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockBase         *MockBaseCurrencyService
	mockRefChecker   *MockReferenceChecker
	service          *services.ExchangeRateService
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockBase = new(MockBaseCurrencyService)
	suite.mockRefChecker = new(MockReferenceChecker)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, suite.mockCurrencyRepo, suite.mockBase, suite.mockRefChecker)
}

// yesterdayUTC gives a rate date that is always valid (never in the future).
func yesterdayUTC() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	currencyID := uuid.NewString()
	currency := &domain.Currency{CurrencyID: currencyID, Code: "EUR", IsActive: true}
	rateDate := yesterdayUTC()
	req := dto.CreateExchangeRateRequest{
		CurrencyID: currencyID,
		Rate:       decimal.RequireFromString("0.85"),
		RateDate:   rateDate,
	}

	suite.mockCurrencyRepo.On("FindCurrencyByID", ctx, currencyID).Return(currency, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyID == currencyID && r.Rate.Equal(req.Rate) && r.RateDate.Equal(rateDate) &&
			r.Source == domain.RateSourceManual && r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal(domain.RateSourceManual, rate.Source)
	suite.True(rate.Rate.Equal(req.Rate))
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyID: uuid.NewString(),
		Rate:       decimal.Zero,
		RateDate:   yesterdayUTC(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_TooManyFractionalDigits() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyID: uuid.NewString(),
		Rate:       decimal.RequireFromString("0.1234567"),
		RateDate:   yesterdayUTC(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_FutureDateRejected() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyID: uuid.NewString(),
		Rate:       decimal.RequireFromString("1.1"),
		RateDate:   time.Now().UTC().AddDate(0, 0, 2),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "FindCurrencyByID", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_CurrencyNotFound() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		CurrencyID: currencyID,
		Rate:       decimal.RequireFromString("1.1"),
		RateDate:   yesterdayUTC(),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByID", ctx, currencyID).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_DuplicateDate() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	currency := &domain.Currency{CurrencyID: currencyID, Code: "EUR", IsActive: true}
	req := dto.CreateExchangeRateRequest{
		CurrencyID: currencyID,
		Rate:       decimal.RequireFromString("0.86"),
		RateDate:   yesterdayUTC(),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByID", ctx, currencyID).Return(currency, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(apperrors.ErrDuplicate).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetLatestRateAsOf_Success() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	expected := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		Rate:           decimal.RequireFromString("0.85"),
		RateDate:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRateRepo.On("FindLatestRateAsOf", ctx, domain.CurrencyCode("EUR"), asOf).Return(expected, nil).Once()

	rate, err := suite.service.GetLatestRateAsOf(ctx, "eur", asOf)

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetLatestRateAsOf_ZeroTimeDefaultsToToday() {
	ctx := context.Background()
	todayDate := time.Now().UTC().Truncate(24 * time.Hour)
	expected := &domain.ExchangeRate{ExchangeRateID: uuid.NewString()}

	suite.mockRateRepo.On("FindLatestRateAsOf", ctx, domain.CurrencyCode("EUR"), mock.MatchedBy(func(asOf time.Time) bool {
		return !asOf.Before(todayDate)
	})).Return(expected, nil).Once()

	rate, err := suite.service.GetLatestRateAsOf(ctx, "EUR", time.Time{})

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetLatestRateAsOf_NotFound() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("FindLatestRateAsOf", ctx, domain.CurrencyCode("XXX"), asOf).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetLatestRateAsOf(ctx, "XXX", asOf)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_MutableFieldsOnly() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	rateID := uuid.NewString()
	currencyID := uuid.NewString()
	rateDate := yesterdayUTC()
	existing := &domain.ExchangeRate{
		ExchangeRateID: rateID,
		CurrencyID:     currencyID,
		Rate:           decimal.RequireFromString("0.85"),
		RateDate:       rateDate,
		Source:         domain.RateSourceManual,
	}
	newRate := decimal.RequireFromString("0.86")
	req := dto.UpdateExchangeRateRequest{Rate: &newRate}

	suite.mockRateRepo.On("FindExchangeRateByID", ctx, rateID).Return(existing, nil).Once()
	suite.mockRateRepo.On("UpdateExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.Rate.Equal(newRate) && r.CurrencyID == currencyID && r.RateDate.Equal(rateDate) &&
			r.LastUpdatedBy == updaterUserID
	})).Return(nil).Once()

	rate, err := suite.service.UpdateExchangeRate(ctx, rateID, req, updaterUserID)

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(newRate))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_InvalidRateRejected() {
	ctx := context.Background()
	rateID := uuid.NewString()
	existing := &domain.ExchangeRate{ExchangeRateID: rateID, Rate: decimal.RequireFromString("0.85")}
	negative := decimal.RequireFromString("-1")
	req := dto.UpdateExchangeRateRequest{Rate: &negative}

	suite.mockRateRepo.On("FindExchangeRateByID", ctx, rateID).Return(existing, nil).Once()

	rate, err := suite.service.UpdateExchangeRate(ctx, rateID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpdateExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestDeleteExchangeRate_Success() {
	ctx := context.Background()
	rateID := uuid.NewString()
	existing := &domain.ExchangeRate{ExchangeRateID: rateID}

	suite.mockRateRepo.On("FindExchangeRateByID", ctx, rateID).Return(existing, nil).Once()
	suite.mockRefChecker.On("HasUsages", ctx, rateID).Return(false, nil).Once()
	suite.mockRateRepo.On("DeleteExchangeRate", ctx, rateID).Return(nil).Once()

	err := suite.service.DeleteExchangeRate(ctx, rateID)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockRefChecker.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestDeleteExchangeRate_BlockedByUsages() {
	ctx := context.Background()
	rateID := uuid.NewString()
	existing := &domain.ExchangeRate{ExchangeRateID: rateID}

	suite.mockRateRepo.On("FindExchangeRateByID", ctx, rateID).Return(existing, nil).Once()
	suite.mockRefChecker.On("HasUsages", ctx, rateID).Return(true, nil).Once()

	err := suite.service.DeleteExchangeRate(ctx, rateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "DeleteExchangeRate", mock.Anything, mock.Anything)
	suite.mockRefChecker.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestEnsureRateExists_SeedsWhenMissing() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	currencyID := uuid.NewString()
	currency := &domain.Currency{CurrencyID: currencyID, Code: "EUR", IsActive: true}
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}

	suite.mockCurrencyRepo.On("FindCurrencyByID", ctx, currencyID).Return(currency, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(base, nil).Once()
	suite.mockRateRepo.On("CountRatesForCurrency", ctx, currencyID).Return(0, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyID == currencyID && r.Rate.Equal(decimal.NewFromInt(1)) &&
			r.Source == domain.RateSourceSystem && r.Provider == domain.DefaultRateProvider &&
			r.CreatedBy == actorUserID
	})).Return(nil).Once()

	err := suite.service.EnsureRateExists(ctx, currencyID, actorUserID)

	suite.Require().NoError(err)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
	suite.mockBase.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestEnsureRateExists_SkipsBaseCurrency() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	currency := &domain.Currency{CurrencyID: currencyID, Code: "USD", IsActive: true}

	suite.mockCurrencyRepo.On("FindCurrencyByID", ctx, currencyID).Return(currency, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(currency, nil).Once()

	err := suite.service.EnsureRateExists(ctx, currencyID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "CountRatesForCurrency", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestEnsureRateExists_NoopWhenRatePresent() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	currency := &domain.Currency{CurrencyID: currencyID, Code: "EUR", IsActive: true}
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}

	suite.mockCurrencyRepo.On("FindCurrencyByID", ctx, currencyID).Return(currency, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(base, nil).Once()
	suite.mockRateRepo.On("CountRatesForCurrency", ctx, currencyID).Return(1, nil).Once()

	err := suite.service.EnsureRateExists(ctx, currencyID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestEnsureRateExists_DuplicateRaceIsSuccess() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	currency := &domain.Currency{CurrencyID: currencyID, Code: "EUR", IsActive: true}
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}

	suite.mockCurrencyRepo.On("FindCurrencyByID", ctx, currencyID).Return(currency, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(base, nil).Once()
	suite.mockRateRepo.On("CountRatesForCurrency", ctx, currencyID).Return(0, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(apperrors.ErrDuplicate).Once()

	err := suite.service.EnsureRateExists(ctx, currencyID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
