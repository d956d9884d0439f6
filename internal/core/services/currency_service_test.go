package services_test

import (
	"context"
	"testing"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/finbase/currency_exchange_app/internal/core/ports/repositories"
	"github.com/finbase/currency_exchange_app/internal/core/services"
	"github.com/finbase/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code domain.CurrencyCode) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, params portsrepo.ListCurrenciesParams) ([]domain.Currency, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Currency), args.Int(1), args.Error(2)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Mock ReferenceChecker ---
type MockReferenceChecker struct {
	mock.Mock
}

func (m *MockReferenceChecker) HasUsages(ctx context.Context, entityID string) (bool, error) {
	args := m.Called(ctx, entityID)
	return args.Bool(0), args.Error(1)
}

// --- Mock rate seeder (write side of the exchange-rate service) ---
type MockRateSeederService struct {
	mock.Mock
}

func (m *MockRateSeederService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateSeederService) UpdateExchangeRate(ctx context.Context, rateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateSeederService) DeleteExchangeRate(ctx context.Context, rateID string) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}

func (m *MockRateSeederService) EnsureRateExists(ctx context.Context, currencyID string, actorUserID string) error {
	args := m.Called(ctx, currencyID, actorUserID)
	return args.Error(0)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockCurrencyRepository
	mockRateRepo   *MockExchangeRateRepository
	mockBase       *MockBaseCurrencyService
	mockRefChecker *MockReferenceChecker
	mockSeeder     *MockRateSeederService
	service        *services.CurrencyService
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockBase = new(MockBaseCurrencyService)
	suite.mockRefChecker = new(MockReferenceChecker)
	suite.mockSeeder = new(MockRateSeederService)
	suite.service = services.NewCurrencyService(suite.mockRepo, suite.mockRateRepo, suite.mockBase, suite.mockRefChecker)
	suite.service.SetRateSeeder(suite.mockSeeder)
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		Code:   "eur",
		Name:   "Euro",
		Symbol: "€",
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Code == domain.CurrencyCode("EUR") && c.Name == req.Name && c.Symbol == req.Symbol &&
			c.DecimalPlaces == 2 && c.IsActive && c.CreatedBy == creatorUserID && c.LastUpdatedBy == creatorUserID
	})).Return(nil).Once()
	suite.mockSeeder.On("EnsureRateExists", ctx, mock.AnythingOfType("string"), creatorUserID).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.Equal(domain.CurrencyCode("EUR"), currency.Code)
	suite.Equal(req.Name, currency.Name)
	suite.Equal(2, currency.DecimalPlaces)
	suite.True(currency.IsActive)
	suite.Equal(creatorUserID, currency.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSeeder.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_InvalidCode() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		Code: "EU1",
		Name: "Broken",
	}

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		Code: "EUR",
		Name: "Euro",
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(apperrors.ErrDuplicate).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockSeeder.AssertNotCalled(suite.T(), "EnsureRateExists", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_InactiveSkipsSeeding() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	inactive := false
	req := dto.CreateCurrencyRequest{
		Code:     "JPY",
		Name:     "Japanese Yen",
		IsActive: &inactive,
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return !c.IsActive
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.False(currency.IsActive)
	suite.mockSeeder.AssertNotCalled(suite.T(), "EnsureRateExists", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_SeedFailure() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		Code: "CHF",
		Name: "Swiss Franc",
	}
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()
	suite.mockSeeder.On("EnsureRateExists", ctx, mock.AnythingOfType("string"), creatorUserID).Return(expectedErr).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSeeder.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_InvalidDecimalPlaces() {
	ctx := context.Background()
	tooMany := 9
	req := dto.CreateCurrencyRequest{
		Code:          "BTC",
		Name:          "Bitcoin",
		DecimalPlaces: &tooMany,
	}

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NormalizesInput() {
	ctx := context.Background()
	expected := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}

	suite.mockRepo.On("FindCurrencyByCode", ctx, domain.CurrencyCode("USD")).Return(expected, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, " usd ")

	suite.Require().NoError(err)
	suite.Equal(expected, currency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByID_NotFound() {
	ctx := context.Background()
	currencyID := uuid.NewString()

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetCurrencyByID(ctx, currencyID)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_DefaultsLimit() {
	ctx := context.Background()
	expected := []domain.Currency{{Code: "EUR"}, {Code: "USD"}}

	suite.mockRepo.On("ListCurrencies", ctx, mock.MatchedBy(func(p portsrepo.ListCurrenciesParams) bool {
		return p.Limit == 50
	})).Return(expected, 2, nil).Once()

	currencies, total, err := suite.service.ListCurrencies(ctx, dto.ListCurrenciesRequest{})

	suite.Require().NoError(err)
	suite.Equal(expected, currencies)
	suite.Equal(2, total)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_ActivationBackfillsRate() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	currencyID := uuid.NewString()
	existing := &domain.Currency{
		CurrencyID: currencyID,
		Code:       "EUR",
		Name:       "Euro",
		IsActive:   false,
	}
	active := true
	req := dto.UpdateCurrencyRequest{IsActive: &active}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.IsActive && c.LastUpdatedBy == updaterUserID
	})).Return(nil).Once()
	suite.mockSeeder.On("EnsureRateExists", ctx, currencyID, updaterUserID).Return(nil).Once()

	currency, err := suite.service.UpdateCurrency(ctx, currencyID, req, updaterUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.True(currency.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSeeder.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_MetadataOnlySkipsSeeding() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	currencyID := uuid.NewString()
	existing := &domain.Currency{
		CurrencyID: currencyID,
		Code:       "EUR",
		Name:       "Euro",
		IsActive:   true,
	}
	newName := "European Euro"
	req := dto.UpdateCurrencyRequest{Name: &newName}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Name == newName
	})).Return(nil).Once()

	currency, err := suite.service.UpdateCurrency(ctx, currencyID, req, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(newName, currency.Name)
	suite.mockSeeder.AssertNotCalled(suite.T(), "EnsureRateExists", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_DeactivatingBaseCurrencyRejected() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	existing := &domain.Currency{CurrencyID: currencyID, Code: "USD", IsActive: true}
	inactive := false
	req := dto.UpdateCurrencyRequest{IsActive: &inactive}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(existing, nil).Once()

	currency, err := suite.service.UpdateCurrency(ctx, currencyID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrency", mock.Anything, mock.Anything)
	suite.mockBase.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_DeactivatingWithRatesRejected() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	existing := &domain.Currency{CurrencyID: currencyID, Code: "EUR", IsActive: true}
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}
	inactive := false
	req := dto.UpdateCurrencyRequest{IsActive: &inactive}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(base, nil).Once()
	suite.mockRateRepo.On("CountRatesForCurrency", ctx, currencyID).Return(2, nil).Once()

	currency, err := suite.service.UpdateCurrency(ctx, currencyID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrency", mock.Anything, mock.Anything)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_DeactivationAllowedWhenUnreferenced() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	currencyID := uuid.NewString()
	existing := &domain.Currency{CurrencyID: currencyID, Code: "SEK", IsActive: true}
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}
	inactive := false
	req := dto.UpdateCurrencyRequest{IsActive: &inactive}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(base, nil).Once()
	suite.mockRateRepo.On("CountRatesForCurrency", ctx, currencyID).Return(0, nil).Once()
	suite.mockRefChecker.On("HasUsages", ctx, currencyID).Return(false, nil).Once()
	suite.mockRepo.On("UpdateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return !c.IsActive && c.LastUpdatedBy == updaterUserID
	})).Return(nil).Once()

	currency, err := suite.service.UpdateCurrency(ctx, currencyID, req, updaterUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.False(currency.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDeactivateCurrency_Success() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	currencyID := uuid.NewString()
	existing := &domain.Currency{CurrencyID: currencyID, Code: "SEK", IsActive: true}
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(base, nil).Once()
	suite.mockRateRepo.On("CountRatesForCurrency", ctx, currencyID).Return(0, nil).Once()
	suite.mockRefChecker.On("HasUsages", ctx, currencyID).Return(false, nil).Once()
	suite.mockRepo.On("UpdateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return !c.IsActive && c.LastUpdatedBy == updaterUserID
	})).Return(nil).Once()

	err := suite.service.DeactivateCurrency(ctx, currencyID, updaterUserID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockBase.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockRefChecker.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDeactivateCurrency_BaseCurrencyRejected() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	existing := &domain.Currency{CurrencyID: currencyID, Code: "USD", IsActive: true}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(existing, nil).Once()

	err := suite.service.DeactivateCurrency(ctx, currencyID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrency", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockBase.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDeactivateCurrency_HasRatesRejected() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	existing := &domain.Currency{CurrencyID: currencyID, Code: "EUR", IsActive: true}
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(base, nil).Once()
	suite.mockRateRepo.On("CountRatesForCurrency", ctx, currencyID).Return(3, nil).Once()

	err := suite.service.DeactivateCurrency(ctx, currencyID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrency", mock.Anything, mock.Anything)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDeactivateCurrency_ReferencedRejected() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	existing := &domain.Currency{CurrencyID: currencyID, Code: "EUR", IsActive: true}
	base := &domain.Currency{CurrencyID: uuid.NewString(), Code: "USD"}

	suite.mockRepo.On("FindCurrencyByID", ctx, currencyID).Return(existing, nil).Once()
	suite.mockBase.On("GetBaseCurrency", ctx).Return(base, nil).Once()
	suite.mockRateRepo.On("CountRatesForCurrency", ctx, currencyID).Return(0, nil).Once()
	suite.mockRefChecker.On("HasUsages", ctx, currencyID).Return(true, nil).Once()

	err := suite.service.DeactivateCurrency(ctx, currencyID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrency", mock.Anything, mock.Anything)
	suite.mockRefChecker.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
