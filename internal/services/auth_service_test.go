package services_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"swiftstock/internal/database"
	"swiftstock/internal/models"
	"swiftstock/internal/repositories"
	"swiftstock/internal/services"
	"swiftstock/internal/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of repositories.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Create(account *models.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByEmail(email string) (*models.Account, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) List() ([]models.AccountSummary, error) {
	args := m.Called()
	return args.Get(0).([]models.AccountSummary), args.Error(1)
}

func (m *MockAccountRepository) UpdateCredentials(currentEmail, newEmail, passwordHash string) error {
	args := m.Called(currentEmail, newEmail, passwordHash)
	return args.Error(0)
}

// MockAccountTables is a mock implementation of services.AccountTables
type MockAccountTables struct {
	mock.Mock
}

func (m *MockAccountTables) EnsureAccountsTable() error {
	return m.Called().Error(0)
}

func (m *MockAccountTables) DropAccountsTable() error {
	return m.Called().Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

const testJWTSecret = "test_jwt_secret"

// newAuthService builds an AuthService over a real SQLite file and session file.
func newAuthService(t *testing.T, hasher services.PasswordHasher) (*services.AuthService, *repositories.GORMAccountRepository) {
	t.Helper()
	dir := t.TempDir()
	provider := database.NewProvider(database.Config{Driver: "sqlite", DSN: filepath.Join(dir, "swiftstock.db")})
	t.Cleanup(func() { provider.Close() })
	db, err := provider.Acquire()
	require.NoError(t, err)

	accounts := repositories.NewGORMAccountRepository(db)
	auth := services.NewAuthService(accounts, database.NewSchema(db), session.NewFileStore(filepath.Join(dir, "session.toml")), services.AuthOptions{
		Hasher:    hasher,
		JWTSecret: testJWTSecret,
	})
	return auth, accounts
}

func TestAuthService_BootstrapSeedsOnce(t *testing.T) {
	auth, accounts := newAuthService(t, nil)

	require.NoError(t, auth.Bootstrap())
	require.NoError(t, auth.Bootstrap())

	count, err := accounts.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	seed, err := accounts.GetByEmail(services.DefaultAccountEmail)
	require.NoError(t, err)
	assert.NotEqual(t, services.DefaultAccountPassword, seed.Password, "password is stored as a digest")
	// SHA-256 of "12345"
	assert.Equal(t, "5994471abb01112afcc18159f6cc74b4f511b99806da59b3caf5a9c173cacfc5", seed.Password)
}

func TestAuthService_BootstrapSkipsNonEmptyTable(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockTables := new(MockAccountTables)
	auth := services.NewAuthService(mockRepo, mockTables, session.NewFileStore(filepath.Join(t.TempDir(), "s.toml")), services.AuthOptions{JWTSecret: testJWTSecret})

	mockTables.On("EnsureAccountsTable").Return(nil).Once()
	mockRepo.On("Count").Return(int64(3), nil).Once()

	assert.NoError(t, auth.Bootstrap())
	mockRepo.AssertExpectations(t)
	mockTables.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_BootstrapFailures(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockTables := new(MockAccountTables)
	auth := services.NewAuthService(mockRepo, mockTables, session.NewFileStore(filepath.Join(t.TempDir(), "s.toml")), services.AuthOptions{JWTSecret: testJWTSecret})

	mockTables.On("EnsureAccountsTable").Return(fmt.Errorf("disk full")).Once()
	err := auth.Bootstrap()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	mockTables.On("EnsureAccountsTable").Return(nil).Once()
	mockRepo.On("Count").Return(int64(0), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Account")).Return(fmt.Errorf("database error")).Once()
	err = auth.Bootstrap()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create default account")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginLogout(t *testing.T) {
	auth, _ := newAuthService(t, nil)
	require.NoError(t, auth.Bootstrap())

	assert.False(t, auth.CheckAuth())

	assert.False(t, auth.Login(services.DefaultAccountEmail, "wrong"))
	assert.False(t, auth.CheckAuth())
	assert.False(t, auth.Login("nobody@shop.test", services.DefaultAccountPassword))

	assert.True(t, auth.Login(services.DefaultAccountEmail, services.DefaultAccountPassword))
	assert.True(t, auth.CheckAuth())
	email, ok := auth.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, services.DefaultAccountEmail, email)

	require.NoError(t, auth.Logout())
	assert.False(t, auth.CheckAuth())
}

func TestAuthService_BcryptHasher(t *testing.T) {
	auth, accounts := newAuthService(t, services.BcryptHasher{Cost: 4})
	require.NoError(t, auth.Bootstrap())

	seed, err := accounts.GetByEmail(services.DefaultAccountEmail)
	require.NoError(t, err)
	assert.Contains(t, seed.Password, "$2a$")

	assert.False(t, auth.Login(services.DefaultAccountEmail, "wrong"))
	assert.True(t, auth.Login(services.DefaultAccountEmail, services.DefaultAccountPassword))
}

func TestAuthService_UpdateAccount(t *testing.T) {
	auth, _ := newAuthService(t, nil)
	require.NoError(t, auth.Bootstrap())

	result := auth.UpdateAccount("12345", "owner@shop.test", "s3cret")
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "logged in")
	assert.ErrorIs(t, result.Err, services.ErrNotLoggedIn)

	require.True(t, auth.Login(services.DefaultAccountEmail, services.DefaultAccountPassword))

	result = auth.UpdateAccount("", "owner@shop.test", "s3cret")
	assert.Equal(t, models.Result{Success: false, Message: "All fields are required."}, result)

	result = auth.UpdateAccount("bad", "owner@shop.test", "s3cret")
	assert.False(t, result.Success)
	assert.Equal(t, "Incorrect current password.", result.Message)
	assert.ErrorIs(t, result.Err, services.ErrInvalidCredentials)

	result = auth.UpdateAccount("12345", "owner@shop.test", "s3cret")
	assert.Equal(t, models.Result{Success: true, Message: "Account updated!"}, result)

	email, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "owner@shop.test", email)

	assert.False(t, auth.Login(services.DefaultAccountEmail, services.DefaultAccountPassword))
	assert.False(t, auth.Login("owner@shop.test", "12345"))
	assert.True(t, auth.Login("owner@shop.test", "s3cret"))

	accounts, err := auth.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "owner@shop.test", accounts[0].Email)
}

func TestAuthService_UpdateAccountDuplicateEmail(t *testing.T) {
	auth, accounts := newAuthService(t, nil)
	require.NoError(t, auth.Bootstrap())
	hashed, _ := services.SHA256Hasher{}.Hash("other")
	require.NoError(t, accounts.Create(&models.Account{Email: "taken@shop.test", Password: hashed}))

	require.True(t, auth.Login(services.DefaultAccountEmail, services.DefaultAccountPassword))
	result := auth.UpdateAccount("12345", "taken@shop.test", "s3cret")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	assert.ErrorIs(t, result.Err, repositories.ErrConstraintViolation)

	email, _ := auth.CurrentUser()
	assert.Equal(t, services.DefaultAccountEmail, email, "session is unchanged")
}

func TestAuthService_ResetAccounts(t *testing.T) {
	auth, accounts := newAuthService(t, nil)
	require.NoError(t, auth.Bootstrap())
	require.NoError(t, accounts.Create(&models.Account{Email: "extra@shop.test", Password: "x"}))

	require.NoError(t, auth.ResetAccounts())

	list, err := auth.Accounts()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, services.DefaultAccountEmail, list[0].Email)
}

func TestAuthService_Tokens(t *testing.T) {
	auth, _ := newAuthService(t, nil)
	require.NoError(t, auth.Bootstrap())

	token, err := auth.IssueToken(services.DefaultAccountEmail)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, services.DefaultAccountEmail, claims["email"])
	assert.NotEmpty(t, claims["jti"])

	// Valid token but nobody is logged in.
	_, err = auth.Authorize(token)
	assert.ErrorIs(t, err, services.ErrNotLoggedIn)

	require.True(t, auth.Login(services.DefaultAccountEmail, services.DefaultAccountPassword))
	email, err := auth.Authorize(token)
	require.NoError(t, err)
	assert.Equal(t, services.DefaultAccountEmail, email)

	require.NoError(t, auth.Logout())
	_, err = auth.Authorize(token)
	assert.ErrorIs(t, err, services.ErrNotLoggedIn)

	_, err = auth.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": services.DefaultAccountEmail,
		"exp":   jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = auth.ValidateToken(expiredString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": services.DefaultAccountEmail,
		"exp":   jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	foreignString, _ := foreign.SignedString([]byte("another_secret"))
	_, err = auth.ValidateToken(foreignString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
