package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"swiftstock/internal/models"
	"swiftstock/internal/repositories"
	"swiftstock/internal/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Seed account created when the accounts table is empty.
const (
	DefaultAccountEmail    = "swiftstock@gmail.com"
	DefaultAccountPassword = "12345"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidToken       = errors.New("invalid token")
)

// AccountTables manages the accounts table itself.
type AccountTables interface {
	EnsureAccountsTable() error
	DropAccountsTable() error
}

// AuthOptions configures an AuthService.
type AuthOptions struct {
	Hasher    PasswordHasher // Defaults to SHA256Hasher
	JWTSecret string
	TokenTTL  time.Duration // Defaults to 24h
}

// AuthService manages accounts, the persisted login flag and HTTP tokens.
type AuthService struct {
	accounts  repositories.AccountRepository
	tables    AccountTables
	sessions  session.Store
	hasher    PasswordHasher
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts repositories.AccountRepository, tables AccountTables, sessions session.Store, opts AuthOptions) *AuthService {
	if opts.Hasher == nil {
		opts.Hasher = SHA256Hasher{}
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:  accounts,
		tables:    tables,
		sessions:  sessions,
		hasher:    opts.Hasher,
		jwtSecret: []byte(opts.JWTSecret),
		tokenTTL:  opts.TokenTTL,
	}
}

// Bootstrap ensures the accounts table exists and seeds the default account
// when it is empty. The count and the insert are separate statements.
func (s *AuthService) Bootstrap() error {
	if err := s.tables.EnsureAccountsTable(); err != nil {
		return err
	}

	count, err := s.accounts.Count()
	if err != nil {
		return fmt.Errorf("failed to check accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := s.hasher.Hash(DefaultAccountPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.Create(&models.Account{Email: DefaultAccountEmail, Password: hashed}); err != nil {
		return fmt.Errorf("failed to create default account: %w", err)
	}
	log.Println("Default account created.")
	return nil
}

// ResetAccounts drops every account and seeds the default one again.
func (s *AuthService) ResetAccounts() error {
	if err := s.tables.DropAccountsTable(); err != nil {
		return err
	}
	log.Println("Accounts table dropped.")
	return s.Bootstrap()
}

// verify checks password against the stored digest of email.
func (s *AuthService) verify(email, password string) error {
	account, err := s.accounts.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !s.hasher.Verify(account.Password, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// Login checks the credentials and, on a match, persists the logged-in flag.
func (s *AuthService) Login(email, password string) bool {
	if err := s.verify(email, password); err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Printf("Error during login for %s: %v", email, err)
		}
		return false
	}
	if err := s.sessions.SetLoggedInUser(email); err != nil {
		log.Printf("Error saving session for %s: %v", email, err)
		return false
	}
	return true
}

// CheckAuth reports whether a login is persisted. Credentials are not
// checked again.
func (s *AuthService) CheckAuth() bool {
	_, ok := s.CurrentUser()
	return ok
}

// CurrentUser returns the email of the logged-in account.
func (s *AuthService) CurrentUser() (string, bool) {
	email, ok, err := s.sessions.LoggedInUser()
	if err != nil {
		log.Printf("Error reading session: %v", err)
		return "", false
	}
	return email, ok
}

// Logout clears the persisted flag.
func (s *AuthService) Logout() error {
	return s.sessions.Clear()
}

// Accounts lists the ID and email of every account.
func (s *AuthService) Accounts() ([]models.AccountSummary, error) {
	return s.accounts.List()
}

// UpdateAccount replaces the email and password of the logged-in account
// after checking currentPassword.
func (s *AuthService) UpdateAccount(currentPassword, newEmail, newPassword string) models.Result {
	if currentPassword == "" || newEmail == "" || newPassword == "" {
		return models.Result{Success: false, Message: "All fields are required."}
	}

	email, ok := s.CurrentUser()
	if !ok {
		return models.Result{Success: false, Message: "You must be logged in to update the account.", Err: ErrNotLoggedIn}
	}

	if err := s.verify(email, currentPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return models.Result{Success: false, Message: "Incorrect current password.", Err: err}
		}
		log.Printf("Error verifying account %s: %v", email, err)
		return models.Result{Success: false, Message: err.Error(), Err: err}
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return models.Result{Success: false, Message: err.Error(), Err: err}
	}
	if err := s.accounts.UpdateCredentials(email, newEmail, hashed); err != nil {
		log.Printf("Error updating account %s: %v", email, err)
		return models.Result{Success: false, Message: err.Error(), Err: err}
	}
	if err := s.sessions.SetLoggedInUser(newEmail); err != nil {
		log.Printf("Error saving session for %s: %v", newEmail, err)
		return models.Result{Success: false, Message: err.Error(), Err: err}
	}
	return models.Result{Success: true, Message: "Account updated!"}
}

// IssueToken signs a bearer token for email.
func (s *AuthService) IssueToken(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"jti":   uuid.New().String(),
		"exp":   now.Add(s.tokenTTL).Unix(),
		"iat":   now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Authorize validates tokenString and checks that its account is still the
// logged-in one, so Logout revokes every issued token.
func (s *AuthService) Authorize(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	current, ok := s.CurrentUser()
	if !ok || current != email {
		return "", ErrNotLoggedIn
	}
	return email, nil
}
