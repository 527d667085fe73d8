package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"user-dashboard-service/internal/entity"
	"user-dashboard-service/internal/repository"
)

// AccountStore is the storage of login accounts.
type AccountStore interface {
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	CreateAccount(ctx context.Context, account *entity.Account) (*entity.Account, error)
	DeleteAccountByEmail(ctx context.Context, email string) error
}

type JwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AccountService struct {
	repo     AccountStore
	sessions SessionStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(repo AccountStore, sessions SessionStore, secret []byte, tokenTTL time.Duration) *AccountService {
	return &AccountService{
		repo:     repo,
		sessions: sessions,
		secret:   secret,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// ListAccounts returns every account; only emails are serialized.
func (s *AccountService) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing accounts")
		return nil, &StorageError{Op: "list accounts", Err: err}
	}
	return accounts, nil
}

func (s *AccountService) Register(ctx context.Context, creds entity.Credentials) error {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return &ValidationError{Message: "Email and password are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	_, err = s.repo.CreateAccount(ctx, &entity.Account{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return &ValidationError{Message: "User already exists"}
		}
		logger.Error().Err(err).Msg("Error creating account")
		return &StorageError{Op: "create account", Err: err}
	}
	return nil
}

// Login checks creds and issues a signed token that is also kept as the live
// session of the account.
func (s *AccountService) Login(ctx context.Context, creds entity.Credentials) (string, error) {
	email := strings.TrimSpace(creds.Email)
	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", &ValidationError{Message: "User not found"}
		}
		logger.Error().Err(err).Msg("Error getting account")
		return "", &StorageError{Op: "get account", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(creds.Password)); err != nil {
		return "", &ValidationError{Message: "Invalid password"}
	}

	claims := &JwtCustomClaims{
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.tokenTTL)),
		},
	}
	t, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Save(ctx, account.Email, t, s.tokenTTL); err != nil {
		logger.Error().Err(err).Msg("Error saving session")
		return "", &StorageError{Op: "save session", Err: err}
	}

	return t, nil
}

// ValidateSession reports whether token is still the live session of email.
func (s *AccountService) ValidateSession(ctx context.Context, email, token string) error {
	live, err := s.sessions.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrSessionInvalid) {
			return ErrSessionInvalid
		}
		return &StorageError{Op: "get session", Err: err}
	}
	if live != token {
		return ErrSessionInvalid
	}
	return nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Message: "Email is required"}
	}

	if err := s.repo.DeleteAccountByEmail(ctx, email); err != nil {
		logger.Error().Err(err).Msg("Error deleting account")
		return storageErr("delete account", err, "User not found")
	}

	if err := s.sessions.Delete(ctx, email); err != nil {
		logger.Warn().Err(err).Msg("Error deleting session")
	}
	return nil
}
