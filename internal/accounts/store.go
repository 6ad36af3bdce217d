package accounts

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"guesthouse/config"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/password"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Account is one admin credential record as stored on disk.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// Store keeps admin credentials in a single JSON file. Every mutation
// rewrites the file through a temp file and rename so a crash never leaves
// a half-written store behind.
type Store interface {
	Verify(ctx context.Context, username, plainPassword string) (Account, error)
	List(ctx context.Context) ([]Account, error)
	Add(ctx context.Context, username, plainPassword, role string) error
	Remove(ctx context.Context, username string) error
	ChangePassword(ctx context.Context, username, newPassword string) error
	Bootstrap(ctx context.Context) error
}

type storeImpl struct {
	path string
	cfg  *config.Config
	mu   sync.Mutex
}

func NewStore(cfg *config.Config) Store {
	return &storeImpl{
		path: cfg.Accounts.Path,
		cfg:  cfg,
	}
}

func (s *storeImpl) Verify(ctx context.Context, username, plainPassword string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return Account{}, err
	}

	for _, account := range list {
		if account.Username != username {
			continue
		}

		if err := password.Verify(plainPassword, account.PasswordHash); err != nil {
			return Account{}, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
		}

		return account, nil
	}

	return Account{}, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
}

func (s *storeImpl) List(ctx context.Context) ([]Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *storeImpl) Add(ctx context.Context, username, plainPassword, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}

	for _, account := range list {
		if account.Username == username {
			return failure.DuplicateUser(username) // nolint:wrapcheck
		}
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := timezone.Now()
	list = append(list, Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		ModifiedAt:   now,
	})

	return s.save(list)
}

func (s *storeImpl) Remove(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}

	index := -1
	for i, account := range list {
		if account.Username == username {
			index = i

			break
		}
	}

	if index < 0 {
		return failure.NotFound("admin account") // nolint:wrapcheck
	}

	if len(list) == 1 {
		return failure.LastUser() // nolint:wrapcheck
	}

	list = append(list[:index], list[index+1:]...)

	return s.save(list)
}

func (s *storeImpl) ChangePassword(ctx context.Context, username, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}

	for i, account := range list {
		if account.Username != username {
			continue
		}

		hash, err := password.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		list[i].PasswordHash = hash
		list[i].ModifiedAt = timezone.Now()

		return s.save(list)
	}

	return failure.NotFound("admin account") // nolint:wrapcheck
}

// Bootstrap creates the configured initial admin when the store is empty.
// Safe to run on every start.
func (s *storeImpl) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}

	if len(list) > 0 {
		return nil
	}

	username := s.cfg.Accounts.BootstrapUsername
	plainPassword := s.cfg.Accounts.BootstrapPassword
	if plainPassword == constant.Empty {
		return failure.BadRequestFromString("bootstrap password is not configured") // nolint:wrapcheck
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	now := timezone.Now()
	list = []Account{{
		Username:     username,
		PasswordHash: hash,
		Role:         constant.RoleSuperAdmin,
		CreatedAt:    now,
		ModifiedAt:   now,
	}}

	if err := s.save(list); err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("bootstrapped admin account store")

	return nil
}

func (s *storeImpl) load() ([]Account, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, failure.IO(fmt.Errorf("failed to read account store: %w", err)) // nolint:wrapcheck
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var list []Account
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, failure.IO(fmt.Errorf("failed to decode account store: %w", err)) // nolint:wrapcheck
	}

	return list, nil
}

func (s *storeImpl) save(list []Account) error {
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return failure.IO(fmt.Errorf("failed to encode account store: %w", err)) // nolint:wrapcheck
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return failure.IO(fmt.Errorf("failed to create account store directory: %w", err)) // nolint:wrapcheck
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return failure.IO(fmt.Errorf("failed to write account store: %w", err)) // nolint:wrapcheck
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)

		return failure.IO(fmt.Errorf("failed to replace account store: %w", err)) // nolint:wrapcheck
	}

	return nil
}
