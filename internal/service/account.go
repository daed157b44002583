package service

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Zzz0801/iNews/internal/model"
	"github.com/Zzz0801/iNews/internal/storage"
)

// AccountService handles registration and login. No session or token is
// issued on login: the client remembers the username and resends it on every
// mutating call. That trust model is part of the external contract and is
// preserved as-is.
type AccountService struct {
	store *storage.Store
	log   *zap.Logger
}

type NewAccountServiceParams struct {
	fx.In

	Store *storage.Store
	Log   *zap.Logger
}

func NewAccountService(params NewAccountServiceParams) *AccountService {
	return &AccountService{
		store: params.Store,
		log:   params.Log.Named("account"),
	}
}

func (s *AccountService) Register(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	if !s.store.AddAccount(model.Account{Username: username, Password: password}) {
		return ErrUsernameTaken
	}
	s.log.Info("account registered", zap.String("username", username))
	return nil
}

// Login verifies credentials by exact match on both fields and returns the
// username on success.
func (s *AccountService) Login(username, password string) (string, error) {
	if !s.store.Authenticate(username, password) {
		return "", ErrInvalidCredentials
	}
	return username, nil
}
