package service

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/otel"
	"guesthouse/internal/accounts"
	"guesthouse/internal/domains/auth/model/dto"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	AddAccount(ctx context.Context, req dto.AddAccountRequest) error
	RemoveAccount(ctx context.Context, username string) error
	ListAccounts(ctx context.Context) (dto.GetAccountsResponse, error)
}

type serviceImpl struct {
	store      accounts.Store
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(store accounts.Store, cfg *config.Config, otl otel.Otel, jwtService jwt.JWT) Auth {
	return &serviceImpl{
		store:      store,
		cfg:        cfg,
		otel:       otl,
		jwtService: jwtService,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.store.Verify(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn().Str("username", req.Username).Msg("failed login attempt")

		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(account.Username, account.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	username, _ := ctx.Value(constant.ContextKeyUsername).(string)
	if username == constant.Empty {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if _, err = s.store.Verify(ctx, username, req.CurrentPassword); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	return s.store.ChangePassword(ctx, username, req.NewPassword)
}

func (s *serviceImpl) AddAccount(ctx context.Context, req dto.AddAccountRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = requireSuperAdmin(ctx); err != nil {
		return err
	}

	return s.store.Add(ctx, req.Username, req.Password, req.Role)
}

func (s *serviceImpl) RemoveAccount(ctx context.Context, username string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = requireSuperAdmin(ctx); err != nil {
		return err
	}

	return s.store.Remove(ctx, username)
}

func (s *serviceImpl) ListAccounts(ctx context.Context) (res dto.GetAccountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAccounts")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.Empty {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	list, err := s.store.List(ctx)
	if err != nil {
		return res, err
	}

	res.FromAccounts(list)

	return res, nil
}

func requireSuperAdmin(ctx context.Context) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.Empty {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if role != constant.RoleSuperAdmin {
		return failure.Forbidden("superadmin role required") // nolint:wrapcheck
	}

	return nil
}
