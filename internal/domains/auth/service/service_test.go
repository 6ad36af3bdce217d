package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	jwtMocks "guesthouse/infras/jwt/mocks"
	otelMocks "guesthouse/infras/otel/mocks"
	"guesthouse/internal/accounts"
	accountMocks "guesthouse/internal/accounts/mocks"
	"guesthouse/internal/domains/auth/model/dto"
	"guesthouse/internal/domains/auth/service"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
)

func contextWithRole(username, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, username)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func newAuthService(t *testing.T) (service.Auth, *accountMocks.MockStore, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockStore := accountMocks.NewMockStore(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	return service.New(mockStore, cfg, otelMocks.NewOtel(), mockJWT), mockStore, mockJWT
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(store *accountMocks.MockStore, jwtMock *jwtMocks.MockJWT)
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "success",
			req:  dto.LoginRequest{Username: "admin", Password: "changeme123"},
			setupMock: func(store *accountMocks.MockStore, jwtMock *jwtMocks.MockJWT) {
				store.EXPECT().
					Verify(gomock.Any(), "admin", "changeme123").
					Return(accounts.Account{Username: "admin", Role: constant.RoleSuperAdmin}, nil)
				jwtMock.EXPECT().
					GenerateTokenPair("admin", constant.RoleSuperAdmin).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
						TokenType:    "Bearer",
						ExpiresIn:    900,
					}, nil)
			},
		},
		{
			name: "invalid credentials",
			req:  dto.LoginRequest{Username: "admin", Password: "wrong"},
			setupMock: func(store *accountMocks.MockStore, jwtMock *jwtMocks.MockJWT) {
				store.EXPECT().
					Verify(gomock.Any(), "admin", "wrong").
					Return(accounts.Account{}, failure.Unauthorized("invalid username or password"))
			},
			wantErr:  true,
			wantKind: failure.KindUnauthorized,
		},
		{
			name: "token generation fails",
			req:  dto.LoginRequest{Username: "admin", Password: "changeme123"},
			setupMock: func(store *accountMocks.MockStore, jwtMock *jwtMocks.MockJWT) {
				store.EXPECT().
					Verify(gomock.Any(), "admin", "changeme123").
					Return(accounts.Account{Username: "admin", Role: constant.RoleAdmin}, nil)
				jwtMock.EXPECT().
					GenerateTokenPair("admin", constant.RoleAdmin).
					Return(nil, errors.New("signing error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockStore, mockJWT := newAuthService(t)
			tt.setupMock(mockStore, mockJWT)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, _, mockJWT := newAuthService(t)

		mockJWT.EXPECT().
			RefreshTokens("refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})
		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, _, mockJWT := newAuthService(t)

		mockJWT.EXPECT().
			RefreshTokens("bad-token").
			Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-token"})
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	req := dto.ChangePasswordRequest{CurrentPassword: "oldpassword1", NewPassword: "newpassword1"}

	t.Run("success", func(t *testing.T) {
		svc, mockStore, _ := newAuthService(t)

		mockStore.EXPECT().
			Verify(gomock.Any(), "admin", "oldpassword1").
			Return(accounts.Account{Username: "admin"}, nil)
		mockStore.EXPECT().
			ChangePassword(gomock.Any(), "admin", "newpassword1").
			Return(nil)

		err := svc.ChangePassword(contextWithRole("admin", constant.RoleAdmin), req)
		assert.NoError(t, err)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		err := svc.ChangePassword(context.Background(), req)
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, mockStore, _ := newAuthService(t)

		mockStore.EXPECT().
			Verify(gomock.Any(), "admin", "oldpassword1").
			Return(accounts.Account{}, failure.Unauthorized("invalid username or password"))

		err := svc.ChangePassword(contextWithRole("admin", constant.RoleAdmin), req)
		assert.Error(t, err)
		assert.Equal(t, failure.KindBadRequest, failure.GetKind(err))
	})
}

func TestAuthService_AddAccount(t *testing.T) {
	req := dto.AddAccountRequest{Username: "staff", Password: "supersecret", Role: constant.RoleAdmin}

	t.Run("success as superadmin", func(t *testing.T) {
		svc, mockStore, _ := newAuthService(t)

		mockStore.EXPECT().
			Add(gomock.Any(), "staff", "supersecret", constant.RoleAdmin).
			Return(nil)

		err := svc.AddAccount(contextWithRole("root", constant.RoleSuperAdmin), req)
		assert.NoError(t, err)
	})

	t.Run("forbidden for admin role", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		err := svc.AddAccount(contextWithRole("admin", constant.RoleAdmin), req)
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc, mockStore, _ := newAuthService(t)

		mockStore.EXPECT().
			Add(gomock.Any(), "staff", "supersecret", constant.RoleAdmin).
			Return(failure.DuplicateUser("staff"))

		err := svc.AddAccount(contextWithRole("root", constant.RoleSuperAdmin), req)
		assert.Error(t, err)
		assert.Equal(t, failure.KindDuplicateUser, failure.GetKind(err))
	})
}

func TestAuthService_RemoveAccount(t *testing.T) {
	t.Run("success as superadmin", func(t *testing.T) {
		svc, mockStore, _ := newAuthService(t)

		mockStore.EXPECT().
			Remove(gomock.Any(), "staff").
			Return(nil)

		err := svc.RemoveAccount(contextWithRole("root", constant.RoleSuperAdmin), "staff")
		assert.NoError(t, err)
	})

	t.Run("forbidden for admin role", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		err := svc.RemoveAccount(contextWithRole("admin", constant.RoleAdmin), "staff")
		assert.Error(t, err)
	})

	t.Run("last account", func(t *testing.T) {
		svc, mockStore, _ := newAuthService(t)

		mockStore.EXPECT().
			Remove(gomock.Any(), "root").
			Return(failure.LastUser())

		err := svc.RemoveAccount(contextWithRole("root", constant.RoleSuperAdmin), "root")
		assert.Error(t, err)
		assert.Equal(t, failure.KindLastUser, failure.GetKind(err))
	})
}

func TestAuthService_ListAccounts(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, mockStore, _ := newAuthService(t)

		mockStore.EXPECT().
			List(gomock.Any()).
			Return([]accounts.Account{
				{Username: "root", Role: constant.RoleSuperAdmin},
				{Username: "staff", Role: constant.RoleAdmin},
			}, nil)

		res, err := svc.ListAccounts(contextWithRole("root", constant.RoleSuperAdmin))
		assert.NoError(t, err)
		assert.Len(t, res.Accounts, 2)
		assert.Equal(t, "root", res.Accounts[0].Username)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		_, err := svc.ListAccounts(context.Background())
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}
