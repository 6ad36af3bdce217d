package dto

import (
	"guesthouse/infras/jwt"
	"guesthouse/internal/accounts"
	"guesthouse/shared/constant"
	"guesthouse/shared/timezone"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(pair *jwt.TokenPair) {
	l.AccessToken = pair.AccessToken
	l.RefreshToken = pair.RefreshToken
	l.TokenType = pair.TokenType
	l.ExpiresIn = pair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type AddAccountRequest struct {
	Username string `json:"username" validate:"required,max=100,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=superadmin admin"`
}

type AccountResponse struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func (a *AccountResponse) FromAccount(account accounts.Account) {
	a.Username = account.Username
	a.Role = account.Role
	a.CreatedAt = timezone.Format(account.CreatedAt, constant.DateFormat)
}

type GetAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

func (g *GetAccountsResponse) FromAccounts(list []accounts.Account) {
	g.Accounts = make([]AccountResponse, len(list))
	for i, account := range list {
		g.Accounts[i].FromAccount(account)
	}
}
