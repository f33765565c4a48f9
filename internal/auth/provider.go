// Package auth はIdPとのOAuthフロー、セッション、認証ゲートの判定を提供する。
package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// Profile はIdPの「who am I」エンドポイントから取得したプロフィール。
type Profile struct {
	ExternalID string
	Email      string
	Name       string
	Picture    string
}

// IdentityProvider は外部IdPのインターフェース。
type IdentityProvider interface {
	// LoginURL は認可エンドポイントのURLを生成する。
	LoginURL(state string) string
	// Exchange は認可コードをトークンに交換する。
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// FetchProfile はトークンでプロフィールを取得する。
	FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)
	// Revoke はアクセストークンを失効させる。
	Revoke(ctx context.Context, accessToken string) error
}
