// Package model はドメインモデルを定義する。
package model

import "time"

// User は外部IdPのアカウントに紐付くローカルユーザーを表す。
// 初回サインイン時にのみ自動作成され、APIからは削除されない。
type User struct {
	ID         int64
	Email      string
	Name       string
	GoogleID   string
	ProfilePic string
	CreatedAt  time.Time
}

// Session はブラウザセッションを表す。
// IdPのトークンを保持し、解決済みのローカルユーザーIDをキャッシュする。
// UserIDが0の場合はまだローカルユーザーに解決されていない。
type Session struct {
	ID           string
	UserID       int64
	AccessToken  string
	RefreshToken string
	TokenType    string
	TokenExpiry  time.Time
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// HasProviderToken はIdPの認可済みトークンを保持しているかを返す。
func (s *Session) HasProviderToken() bool {
	return s != nil && s.AccessToken != ""
}

// IsResolved はローカルユーザーIDがキャッシュ済みかを返す。
func (s *Session) IsResolved() bool {
	return s != nil && s.UserID != 0
}
