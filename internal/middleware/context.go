// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var (
	// userIDContextKey は認証ゲートが解決したローカルユーザーIDのキー。
	userIDContextKey = contextKey("user_id")
	// requestInfoContextKey はリクエスト単位の可変情報のキー。
	requestInfoContextKey = contextKey("request_info")
)

// requestInfo はロギングミドルウェアが生成し、内側のミドルウェアが書き込む。
// 内側でWithContextしても外側のログ出力から参照できるようポインタで持つ。
type requestInfo struct {
	requestID string
	userID    int64
}

func withRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoContextKey, info)
}

func requestInfoFrom(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(requestInfoContextKey).(*requestInfo)
	return info
}

// UserIDFromContext はリクエストコンテキストからローカルユーザーIDを取得する。
// 認証ゲートを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	if !ok || userID == 0 {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// ロギング用のリクエスト情報があればそちらにも記録する。
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	if info := requestInfoFrom(ctx); info != nil {
		info.userID = userID
	}
	return context.WithValue(ctx, userIDContextKey, userID)
}

// RequestIDFromContext はロギングミドルウェアが採番したリクエストIDを返す。
func RequestIDFromContext(ctx context.Context) string {
	if info := requestInfoFrom(ctx); info != nil {
		return info.requestID
	}
	return ""
}
