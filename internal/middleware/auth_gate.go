package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/orgman/internal/auth"
	"github.com/hitoshi/orgman/internal/model"
)

// SessionCookieName はセッションIDを保持するCookieの名前。
const SessionCookieName = "session_id"

// GateResolver はセッションを認証ゲートの判定結果に変換するインターフェース。
// auth.Serviceが実装する。
type GateResolver interface {
	Resolve(ctx context.Context, sessionID string) (auth.GateResult, error)
}

// NewAuthGateMiddleware はセッションCookieからローカルユーザーを解決するミドルウェアを返す。
//   - Unauthenticated: 401 UNAUTHORIZED
//   - NotRegistered:   401 NOT_REGISTERED（/ にアクセスすると自動登録される）
//   - Authenticated:   ユーザーIDをコンテキストに注入して次へ
func NewAuthGateMiddleware(resolver GateResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				sessionID = cookie.Value
			}

			result, err := resolver.Resolve(r.Context(), sessionID)
			if err != nil {
				slog.Error("failed to resolve session",
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.String("error", err.Error()),
				)
				WriteInternalServerError(w)
				return
			}

			switch result.Status {
			case auth.Authenticated:
				next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), result.UserID)))
			case auth.NotRegistered:
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewNotRegisteredError())
			default:
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
			}
		})
	}
}
