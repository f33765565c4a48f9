package handler

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/orgman/internal/middleware"
)

const welcomeMessage = "Welcome to the Employee Management API"

var landingEndpoints = map[string]string{
	"departments":  "/departments",
	"designations": "/designations",
	"employees":    "/employees",
	"projects":     "/projects",
}

type landingResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
	LoginURL  string            `json:"login_url"`
	User      *userResponse     `json:"user,omitempty"`
}

// LandingHandler は公開のランディングページ。
// IdP認可済みのセッションがあれば初回サインインのユーザー登録を行う。
type LandingHandler struct {
	auth     AuthServiceInterface
	loginURL string
}

// NewLandingHandler はLandingHandlerを生成する。
func NewLandingHandler(auth AuthServiceInterface) *LandingHandler {
	return &LandingHandler{auth: auth, loginURL: "/auth/google/login"}
}

// ServeHTTP はランディング情報を返す。
// GET /
func (h *LandingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := landingResponse{
		Message:   welcomeMessage,
		Endpoints: landingEndpoints,
		LoginURL:  h.loginURL,
	}

	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		user, err := h.auth.Provision(r.Context(), cookie.Value)
		if err != nil {
			// 登録に失敗してもランディングは返す
			slog.Error("failed to provision user",
				slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
				slog.String("error", err.Error()),
			)
		}
		if user != nil {
			u := toUserResponse(user)
			resp.User = &u
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
