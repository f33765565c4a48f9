package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hitoshi/orgman/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	GateResolver      middleware.GateResolver
	CORSAllowedOrigin string
	CSRFEnabled       bool
	CSRFConfig        middleware.CSRFConfig
	RateLimiter       *middleware.RateLimiter

	// 運用
	HealthChecker   HealthChecker
	MetricsRecorder middleware.HTTPMetricsRecorder
	MetricsHandler  http.Handler

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 組織
	DepartmentService  DepartmentServiceInterface
	DesignationService DesignationServiceInterface
	EmployeeService    EmployeeServiceInterface
	ProjectService     ProjectServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RealIP → Logging → Metrics → SecurityHeaders → CORS → (CSRF)
//
// 読み取りルートはIP単位のレート制限のみ。書き込みルートと /me は
// AuthGate → RateLimit(General) を追加で通す。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(chimw.RealIP)
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.CSRFEnabled {
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	landingHandler := NewLandingHandler(deps.AuthService)
	departmentHandler := NewDepartmentHandler(deps.DepartmentService)
	designationHandler := NewDesignationHandler(deps.DesignationService)
	employeeHandler := NewEmployeeHandler(deps.EmployeeService)
	projectHandler := NewProjectHandler(deps.ProjectService)

	authGate := middleware.NewAuthGateMiddleware(deps.GateResolver)
	userLimit := deps.RateLimiter.GeneralMiddleware()
	writeGate := func(next http.Handler) http.Handler {
		return chi.Chain(authGate, userLimit).Handler(next)
	}

	// --- 運用エンドポイント（レート制限なし） ---
	if deps.HealthChecker != nil {
		r.Get("/health", NewHealthHandler(deps.HealthChecker))
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
	if deps.CSRFEnabled {
		r.Method(http.MethodGet, "/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))
	}

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.PublicMiddleware())

		r.Method(http.MethodGet, "/", landingHandler)

		r.Route("/auth/google", func(r chi.Router) {
			r.Get("/login", authHandler.Login)
			r.Get("/callback", authHandler.Callback)
		})
		r.Get("/logout", authHandler.Logout)
		r.With(writeGate).Get("/me", authHandler.Me)

		r.Route("/departments", func(r chi.Router) { departmentHandler.Routes(r, writeGate) })
		r.Route("/designations", func(r chi.Router) { designationHandler.Routes(r, writeGate) })
		r.Route("/employees", func(r chi.Router) { employeeHandler.Routes(r, writeGate) })
		r.Route("/projects", func(r chi.Router) { projectHandler.Routes(r, writeGate) })
	})

	return r
}
