package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
)

// GateStatus は認証ゲートの判定結果の種類。
type GateStatus int

const (
	// Unauthenticated はIdPセッションが無い、または無効な状態。
	Unauthenticated GateStatus = iota
	// NotRegistered はIdPで認可済みだがローカルユーザーが存在しない状態。
	NotRegistered
	// Authenticated はローカルユーザーに解決済みの状態。
	Authenticated
)

// メトリクスのラベル値
const (
	resultAuthenticated   = "authenticated"
	resultUnauthenticated = "unauthenticated"
	resultNotRegistered   = "not_registered"
	resultProviderError   = "provider_error"
)

// GateResult は認証ゲートの判定結果。UserIDはAuthenticatedの場合のみ有効。
type GateResult struct {
	Status GateStatus
	UserID int64
}

// Metrics は認証サービスが記録するメトリクスのインターフェース。
type Metrics interface {
	RecordAuthResult(result string)
	RecordUserProvisioned()
}

type nopMetrics struct{}

func (nopMetrics) RecordAuthResult(string) {}
func (nopMetrics) RecordUserProvisioned()  {}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge   int           // セッション有効期間（秒）
	ProviderTimeout time.Duration // IdP呼び出しのタイムアウト
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	provider    IdentityProvider
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	metrics     Metrics
	config      ServiceConfig
}

// NewService はServiceを生成する。metricsがnilの場合は記録しない。
func NewService(
	provider IdentityProvider,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	metrics Metrics,
	config ServiceConfig,
) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		provider:    provider,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		metrics:     metrics,
		config:      config,
	}
}

// GetLoginURL はIdPの認可URLを生成する。
func (s *Service) GetLoginURL(state string) string {
	return s.provider.LoginURL(state)
}

// HandleCallback は認可コードをトークンに交換し、トークンを保持するセッションを発行する。
// この時点ではローカルユーザーに解決しない。
func (s *Service) HandleCallback(ctx context.Context, code string) (*model.Session, error) {
	pctx, cancel := s.providerContext(ctx)
	defer cancel()

	token, err := s.provider.Exchange(pctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	session, err := s.createSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("provider session created", slog.String("token_type", token.Type()))
	return session, nil
}

// Resolve はセッションを認証ゲートの判定結果に変換する。
// ローカルユーザーIDがキャッシュ済みの場合はIdPを呼び出さない。
// 返却されるエラーは永続化層の障害のみで、IdPの障害はUnauthenticatedとして扱う。
func (s *Service) Resolve(ctx context.Context, sessionID string) (GateResult, error) {
	if sessionID == "" {
		s.metrics.RecordAuthResult(resultUnauthenticated)
		return GateResult{Status: Unauthenticated}, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return GateResult{}, fmt.Errorf("failed to find session: %w", err)
	}
	if !session.HasProviderToken() {
		s.metrics.RecordAuthResult(resultUnauthenticated)
		return GateResult{Status: Unauthenticated}, nil
	}

	if session.IsResolved() {
		s.metrics.RecordAuthResult(resultAuthenticated)
		return GateResult{Status: Authenticated, UserID: session.UserID}, nil
	}

	profile, err := s.fetchProfile(ctx, session)
	if err != nil {
		slog.Warn("identity provider lookup failed",
			slog.String("error", err.Error()),
		)
		s.metrics.RecordAuthResult(resultProviderError)
		return GateResult{Status: Unauthenticated}, nil
	}

	user, err := s.userRepo.FindByGoogleID(ctx, profile.ExternalID)
	if err != nil {
		return GateResult{}, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.metrics.RecordAuthResult(resultNotRegistered)
		return GateResult{Status: NotRegistered}, nil
	}

	if err := s.sessionRepo.UpdateUserID(ctx, session.ID, user.ID); err != nil {
		return GateResult{}, fmt.Errorf("failed to cache user in session: %w", err)
	}

	s.metrics.RecordAuthResult(resultAuthenticated)
	return GateResult{Status: Authenticated, UserID: user.ID}, nil
}

// Provision はランディングページから呼ばれ、初回サインインのユーザーを作成する。
// IdPセッションが無い場合、またはIdPの呼び出しに失敗した場合はnilを返す。
// ユーザーが作成される唯一の経路。
func (s *Service) Provision(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if !session.HasProviderToken() {
		return nil, nil
	}

	if session.IsResolved() {
		user, err := s.userRepo.FindByID(ctx, session.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}

	profile, err := s.fetchProfile(ctx, session)
	if err != nil {
		slog.Warn("identity provider lookup failed during provisioning",
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	user, err := s.findOrCreateUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateUserID(ctx, session.ID, user.ID); err != nil {
		return nil, fmt.Errorf("failed to cache user in session: %w", err)
	}

	return user, nil
}

// findOrCreateUser は外部IDでユーザーを検索し、無ければプロフィールから作成する。
// 同時サインインで一意制約に違反した場合は先行して作成された行を返す。
func (s *Service) findOrCreateUser(ctx context.Context, profile *Profile) (*model.User, error) {
	user, err := s.userRepo.FindByGoogleID(ctx, profile.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &model.User{
		Email:      profile.Email,
		Name:       profile.Name,
		GoogleID:   profile.ExternalID,
		ProfilePic: profile.Picture,
	}
	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		existing, findErr := s.userRepo.FindByGoogleID(ctx, profile.ExternalID)
		if findErr != nil {
			return nil, fmt.Errorf("failed to re-read user after conflict: %w", findErr)
		}
		if existing == nil {
			// 別の外部IDが同じemailで登録済み
			return nil, fmt.Errorf("email already bound to another identity: %w", err)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.RecordUserProvisioned()
	slog.Info("new user created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return user, nil
}

// Logout はIdPトークンをベストエフォートで失効させ、セッションを破棄する。
// 失効に失敗してもエラーにしない。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to find session: %w", err)
	}

	if session.HasProviderToken() {
		pctx, cancel := s.providerContext(ctx)
		if err := s.provider.Revoke(pctx, session.AccessToken); err != nil {
			slog.Warn("token revocation failed", slog.String("error", err.Error()))
		}
		cancel()
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if session != nil {
		slog.Info("user logged out", slog.Int64("user_id", session.UserID))
	}
	return nil
}

// GetCurrentUser は解決済みユーザーIDのユーザーを取得する。
func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewNotFoundError("User")
	}
	return user, nil
}

func (s *Service) fetchProfile(ctx context.Context, session *model.Session) (*Profile, error) {
	pctx, cancel := s.providerContext(ctx)
	defer cancel()

	return s.provider.FetchProfile(pctx, &oauth2.Token{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		Expiry:       session.TokenExpiry,
	})
}

// providerContext はIdP呼び出し用にタイムアウトを設定したcontextを返す。
func (s *Service) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.ProviderTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.ProviderTimeout)
}

// createSession はトークンを保持するセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, token *oauth2.Token) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now()
	session := &model.Session{
		ID:           sessionID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.Type(),
		TokenExpiry:  token.Expiry,
		ExpiresAt:    now.Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt:    now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
