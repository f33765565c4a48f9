package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hitoshi/orgman/internal/model"
)

const redisSessionKeyPrefix = "orgman:session:"

// redisSession はRedisに保存するセッションのJSON表現。
type redisSession struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"user_id,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	TokenExpiry  time.Time `json:"token_expiry"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisSessionRepo はRedisを使用したセッションリポジトリ。
// 有効期限はキーのTTLで管理するため、期限切れの一括削除は不要。
type RedisSessionRepo struct {
	client *redis.Client
}

// NewRedisSessionRepo はRedis URLに接続してRedisSessionRepoを生成する。
// 接続確認のためにPINGを送信する。
func NewRedisSessionRepo(ctx context.Context, redisURL string) (*RedisSessionRepo, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisSessionRepo{client: client}, nil
}

// Close はRedis接続を閉じる。
func (r *RedisSessionRepo) Close() error {
	return r.client.Close()
}

// Create はセッションを作成する。TTLはExpiresAtまでの残り時間。
func (r *RedisSessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.save(ctx, toRedisSession(session))
}

// FindByID は指定IDのセッションを取得する。期限切れ・未存在の場合はnilを返す。
func (r *RedisSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	rs, err := r.load(ctx, id)
	if err != nil || rs == nil {
		return nil, err
	}
	if !rs.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return &model.Session{
		ID:           rs.ID,
		UserID:       rs.UserID,
		AccessToken:  rs.AccessToken,
		RefreshToken: rs.RefreshToken,
		TokenType:    rs.TokenType,
		TokenExpiry:  rs.TokenExpiry,
		ExpiresAt:    rs.ExpiresAt,
		CreatedAt:    rs.CreatedAt,
	}, nil
}

// UpdateUserID は解決済みのローカルユーザーIDをセッションに記録する。
func (r *RedisSessionRepo) UpdateUserID(ctx context.Context, id string, userID int64) error {
	rs, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	if rs == nil {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	rs.UserID = userID
	return r.save(ctx, rs)
}

// DeleteByID は指定IDのセッションを削除する。
func (r *RedisSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisSessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (r *RedisSessionRepo) load(ctx context.Context, id string) (*redisSession, error) {
	key := redisSessionKeyPrefix + id

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal([]byte(data), &rs); err != nil {
		// 壊れたデータは削除して未ログイン扱いにする
		slog.Warn("dropping corrupt session record", slog.String("error", err.Error()))
		if delErr := r.client.Del(ctx, key).Err(); delErr != nil {
			return nil, fmt.Errorf("redis del failed: %w", delErr)
		}
		return nil, nil
	}
	return &rs, nil
}

func (r *RedisSessionRepo) save(ctx context.Context, rs *redisSession) error {
	ttl := time.Until(rs.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s is already expired", rs.ID)
	}

	data, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, redisSessionKeyPrefix+rs.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func toRedisSession(s *model.Session) *redisSession {
	return &redisSession{
		ID:           s.ID,
		UserID:       s.UserID,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		TokenExpiry:  s.TokenExpiry,
		ExpiresAt:    s.ExpiresAt,
		CreatedAt:    s.CreatedAt,
	}
}

// compile-time interface check
var _ SessionRepository = (*RedisSessionRepo)(nil)
