// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// ハンドラーはCodeからHTTPステータスを決定する。
type APIError struct {
	Code     string // エラーコード
	Message  string // クライアントに返すメッセージ
	Category string // カテゴリ: auth, validation, resource, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeNotRegistered = "NOT_REGISTERED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// MsgInvalidDate は日付フォーマット不正時のメッセージ。
const MsgInvalidDate = "Invalid date format. Use YYYY-MM-DD"

// NewValidationError は入力検証エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
	}
}

// NewInvalidDateError は日付フォーマット不正エラーを生成する。
func NewInvalidDateError() *APIError {
	return NewValidationError(MsgInvalidDate)
}

// NewMissingFieldsError は必須フィールド欠落エラーを生成する。
func NewMissingFieldsError(fields string) *APIError {
	return NewValidationError(fmt.Sprintf("Missing required fields: %s", fields))
}

// NewNotFoundError は指定リソースが見つからない場合のエラーを生成する。
// resourceには "Employee" のような表示名を渡す。
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("%s not found", resource),
		Category: "resource",
	}
}

// NewUnauthorizedError はIdPセッションが無い、または無効な場合のエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Unauthorized",
		Category: "auth",
	}
}

// NewNotRegisteredError はIdPで認可済みだがローカルユーザーが未作成の場合のエラーを生成する。
// ランディングページ（/）にアクセスすると自動作成される。
func NewNotRegisteredError() *APIError {
	return &APIError{
		Code:     ErrCodeNotRegistered,
		Message:  "User not registered. Visit / to complete sign-in",
		Category: "auth",
	}
}

// NewInternalError は内部エラーの統一レスポンスを生成する。
// 詳細はログにのみ記録し、クライアントには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Internal server error",
		Category: "system",
	}
}
