package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrDuplicate は一意制約違反を表す。
	ErrDuplicate = errors.New("duplicate key")

	// ErrReferenceViolation は外部キー制約違反を表す。
	// 存在しない行の参照、または参照中の行の削除で発生する。
	ErrReferenceViolation = errors.New("foreign key violation")

	// ErrInvalidValue は列の型や長さに収まらない値を表す。
	ErrInvalidValue = errors.New("value does not fit column")

	// ErrNotFound は更新・削除対象の行が存在しないことを表す。
	ErrNotFound = errors.New("row not found")
)

// PostgreSQLのSQLSTATEコード
const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
	pqStringTooLong       = pq.ErrorCode("22001")
	pqNumericOutOfRange   = pq.ErrorCode("22003")
)

// translateError はPostgreSQLの制約違反と値の範囲外エラーをリポジトリのエラーに変換する。
// 元のエラーは%wで保持するため、errors.Isで判定しつつ詳細もログに残せる。
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, ErrDuplicate, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w (%s)", op, ErrReferenceViolation, pqErr.Constraint)
		case pqStringTooLong, pqNumericOutOfRange:
			return fmt.Errorf("%s: %w (%s)", op, ErrInvalidValue, pqErr.Message)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
