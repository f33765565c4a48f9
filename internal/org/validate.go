// Package org は部署・職位・従業員・プロジェクトのドメインロジックを提供する。
//
// 各サービスは入力の検証と自由記述テキストのマークアップ判定を行い、
// リポジトリのエラーをmodel.APIErrorに変換する。
package org

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
	"github.com/hitoshi/orgman/internal/security"
)

// 参照整合性違反時のメッセージ
const (
	msgDanglingReference = "Referenced record does not exist"
	msgInvalidValue      = "Value is too long or out of range"
	msgStillReferenced   = "%s is still referenced by other records"
)

// requiredText は必須の自由記述フィールドを入力どおりの値で返す。
// キー欠落、null、空白のみの場合はok=false。マークアップを含む場合は400。
func requiredText(d security.MarkupDetector, field string, opt model.Optional[string]) (string, bool, error) {
	if !opt.Present() || strings.TrimSpace(opt.Value) == "" {
		return "", false, nil
	}
	if err := rejectMarkup(d, field, opt.Value); err != nil {
		return "", false, err
	}
	return opt.Value, true, nil
}

// optionalText は任意の自由記述フィールドを入力どおりの値で返す。nullはnil。
func optionalText(d security.MarkupDetector, field string, opt model.Optional[string]) (*string, error) {
	if !opt.Present() {
		return nil, nil
	}
	if err := rejectMarkup(d, field, opt.Value); err != nil {
		return nil, err
	}
	v := opt.Value
	return &v, nil
}

func rejectMarkup(d security.MarkupDetector, field, v string) error {
	if d.ContainsMarkup(v) {
		return model.NewValidationError(fmt.Sprintf("%s must not contain markup", field))
	}
	return nil
}

// optionalDate は任意の日付フィールドを厳密に解析する。nullはnilを返す。
func optionalDate(opt model.Optional[string]) (*model.Date, error) {
	if !opt.Present() {
		return nil, nil
	}
	d, err := model.ParseDate(opt.Value)
	if err != nil {
		return nil, model.NewInvalidDateError()
	}
	return &d, nil
}

// missingFields は値が指定されていないキー名を入力順に返す。
func missingFields(fields ...fieldCheck) []string {
	var missing []string
	for _, f := range fields {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type fieldCheck struct {
	name string
	ok   bool
}

func missingFieldsError(missing []string) error {
	return model.NewMissingFieldsError(strings.Join(missing, ", "))
}

// nullNotAllowed は必須フィールドに明示的なnullが渡された場合のエラー。
func nullNotAllowed(name string) error {
	return model.NewValidationError(fmt.Sprintf("%s cannot be null", name))
}

// writeError は作成・更新時のリポジトリエラーを変換する。
func writeError(resource string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return model.NewNotFoundError(resource)
	case errors.Is(err, repository.ErrReferenceViolation):
		return model.NewValidationError(msgDanglingReference)
	case errors.Is(err, repository.ErrInvalidValue):
		return model.NewValidationError(msgInvalidValue)
	}
	return err
}

// deleteError は削除時のリポジトリエラーを変換する。
func deleteError(resource string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return model.NewNotFoundError(resource)
	case errors.Is(err, repository.ErrReferenceViolation):
		return model.NewValidationError(fmt.Sprintf(msgStillReferenced, resource))
	}
	return err
}
