// Package security はアプリケーションのセキュリティ機能を提供する。
//
// MarkupDetector は利用者が入力した自由記述テキスト（名称、説明、役職、ステータス）に
// HTMLマークアップが含まれるかを判定する。保存値は書き換えない。
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// MarkupDetector は自由記述テキストのマークアップ判定のインターフェースを定義する。
type MarkupDetector interface {
	// ContainsMarkup はタグとして解釈される部分を含む場合にtrueを返す。
	// エンティティ化された文字列（&lt;b&gt; など）はプレーンテキストとして扱う。
	ContainsMarkup(raw string) bool
}

// markupDetector はMarkupDetectorの実装。
// bluemonday.Policyはスレッドセーフなため複数goroutineから共有できる。
type markupDetector struct {
	policy *bluemonday.Policy
}

// NewMarkupDetector はタグを一切許可しないStrictPolicyでMarkupDetectorを生成する。
func NewMarkupDetector() MarkupDetector {
	return &markupDetector{
		policy: bluemonday.StrictPolicy(),
	}
}

// ContainsMarkup はStrictPolicyの出力を元の文字に戻し、入力と一致しなければtrueを返す。
// プレーンテキストはエスケープされるだけなので、戻すと入力と一致する。
func (d *markupDetector) ContainsMarkup(raw string) bool {
	if raw == "" {
		return false
	}
	return html.UnescapeString(d.policy.Sanitize(raw)) != raw
}
