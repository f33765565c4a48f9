package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout は日付の入出力フォーマット（YYYY-MM-DD）。
const DateLayout = "2006-01-02"

// Date は時刻を持たない暦日を表す。
type Date struct {
	time.Time
}

// NewDate は年月日からDateを生成する。
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf はtime.Timeの日付部分のみを取り出す。
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate はYYYY-MM-DD形式の文字列を厳密に解析する。
// 存在しない日付（例: 2023-13-01, 2023-02-30）はエラーになる。
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String はYYYY-MM-DD形式の文字列を返す。
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON はYYYY-MM-DD形式のJSON文字列を返す。
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
