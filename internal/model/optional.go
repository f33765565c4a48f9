package model

import "encoding/json"

// Optional はJSONペイロード中のフィールドの有無を区別する値。
// キーが存在しない場合はSetがfalse、nullの場合はSetとNullがtrueになる。
// 部分更新（ペイロードに含まれるフィールドのみ上書き）に使用する。
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some は値を持つOptionalを生成する。
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null はnullが明示されたOptionalを生成する。
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Present はnull以外の値が指定されているかを返す。
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// UnmarshalJSON はキーが存在した場合にのみ呼ばれ、Setを立てる。
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}
