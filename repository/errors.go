package repository

import "errors"

var (
	// ErrNotFound 汎用エラー 見つかりません
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgs 汎用エラー 引数が不正です
	ErrInvalidArgs = errors.New("invalid args")
)
