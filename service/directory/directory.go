//go:generate mockgen -source=$GOFILE -destination=mock_$GOPACKAGE/mock_$GOFILE
package directory

import (
	"context"
	"errors"

	"github.com/ventas-crm/tracker/model"
)

var (
	// ErrNotConfigured CRMディレクトリが設定されていない
	ErrNotConfigured = errors.New("directory is not configured")
	// ErrNotFound ユーザーが見つからない
	ErrNotFound = errors.New("user not found")
)

// Directory CRMのユーザー情報参照
type Directory interface {
	// GetUserSnapshot 指定したユーザーの活動スナップショットを取得します
	//
	// 見つからない場合、ErrNotFoundを返します
	// 設定されていない場合、ErrNotConfiguredを返します
	GetUserSnapshot(ctx context.Context, userID int) (*model.UserSnapshot, error)
}

var nullD = &nullDirectory{}

type nullDirectory struct{}

// NewNullDirectory 常にErrNotConfiguredを返すDirectoryを返します
func NewNullDirectory() Directory {
	return nullD
}

func (*nullDirectory) GetUserSnapshot(context.Context, int) (*model.UserSnapshot, error) {
	return nil, ErrNotConfigured
}
