//go:generate mockgen -source=$GOFILE -destination=mock_$GOPACKAGE/mock_$GOFILE
package repository

import (
	"context"

	"github.com/ventas-crm/tracker/model"
)

// LocationRepository 最終位置情報リポジトリ
type LocationRepository interface {
	// SaveLastLocation ユーザーの最終位置情報を保存します
	//
	// 既に保存されている場合は上書きします
	// 引数に問題がある場合、ErrInvalidArgsを返します
	SaveLastLocation(ctx context.Context, reading model.LocationReading) error
	// GetLastLocations 保存されている全ての最終位置情報をユーザーID順で取得します
	GetLastLocations(ctx context.Context) ([]model.LocationReading, error)
	// GetLastLocation 指定したユーザーの最終位置情報を取得します
	//
	// 存在しない場合、ErrNotFoundを返します
	GetLastLocation(ctx context.Context, userID int) (model.LocationReading, error)
	// DeleteLastLocation 指定したユーザーの最終位置情報を削除します
	//
	// 存在しない場合、ErrNotFoundを返します
	DeleteLastLocation(ctx context.Context, userID int) error
}

type nopLocationRepository struct{}

// NewNopLocationRepository 何も保存しないリポジトリを返します
func NewNopLocationRepository() LocationRepository {
	return nopLocationRepository{}
}

func (nopLocationRepository) SaveLastLocation(context.Context, model.LocationReading) error {
	return nil
}

func (nopLocationRepository) GetLastLocations(context.Context) ([]model.LocationReading, error) {
	return []model.LocationReading{}, nil
}

func (nopLocationRepository) GetLastLocation(context.Context, int) (model.LocationReading, error) {
	return model.LocationReading{}, ErrNotFound
}

func (nopLocationRepository) DeleteLastLocation(context.Context, int) error {
	return ErrNotFound
}
