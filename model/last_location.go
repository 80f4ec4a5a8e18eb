package model

import (
	"database/sql/driver"
	"errors"
	"time"
)

// LastLocation ユーザーごとの最終位置情報レコード
type LastLocation struct {
	UserID     int          `gorm:"type:int;not null;primaryKey;autoIncrement:false"`
	Latitude   float64      `gorm:"type:double;not null"`
	Longitude  float64      `gorm:"type:double;not null"`
	User       UserSnapshot `gorm:"type:text;not null"`
	CapturedAt time.Time    `gorm:"precision:6;index"`
	UpdatedAt  time.Time    `gorm:"precision:6"`
}

// TableName LastLocationのテーブル名
func (*LastLocation) TableName() string {
	return "last_locations"
}

// NewLastLocation 位置情報からレコードを作成します
func NewLastLocation(r LocationReading) *LastLocation {
	return &LastLocation{
		UserID:     r.UserID,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		User:       r.User,
		CapturedAt: r.Timestamp,
	}
}

// Reading レコードを位置情報に変換します
func (l *LastLocation) Reading() LocationReading {
	return LocationReading{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		UserID:    l.UserID,
		User:      l.User,
		Timestamp: l.CapturedAt,
	}
}

// Value database/sql/driver.Valuer 実装
func (s UserSnapshot) Value() (driver.Value, error) {
	return json.MarshalToString(s)
}

// Scan database/sql.Scanner 実装
func (s *UserSnapshot) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = UserSnapshot{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	default:
		return errors.New("failed to scan UserSnapshot")
	}
}
