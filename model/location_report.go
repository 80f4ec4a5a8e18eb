package model

import (
	"time"

	vd "github.com/go-ozzo/ozzo-validation/v4"
)

// LocationReport クライアントから送られる位置情報の報告
type LocationReport struct {
	Latitude  *float64      `json:"latitud"`
	Longitude *float64      `json:"longitud"`
	Timestamp *time.Time    `json:"timestamp,omitempty"`
	User      *UserSnapshot `json:"usuario,omitempty"`
}

// Validate implements validation.Validatable interface
func (r LocationReport) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Latitude, vd.NotNil, vd.Min(-90.0), vd.Max(90.0)),
		vd.Field(&r.Longitude, vd.NotNil, vd.Min(-180.0), vd.Max(180.0)),
	)
}

// NewLocationReport 座標から報告を作成します
func NewLocationReport(lat, lon float64) LocationReport {
	return LocationReport{Latitude: &lat, Longitude: &lon}
}
