package model

import (
	"time"

	vd "github.com/go-ozzo/ozzo-validation/v4"
)

// DiscountStatus 値引き申請への回答
type DiscountStatus string

const (
	DiscountApproved DiscountStatus = "APROBADO"
	DiscountRejected DiscountStatus = "RECHAZADO"
)

// DiscountDecision 管理者による値引き申請への回答
//
// newNotificationToSeller の本文としてそのまま販売員に送られる
type DiscountDecision struct {
	SellerID   int            `json:"vendedorId"`
	CustomerID int            `json:"clienteId"`
	Status     DiscountStatus `json:"estado"`
	Discount   float64        `json:"descuento"`
	Note       string         `json:"nota,omitempty"`
	DecidedAt  time.Time      `json:"fecha"`
}

// Validate implements validation.Validatable interface
func (d DiscountDecision) Validate() error {
	return vd.ValidateStruct(&d,
		vd.Field(&d.SellerID, vd.Required, vd.Min(1)),
		vd.Field(&d.CustomerID, vd.Required, vd.Min(1)),
		vd.Field(&d.Status, vd.Required, vd.In(DiscountApproved, DiscountRejected)),
		vd.Field(&d.Discount, vd.Min(0.0), vd.Max(100.0)),
		vd.Field(&d.Note, vd.Length(0, 500)),
	)
}
