package model

import (
	"time"
)

// ProspectState 商談の状態
type ProspectState string

const (
	ProspectInProgress ProspectState = "EN_PROSPECTO"
	ProspectFinished   ProspectState = "FINALIZADO"
	ProspectCanceled   ProspectState = "CANCELADO"
)

// Prospect 進行中の商談
type Prospect struct {
	State       ProspectState `json:"estado"`
	StartedAt   time.Time     `json:"inicio"`
	FullName    string        `json:"nombreCompleto"`
	CompanyName string        `json:"empresaTienda"`
}

// Attendance 当日の出退勤記録
type Attendance struct {
	CheckIn  time.Time  `json:"entrada"`
	CheckOut *time.Time `json:"salida"`
}

// UserSnapshot 位置情報に添付されるユーザーの活動状況
type UserSnapshot struct {
	Name       string      `json:"nombre"`
	ID         int         `json:"id"`
	Role       Role        `json:"rol"`
	Prospect   *Prospect   `json:"prospecto"`
	Attendance *Attendance `json:"asistencia"`
}

// SnapshotFromIdentity 識別情報のみから最小限のスナップショットを作成します
func SnapshotFromIdentity(i Identity) UserSnapshot {
	return UserSnapshot{
		Name: i.Name,
		ID:   i.UserID,
		Role: i.Role,
	}
}

// LocationReading ユーザーの位置情報
type LocationReading struct {
	Latitude  float64      `json:"latitud"`
	Longitude float64      `json:"longitud"`
	UserID    int          `json:"usuarioId"`
	User      UserSnapshot `json:"usuario"`
	Timestamp time.Time    `json:"timestamp"`
}
