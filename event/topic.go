package event

const (
	// WSConnected WebSocket接続が確立された
	// 	Fields:
	// 		session_key: string
	// 		identity: model.Identity
	// 		req: *http.Request
	WSConnected = "ws.connected"
	// WSDisconnected WebSocket接続が切断された
	// 	Fields:
	// 		session_key: string
	// 		identity: model.Identity
	// 		req: *http.Request
	WSDisconnected = "ws.disconnected"

	// UserOnline ユーザーの最初の接続が登録された
	// 	Fields:
	// 		user_id: int
	// 		role: model.Role
	// 		datetime: time.Time
	UserOnline = "user.online"
	// UserOffline ユーザーの最後の接続が解除された
	// 	Fields:
	// 		user_id: int
	// 		role: model.Role
	// 		datetime: time.Time
	UserOffline = "user.offline"
	// PresenceChanged 接続中ユーザーの集計が変化した
	// 	Fields:
	// 		counts: model.ConnectedUsers
	PresenceChanged = "presence.changed"

	// LocationRecorded 位置情報が記録された
	// 	Fields:
	// 		user_id: int
	// 		reading: model.LocationReading
	LocationRecorded = "location.recorded"

	// DiscountDecided 値引き申請に回答があった
	// 	Fields:
	// 		decision: model.DiscountDecision
	DiscountDecided = "discount.decided"
)
