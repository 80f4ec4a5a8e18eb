package rbac

import (
	"github.com/ventas-crm/tracker/model"
)

// Permission 権限
type Permission string

func (p Permission) String() string {
	return string(p)
}

const (
	// ReceiveLiveLocations 位置情報のリアルタイム受信権限
	ReceiveLiveLocations = Permission("receive_live_locations")
	// ReceiveConnectedUsers 接続中ユーザー数のプッシュ受信権限
	ReceiveConnectedUsers = Permission("receive_connected_users")
	// RequestConnectedUsers 接続中ユーザー数の要求権限
	RequestConnectedUsers = Permission("request_connected_users")
	// ReceiveSellerNotifications 販売員向け通知の受信権限
	ReceiveSellerNotifications = Permission("receive_seller_notifications")
	// ReportLocation 位置情報の報告権限
	ReportLocation = Permission("report_location")
)

// defaultGrants ロールごとの権限
var defaultGrants = map[model.Role][]Permission{
	model.RoleAdmin: {
		ReceiveLiveLocations,
		ReceiveConnectedUsers,
		RequestConnectedUsers,
		ReportLocation,
	},
	model.RoleSeller: {
		ReceiveSellerNotifications,
		ReportLocation,
	},
}
