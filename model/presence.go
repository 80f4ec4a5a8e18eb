package model

// ConnectedUsers 接続中ユーザー数の集計
type ConnectedUsers struct {
	Total     int `json:"totalConnectedUsers"`
	Employees int `json:"totalEmployees"`
	Admins    int `json:"totalAdmins"`
}
