package model

// Identity 接続時に申告されたユーザー識別情報
//
// ハンドシェイク時に一度だけ設定され、接続中は変更されない
type Identity struct {
	UserID int    `json:"userId"`
	Name   string `json:"name,omitempty"`
	Role   Role   `json:"role"`
}

// Anonymous 識別情報を持たない接続
var Anonymous = Identity{}

// Authenticated ユーザーIDとロールが揃っているかどうか
func (i Identity) Authenticated() bool {
	return i.UserID > 0 && i.Role.Valid()
}

// IsAdmin 管理者かどうか
func (i Identity) IsAdmin() bool {
	return i.Authenticated() && i.Role == RoleAdmin
}
