package model

import (
	"errors"
	"strings"
)

// Role CRM上のユーザーロール
type Role string

const (
	// RoleAdmin 管理者
	RoleAdmin Role = "ADMIN"
	// RoleSeller 販売員
	RoleSeller Role = "VENDEDOR"
)

// ErrInvalidRole 不明なロール
var ErrInvalidRole = errors.New("invalid role")

// ParseRole 文字列をロールに変換します。SELLERはVENDEDORの別名として扱います
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleSeller), "SELLER":
		return RoleSeller, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid 既知のロールかどうか
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller
}

func (r Role) String() string {
	return string(r)
}

// Roles 全ての既知のロール
func Roles() []Role {
	return []Role{RoleAdmin, RoleSeller}
}
