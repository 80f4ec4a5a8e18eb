package rbac

import (
	"github.com/ventas-crm/tracker/model"
)

// RBAC Role-based Access Controllerインターフェース
//
// 接続のロールによる機能の出し分けは全てこのインターフェースを経由すること
type RBAC interface {
	// IsGranted 指定したロールで指定した権限が許可されているかどうか
	IsGranted(role model.Role, perm Permission) bool
	// IsEntitled 指定した接続主体が指定した権限を持つかどうか. 未認証の主体は常にfalse
	IsEntitled(identity model.Identity, perm Permission) bool
	// GetGrantedPermissions 指定したロールに与えられている全ての権限を取得します
	GetGrantedPermissions(role model.Role) []Permission
}
