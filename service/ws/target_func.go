package ws

import (
	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/service/rbac"
)

// TargetFunc メッセージ送信対象関数
type TargetFunc func(s Session) bool

// TargetAll 全セッションを対象に送信します
func TargetAll() TargetFunc {
	return func(_ Session) bool {
		return true
	}
}

// TargetConnections 指定したキーのセッションを対象に送信します
func TargetConnections(keys ...string) TargetFunc {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return func(s Session) bool {
		_, ok := set[s.Key()]
		return ok
	}
}

// TargetUsers 指定したユーザーを対象に送信します
func TargetUsers(userIDs ...int) TargetFunc {
	return func(s Session) bool {
		i := s.Identity()
		if !i.Authenticated() {
			return false
		}
		for _, u := range userIDs {
			if u == i.UserID {
				return true
			}
		}
		return false
	}
}

// TargetRole 指定したロールのセッションを対象に送信します
func TargetRole(role model.Role) TargetFunc {
	return func(s Session) bool {
		i := s.Identity()
		return i.Authenticated() && i.Role == role
	}
}

// TargetEntitled 指定した権限を持つセッションを対象に送信します
func TargetEntitled(r rbac.RBAC, perm rbac.Permission) TargetFunc {
	return func(s Session) bool {
		return r.IsEntitled(s.Identity(), perm)
	}
}

// TargetNone いずれのセッションにも送信しません
func TargetNone() TargetFunc {
	return func(_ Session) bool {
		return false
	}
}

// Or いずれかのTargetFuncの条件に該当する対象に送信します
func Or(funcs ...TargetFunc) TargetFunc {
	return func(s Session) bool {
		for _, f := range funcs {
			if f(s) {
				return true
			}
		}
		return false
	}
}

// And すべてのTargetFuncの条件に該当する対象に送信します
func And(funcs ...TargetFunc) TargetFunc {
	return func(s Session) bool {
		for _, f := range funcs {
			if !f(s) {
				return false
			}
		}
		return true
	}
}

// Not TargetFuncの条件に該当しない対象に送信します
func Not(f TargetFunc) TargetFunc {
	return func(s Session) bool {
		return !f(s)
	}
}
