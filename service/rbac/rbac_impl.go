package rbac

import (
	"slices"

	"github.com/samber/lo"

	"github.com/ventas-crm/tracker/model"
)

type rbacImpl struct {
	grants map[model.Role]map[Permission]struct{}
}

// New RBACを初期化
func New() RBAC {
	return NewWithGrants(defaultGrants)
}

// NewWithGrants 指定したロールと権限の対応でRBACを初期化
func NewWithGrants(grants map[model.Role][]Permission) RBAC {
	r := &rbacImpl{grants: make(map[model.Role]map[Permission]struct{}, len(grants))}
	for role, perms := range grants {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		r.grants[role] = set
	}
	return r
}

func (r *rbacImpl) IsGranted(role model.Role, perm Permission) bool {
	perms, ok := r.grants[role]
	if !ok {
		return false
	}
	_, ok = perms[perm]
	return ok
}

func (r *rbacImpl) IsEntitled(identity model.Identity, perm Permission) bool {
	if !identity.Authenticated() {
		return false
	}
	return r.IsGranted(identity.Role, perm)
}

func (r *rbacImpl) GetGrantedPermissions(role model.Role) []Permission {
	perms := lo.Keys(r.grants[role])
	slices.Sort(perms)
	return perms
}
