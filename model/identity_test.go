package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_Authenticated(t *testing.T) {
	t.Parallel()

	assert.False(t, Anonymous.Authenticated())
	assert.False(t, Identity{UserID: 1}.Authenticated())
	assert.False(t, Identity{Role: RoleAdmin}.Authenticated())
	assert.False(t, Identity{UserID: -1, Role: RoleSeller}.Authenticated())
	assert.False(t, Identity{UserID: 1, Role: "MANAGER"}.Authenticated())
	assert.True(t, Identity{UserID: 1, Role: RoleSeller}.Authenticated())
}

func TestIdentity_IsAdmin(t *testing.T) {
	t.Parallel()

	assert.True(t, Identity{UserID: 1, Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{UserID: 1, Role: RoleSeller}.IsAdmin())
	assert.False(t, Identity{Role: RoleAdmin}.IsAdmin())
}
