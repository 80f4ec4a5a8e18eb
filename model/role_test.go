package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"ADMIN", RoleAdmin, false},
		{"admin", RoleAdmin, false},
		{"VENDEDOR", RoleSeller, false},
		{" vendedor ", RoleSeller, false},
		{"SELLER", RoleSeller, false},
		{"", "", true},
		{"MANAGER", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			r, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRole)
			} else if assert.NoError(t, err) {
				assert.Equal(t, tt.want, r)
			}
		})
	}
}

func TestIdentity_AuthenticatedByRole(t *testing.T) {
	t.Parallel()

	assert.True(t, Identity{UserID: 1, Role: RoleAdmin}.Authenticated())
	assert.True(t, Identity{UserID: 2, Role: RoleSeller}.Authenticated())
	assert.False(t, Identity{UserID: 0, Role: RoleAdmin}.Authenticated())
	assert.False(t, Identity{UserID: 3, Role: "MANAGER"}.Authenticated())
	assert.False(t, Anonymous.Authenticated())

	assert.True(t, Identity{UserID: 1, Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{UserID: 2, Role: RoleSeller}.IsAdmin())
}
