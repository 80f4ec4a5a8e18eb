package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/service/rbac"
)

type fakeSession struct {
	key      string
	identity model.Identity
}

func (f *fakeSession) Key() string              { return f.key }
func (f *fakeSession) Identity() model.Identity { return f.identity }
func (f *fakeSession) CreatedAt() time.Time     { return time.Time{} }
func (f *fakeSession) State() State             { return StateOpen }

func TestTargetFuncs(t *testing.T) {
	t.Parallel()

	admin := &fakeSession{key: "a", identity: model.Identity{UserID: 1, Role: model.RoleAdmin}}
	seller := &fakeSession{key: "s", identity: model.Identity{UserID: 2, Role: model.RoleSeller}}
	anon := &fakeSession{key: "n", identity: model.Anonymous}
	r := rbac.New()

	tests := []struct {
		name string
		f    TargetFunc
		want [3]bool
	}{
		{"all", TargetAll(), [3]bool{true, true, true}},
		{"none", TargetNone(), [3]bool{false, false, false}},
		{"connections", TargetConnections("s", "n"), [3]bool{false, true, true}},
		{"users", TargetUsers(1, 0), [3]bool{true, false, false}},
		{"role", TargetRole(model.RoleSeller), [3]bool{false, true, false}},
		{"entitled", TargetEntitled(r, rbac.ReceiveLiveLocations), [3]bool{true, false, false}},
		{"or", Or(TargetUsers(1), TargetRole(model.RoleSeller)), [3]bool{true, true, false}},
		{"and", And(TargetAll(), TargetRole(model.RoleAdmin)), [3]bool{true, false, false}},
		{"not", Not(TargetConnections("a")), [3]bool{false, true, true}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := [3]bool{tt.f(admin), tt.f(seller), tt.f(anon)}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CONNECTING", StateConnecting.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "UNKNOWN", State(9).String())
}
