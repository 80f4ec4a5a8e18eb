package presence

import (
	"sort"
	"sync"
	"time"

	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"github.com/ventas-crm/tracker/event"
	"github.com/ventas-crm/tracker/model"
)

var onlineUsersGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "tracker",
	Name:      "online_users",
}, []string{"role"})

// Entry 接続中ユーザーのエントリ
type Entry struct {
	UserID      int        `json:"userId"`
	Role        model.Role `json:"role"`
	Connections []string   `json:"connections"`
	Since       time.Time  `json:"since"`
}

type entry struct {
	role  model.Role
	conns map[string]struct{}
	since time.Time
}

// Registry 接続中ユーザーのレジストリ
//
// エントリは接続が1つ以上ある間だけ存在する
type Registry struct {
	hub *hub.Hub
	now func() time.Time

	// pubMu 変更と通知の順序を揃える
	pubMu   sync.Mutex
	mu      sync.RWMutex
	entries map[int]*entry
	owners  map[string]int
}

// NewRegistry 空のレジストリを生成します
func NewRegistry(hub *hub.Hub) *Registry {
	return &Registry{
		hub:     hub,
		now:     time.Now,
		entries: map[int]*entry{},
		owners:  map[string]int{},
	}
}

type transition struct {
	changed bool
	online  bool
	offline bool
	userID  int
	role    model.Role
	at      time.Time
	counts  model.ConnectedUsers
}

// Register 接続をユーザーのエントリに追加します. 登録済みの接続に対しては何もしません
func (r *Registry) Register(userID int, role model.Role, connKey string) {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	var moved transition
	r.mu.Lock()
	if owner, ok := r.owners[connKey]; ok {
		if owner == userID {
			r.mu.Unlock()
			return
		}
		// 別ユーザーに紐付いていた接続キーは付け替える
		moved = r.remove(connKey)
	}

	e, ok := r.entries[userID]
	if !ok {
		e = &entry{conns: map[string]struct{}{}, since: r.now()}
		r.entries[userID] = e
	} else if e.role != role {
		onlineUsersGauge.WithLabelValues(e.role.String()).Dec()
	}
	if !ok || e.role != role {
		onlineUsersGauge.WithLabelValues(role.String()).Inc()
	}
	e.role = role
	e.conns[connKey] = struct{}{}
	r.owners[connKey] = userID

	t := transition{
		changed: true,
		online:  !ok,
		userID:  userID,
		role:    role,
		at:      r.now(),
		counts:  r.countsByRole(),
	}
	r.mu.Unlock()

	if moved.changed {
		r.publishTransition(moved)
	}
	r.publishTransition(t)
}

// Unregister 接続をエントリから取り除きます. 未登録の接続に対しては何もしません
func (r *Registry) Unregister(connKey string) {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	r.mu.Lock()
	t := r.remove(connKey)
	r.mu.Unlock()

	if t.changed {
		r.publishTransition(t)
	}
}

// remove must be called with mu held.
func (r *Registry) remove(connKey string) transition {
	userID, ok := r.owners[connKey]
	if !ok {
		return transition{}
	}
	delete(r.owners, connKey)

	e := r.entries[userID]
	delete(e.conns, connKey)
	t := transition{changed: true, userID: userID, role: e.role, at: r.now()}
	if len(e.conns) == 0 {
		delete(r.entries, userID)
		onlineUsersGauge.WithLabelValues(e.role.String()).Dec()
		t.offline = true
	}
	t.counts = r.countsByRole()
	return t
}

func (r *Registry) publishTransition(t transition) {
	fields := hub.Fields{
		"user_id":  t.userID,
		"role":     t.role,
		"datetime": t.at,
	}
	if t.online {
		r.hub.Publish(hub.Message{Name: event.UserOnline, Fields: fields})
	}
	if t.offline {
		r.hub.Publish(hub.Message{Name: event.UserOffline, Fields: fields})
	}
	r.hub.Publish(hub.Message{
		Name:   event.PresenceChanged,
		Fields: hub.Fields{"counts": t.counts},
	})
}

// CountsByRole 接続中ユーザー数をロール別に集計します
func (r *Registry) CountsByRole() model.ConnectedUsers {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countsByRole()
}

func (r *Registry) countsByRole() model.ConnectedUsers {
	c := model.ConnectedUsers{Total: len(r.entries)}
	for _, e := range r.entries {
		switch e.role {
		case model.RoleAdmin:
			c.Admins++
		case model.RoleSeller:
			c.Employees++
		}
	}
	return c
}

// IsOnline 指定したユーザーが接続中かどうか
func (r *Registry) IsOnline(userID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[userID]
	return ok
}

// Connections 指定したユーザーの接続キー一覧を返します
func (r *Registry) Connections(userID int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[userID]
	if !ok {
		return nil
	}
	return sortedKeys(e.conns)
}

// Entries 全エントリをユーザーID順で返します
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]Entry, 0, len(r.entries))
	for id, e := range r.entries {
		res = append(res, Entry{
			UserID:      id,
			Role:        e.role,
			Connections: sortedKeys(e.conns),
			Since:       e.since,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].UserID < res[j].UserID })
	return res
}

func sortedKeys(m map[string]struct{}) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
