package client

import (
	"sync"

	"github.com/samber/lo"

	"github.com/ventas-crm/tracker/model"
)

// Reconcile readingをlistに反映した新しいスライスを返します
//
// 同じユーザーの要素があればその位置で置き換え, なければ末尾に追加する. listは変更しない
func Reconcile(list []model.LocationReading, reading model.LocationReading) []model.LocationReading {
	res := make([]model.LocationReading, len(list), len(list)+1)
	copy(res, list)
	if _, i, ok := lo.FindIndexOf(res, func(r model.LocationReading) bool { return r.UserID == reading.UserID }); ok {
		res[i] = reading
		return res
	}
	return append(res, reading)
}

// State アダプタが受信した内容の写し
type State struct {
	mu        sync.RWMutex
	counts    model.ConnectedUsers
	locations []model.LocationReading
}

// Counts 最後に受信した接続中ユーザー数
func (s *State) Counts() model.ConnectedUsers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts
}

// Locations 受信した位置情報の一覧. 受信順
func (s *State) Locations() []model.LocationReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.LocationReading(nil), s.locations...)
}

func (s *State) setCounts(c model.ConnectedUsers) {
	s.mu.Lock()
	s.counts = c
	s.mu.Unlock()
}

func (s *State) reconcile(r model.LocationReading) []model.LocationReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = Reconcile(s.locations, r)
	return append([]model.LocationReading(nil), s.locations...)
}
