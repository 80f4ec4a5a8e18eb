package location

import (
	"sort"
	"sync"
	"time"

	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/event"
	"github.com/ventas-crm/tracker/model"
)

var recordedReadingsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tracker",
	Name:      "location_readings_total",
})

const gcInterval = 1 * time.Minute

// Config 位置情報ストア設定
type Config struct {
	// Retention 最後の受信からこの時間を過ぎたエントリを削除します. 0は無期限
	Retention time.Duration
}

// Entry ストア内の位置情報
type Entry struct {
	model.LocationReading
	ReceivedAt time.Time `json:"receivedAt"`
	// Stale ユーザーが切断してから新しい位置情報を受け取っていない
	Stale bool `json:"stale"`
}

// Store ユーザーごとの最新位置情報
//
// 受信順で上書きする. 時刻の比較は行わない
type Store struct {
	hub    *hub.Hub
	logger *zap.Logger
	config Config
	now    func() time.Time

	pubMu   sync.Mutex
	mu      sync.RWMutex
	entries map[int]*Entry

	sub    hub.Subscription
	closer chan struct{}
	wg     sync.WaitGroup
}

// NewStore 位置情報ストアを生成して起動します
func NewStore(hub *hub.Hub, logger *zap.Logger, config Config) *Store {
	s := &Store{
		hub:     hub,
		logger:  logger.Named("location"),
		config:  config,
		now:     time.Now,
		entries: map[int]*Entry{},
		closer:  make(chan struct{}),
	}
	s.sub = hub.Subscribe(100, event.UserOffline)
	s.wg.Add(1)
	go s.offlineLoop()
	if config.Retention > 0 {
		s.wg.Add(1)
		go s.gcLoop()
	}
	return s
}

// Record 位置情報を記録し、location.recordedを発行します
func (s *Store) Record(r model.LocationReading) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	s.entries[r.UserID] = &Entry{LocationReading: r, ReceivedAt: s.now()}
	s.mu.Unlock()
	recordedReadingsCounter.Inc()

	s.hub.Publish(hub.Message{
		Name: event.LocationRecorded,
		Fields: hub.Fields{
			"user_id": r.UserID,
			"reading": r,
		},
	})
}

// Restore 永続化されていた位置情報を読み込みます. 既存のエントリは上書きしません
func (s *Store) Restore(readings []model.LocationReading) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := s.now()
	for _, r := range readings {
		if _, ok := s.entries[r.UserID]; ok {
			continue
		}
		s.entries[r.UserID] = &Entry{LocationReading: r, ReceivedAt: now, Stale: true}
		n++
	}
	return n
}

// Get 指定したユーザーの位置情報を取得します
func (s *Store) Get(userID int) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[userID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// All 全ての位置情報をユーザーID順で取得します
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		res = append(res, *e)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].UserID < res[j].UserID })
	return res
}

// MarkStale 指定したユーザーの位置情報を古いものとして印を付けます
func (s *Store) MarkStale(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		return false
	}
	e.Stale = true
	return true
}

// MarkStaleBefore 指定時刻以前に受信した位置情報のみ古いものとして印を付けます
//
// 指定時刻より後に受信したエントリはそのまま残します
func (s *Store) MarkStaleBefore(userID int, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok || e.ReceivedAt.After(at) {
		return false
	}
	e.Stale = true
	return true
}

// Remove 指定したユーザーの位置情報を削除します
func (s *Store) Remove(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[userID]; !ok {
		return false
	}
	delete(s.entries, userID)
	return true
}

// Purge 指定時刻より前に受信したエントリを削除し、削除したユーザーIDを返します
func (s *Store) Purge(before time.Time) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []int
	for id, e := range s.entries {
		if e.ReceivedAt.Before(before) {
			delete(s.entries, id)
			removed = append(removed, id)
		}
	}
	sort.Ints(removed)
	return removed
}

// Close ストアのバックグラウンド処理を停止します
func (s *Store) Close() {
	s.hub.Unsubscribe(s.sub)
	close(s.closer)
	s.wg.Wait()
}

func (s *Store) offlineLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.closer:
			return
		case msg, ok := <-s.sub.Receiver:
			if !ok {
				return
			}
			userID, _ := msg.Fields["user_id"].(int)
			var marked bool
			if at, ok := msg.Fields["datetime"].(time.Time); ok {
				// 切断後に再接続して報告された位置情報は古くない
				marked = s.MarkStaleBefore(userID, at)
			} else {
				marked = s.MarkStale(userID)
			}
			if marked {
				s.logger.Debug("location marked stale", zap.Int("userID", userID))
			}
		}
	}
}

func (s *Store) gcLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.closer:
			return
		case <-ticker.C:
			if removed := s.Purge(s.now().Add(-s.config.Retention)); len(removed) > 0 {
				s.logger.Info("purged expired locations", zap.Ints("userIDs", removed))
			}
		}
	}
}
