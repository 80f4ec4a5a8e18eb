package ws

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ventas-crm/tracker/event"
	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/protocol"
	"github.com/ventas-crm/tracker/service/location"
	"github.com/ventas-crm/tracker/service/presence"
	"github.com/ventas-crm/tracker/service/rbac"
)

var (
	// ErrAlreadyClosed 既に閉じられています
	ErrAlreadyClosed = errors.New("already closed")
	// ErrBufferIsFull 送信バッファが溢れました
	ErrBufferIsFull = errors.New("buffer is full")
)

var (
	openSessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tracker",
		Subsystem: "ws",
		Name:      "sessions",
	})
	droppedMessagesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Subsystem: "ws",
		Name:      "dropped_messages_total",
	}, []string{"type"})
)

// Streamer WebSocketストリーマー
type Streamer struct {
	hub       *hub.Hub
	registry  *presence.Registry
	locations *location.Manager
	rbac      rbac.RBAC
	logger    *zap.Logger
	config    Config
	sessions  map[*session]struct{}
	closed    bool
	mu        sync.RWMutex
	handlers  sync.WaitGroup
}

// NewStreamer WebSocketストリーマーを生成し起動します
func NewStreamer(hub *hub.Hub, registry *presence.Registry, locations *location.Manager, rbac rbac.RBAC, logger *zap.Logger, config Config) *Streamer {
	return &Streamer{
		hub:       hub,
		registry:  registry,
		locations: locations,
		rbac:      rbac,
		logger:    logger.Named("ws"),
		config:    config,
		sessions:  make(map[*session]struct{}),
		closed:    false,
	}
}

func (s *Streamer) register(session *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.sessions[session] = struct{}{}
	openSessionsGauge.Inc()
	return true
}

func (s *Streamer) unregister(session *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session]; ok {
		delete(s.sessions, session)
		openSessionsGauge.Dec()
	}
}

// IterateSessions 全セッションをイテレートします
func (s *Streamer) IterateSessions(f func(session Session)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for session := range s.sessions {
		f(session)
	}
}

// WriteMessage 条件に該当するセッションにメッセージを書き込み、書き込んだセッション数を返します
func (s *Streamer) WriteMessage(t string, body interface{}, targetFunc TargetFunc) int {
	m, err := makeTextMessage(t, body)
	if err != nil {
		s.logger.Error("failed to encode message", zap.String("type", t), zap.Error(err))
		return 0
	}

	n := 0
	s.mu.RLock()
	defer s.mu.RUnlock()
	for session := range s.sessions {
		if !targetFunc(session) {
			continue
		}
		if err := session.writeMessage(m); err != nil {
			if err == ErrBufferIsFull {
				droppedMessagesCounter.WithLabelValues(t).Inc()
				s.logger.Warn("Discard a message because the session's buffer is full.",
					zap.String("type", t),
					zap.String("key", session.key),
					zap.Int("userID", session.identity.UserID))
			}
			continue
		}
		n++
	}
	return n
}

// ServeHTTP http.Handlerインターフェイスの実装
func (s *Streamer) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	if s.closed {
		http.Error(rw, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		s.mu.RUnlock()
		return
	}
	s.handlers.Add(1)
	s.mu.RUnlock()
	defer s.handlers.Done()

	conn, err := upgrader.Upgrade(rw, r, rw.Header())
	if err != nil {
		s.logger.Debug("failed to upgrade connection", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	session := &session{
		key:       uuid.Must(uuid.NewV4()).String(),
		identity:  IdentityFromRequest(r),
		createdAt: time.Now(),
		state:     StateConnecting,
		ctx:       ctx,
		cancel:    cancel,
		req:       r,
		conn:      conn,
		streamer:  s,
		limiter:   s.newLimiter(),
		send:      make(chan *rawMessage, messageBufferSize),
		done:      make(chan struct{}),
	}

	// connectは他のどのメッセージよりも先に送る
	session.open()
	s.sendConnectAck(session)
	go session.writeLoop()
	if !s.register(session) {
		session.close()
		return
	}
	if session.identity.Authenticated() {
		s.registry.Register(session.identity.UserID, session.identity.Role, session.key)
	}
	s.hub.Publish(hub.Message{
		Name: event.WSConnected,
		Fields: hub.Fields{
			"session_key": session.key,
			"identity":    session.identity,
			"req":         r,
		},
	})

	session.readLoop()

	if session.identity.Authenticated() {
		s.registry.Unregister(session.key)
	}
	s.hub.Publish(hub.Message{
		Name: event.WSDisconnected,
		Fields: hub.Fields{
			"session_key": session.key,
			"identity":    session.identity,
			"req":         r,
		},
	})
	s.unregister(session)
	session.close()
}

func (s *Streamer) sendConnectAck(session *session) {
	m, err := makeTextMessage(protocol.Connect, &protocol.ConnectAck{
		ID:            session.key,
		UserID:        session.identity.UserID,
		Role:          session.identity.Role.String(),
		Authenticated: session.identity.Authenticated(),
	})
	if err != nil {
		s.logger.Error("failed to encode connect message", zap.Error(err))
		return
	}
	_ = session.writeMessage(m)
}

func (s *Streamer) newLimiter() *rate.Limiter {
	if s.config.InboundRate <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := s.config.InboundBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(s.config.InboundRate), burst)
}

// Close ストリーマーを停止します
//
// 全てのセッションを切断し、切断処理が完了するまで待ちます
func (s *Streamer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrAlreadyClosed
	}
	s.closed = true

	m := &rawMessage{
		t:    websocket.CloseMessage,
		data: websocket.FormatCloseMessage(websocket.CloseServiceRestart, "Server is stopping..."),
	}
	for session := range s.sessions {
		_ = session.writeMessage(m)
		session.close()
	}
	openSessionsGauge.Sub(float64(len(s.sessions)))
	s.sessions = make(map[*session]struct{})
	s.mu.Unlock()

	s.handlers.Wait()
	return nil
}

// IdentityFromRequest ハンドシェイクのクエリから識別情報を読み取ります
//
// userIdとroleのいずれかが不正な場合はmodel.Anonymousを返します
func IdentityFromRequest(r *http.Request) model.Identity {
	q := r.URL.Query()
	userID, err := strconv.Atoi(strings.TrimSpace(q.Get("userId")))
	if err != nil || userID <= 0 {
		return model.Anonymous
	}
	role, err := model.ParseRole(q.Get("role"))
	if err != nil {
		return model.Anonymous
	}
	return model.Identity{
		UserID: userID,
		Name:   strings.TrimSpace(q.Get("name")),
		Role:   role,
	}
}
