// Package client リアルタイムチャネルの購読クライアント
package client

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-querystring/query"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/protocol"
)

const (
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 30 * time.Second
	writeWait              = 10 * time.Second
)

var (
	// ErrNotConnected 接続が確立していない
	ErrNotConnected = errors.New("not connected")
	// ErrClosed アダプタは閉じられている
	ErrClosed = errors.New("adapter is closed")
)

// Handlers 受信イベントのコールバック. nilのものは呼ばれない
type Handlers struct {
	OnConnect            func(ack protocol.ConnectAck)
	OnError              func(message string)
	OnConnectError       func(err error)
	OnConnectedUsers     func(counts model.ConnectedUsers)
	OnLocation           func(reading model.LocationReading, all []model.LocationReading)
	OnSellerNotification func(decision model.DiscountDecision)
	OnCustomersUpdated   func(body protocol.CustomersUpdatedBody)
}

// Config アダプタ設定
type Config struct {
	// URL WebSocketエンドポイント (ws://host/api/ws)
	URL string
	// Identity ハンドシェイクで名乗る識別情報
	Identity model.Identity
	// Dialer nilの場合はwebsocket.DefaultDialer
	Dialer *websocket.Dialer
	// InitialInterval 再接続待機時間の初期値 (default: 500ms)
	InitialInterval time.Duration
	// MaxInterval 再接続待機時間の上限 (default: 30s)
	MaxInterval time.Duration
	Logger      *zap.Logger
}

type handshake struct {
	UserID int    `url:"userId"`
	Role   string `url:"role"`
	Name   string `url:"name,omitempty"`
}

// Adapter リアルタイムチャネルへの接続を1本だけ保持するクライアント
//
// 切断されると新しいハンドシェイクで再接続する
type Adapter struct {
	config Config
	logger *zap.Logger
	state  State

	hMu      sync.RWMutex
	handlers Handlers

	connMu  sync.Mutex
	conn    *websocket.Conn
	writeMu sync.Mutex

	openOnce sync.Once
	cancel   context.CancelFunc
	closed   bool
	wg       sync.WaitGroup
}

// NewAdapter アダプタを生成します. 接続はOpenで開始します
func NewAdapter(c Config, h Handlers) *Adapter {
	if c.Dialer == nil {
		c.Dialer = websocket.DefaultDialer
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = defaultInitialInterval
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = defaultMaxInterval
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return &Adapter{
		config:   c,
		logger:   c.Logger.Named("client"),
		handlers: h,
	}
}

// State 受信内容
func (a *Adapter) State() *State {
	return &a.state
}

// Open 接続ループを開始します. 2回目以降の呼び出しは何もしません
//
// 識別情報が揃っていない場合は接続せず、OnConnectErrorにErrNoIdentityを渡します
func (a *Adapter) Open(ctx context.Context) {
	a.openOnce.Do(func() {
		if !a.config.Identity.Authenticated() {
			a.logger.Warn("no identity. connection is not opened",
				zap.Int("userID", a.config.Identity.UserID),
				zap.String("role", a.config.Identity.Role.String()))
			if f := a.h().OnConnectError; f != nil {
				f(ErrNoIdentity)
			}
			return
		}
		ctx, cancel := context.WithCancel(ctx)
		a.connMu.Lock()
		if a.closed {
			a.connMu.Unlock()
			cancel()
			return
		}
		a.cancel = cancel
		a.connMu.Unlock()

		a.wg.Add(1)
		go a.run(ctx)
	})
}

// Close 接続を閉じて全てのハンドラを破棄します
func (a *Adapter) Close() error {
	a.connMu.Lock()
	if a.closed {
		a.connMu.Unlock()
		return ErrClosed
	}
	a.closed = true
	if a.cancel != nil {
		a.cancel()
	}
	conn := a.conn
	a.connMu.Unlock()

	if conn != nil {
		a.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		a.writeMu.Unlock()
		_ = conn.Close()
	}
	a.wg.Wait()

	a.hMu.Lock()
	a.handlers = Handlers{}
	a.hMu.Unlock()
	return nil
}

// EmitLocation 位置情報をサーバーに送信します
func (a *Adapter) EmitLocation(report model.LocationReport) error {
	return a.emit(protocol.SendLocation, report)
}

// RequestConnectedUsers 接続中ユーザー数を要求します
func (a *Adapter) RequestConnectedUsers() error {
	return a.emit(protocol.RequestConnectedUsers, nil)
}

func (a *Adapter) emit(t string, body interface{}) error {
	a.connMu.Lock()
	conn := a.conn
	closed := a.closed
	a.connMu.Unlock()
	if closed {
		return ErrClosed
	}
	if conn == nil {
		return ErrNotConnected
	}
	b, err := protocol.Encode(t, body)
	if err != nil {
		return err
	}
	return a.write(conn, b)
}

func (a *Adapter) write(conn *websocket.Conn, b []byte) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}

func (a *Adapter) h() Handlers {
	a.hMu.RLock()
	defer a.hMu.RUnlock()
	return a.handlers
}

func (a *Adapter) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.config.InitialInterval
	b.MaxInterval = a.config.MaxInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (a *Adapter) run(ctx context.Context) {
	defer a.wg.Done()
	b := a.newBackOff()
	for {
		conn, err := a.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			a.logger.Debug("failed to connect", zap.Error(err))
			if f := a.h().OnConnectError; f != nil {
				f(err)
			}
		} else {
			b.Reset()
			a.serve(ctx, conn)
		}

		wait := b.NextBackOff()
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (a *Adapter) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(a.config.URL)
	if err != nil {
		return nil, err
	}
	q, err := query.Values(&handshake{
		UserID: a.config.Identity.UserID,
		Role:   a.config.Identity.Role.String(),
		Name:   a.config.Identity.Name,
	})
	if err != nil {
		return nil, err
	}
	u.RawQuery = q.Encode()

	conn, res, err := a.config.Dialer.DialContext(ctx, u.String(), nil)
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	a.connMu.Lock()
	if a.closed {
		a.connMu.Unlock()
		_ = conn.Close()
		return nil, ErrClosed
	}
	a.conn = conn
	a.connMu.Unlock()
	return conn, nil
}

func (a *Adapter) serve(ctx context.Context, conn *websocket.Conn) {
	defer func() {
		a.connMu.Lock()
		if a.conn == conn {
			a.conn = nil
		}
		a.connMu.Unlock()
		_ = conn.Close()
	}()

	if a.config.Identity.IsAdmin() {
		if err := a.RequestConnectedUsers(); err != nil {
			a.logger.Debug("failed to request connected users", zap.Error(err))
		}
	}

	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				a.logger.Debug("disconnected", zap.Error(err))
			}
			return
		}
		m, err := protocol.Decode(b)
		if err != nil {
			a.logger.Debug("invalid message", zap.Error(err))
			continue
		}
		a.dispatch(m)
	}
}

func (a *Adapter) dispatch(m *protocol.Message) {
	h := a.h()
	var err error
	switch m.Type {
	case protocol.Connect:
		var ack protocol.ConnectAck
		if err = m.UnmarshalBody(&ack); err == nil && h.OnConnect != nil {
			h.OnConnect(ack)
		}
	case protocol.Error:
		var msg string
		if err = m.UnmarshalBody(&msg); err == nil && h.OnError != nil {
			h.OnError(msg)
		}
	case protocol.UpdateConnectedUsers:
		var counts model.ConnectedUsers
		if err = m.UnmarshalBody(&counts); err == nil {
			a.state.setCounts(counts)
			if h.OnConnectedUsers != nil {
				h.OnConnectedUsers(counts)
			}
		}
	case protocol.ReceiveLocation:
		var reading model.LocationReading
		if err = m.UnmarshalBody(&reading); err == nil {
			all := a.state.reconcile(reading)
			if h.OnLocation != nil {
				h.OnLocation(reading, all)
			}
		}
	case protocol.NewNotificationToSeller:
		var d model.DiscountDecision
		if err = m.UnmarshalBody(&d); err == nil && h.OnSellerNotification != nil {
			h.OnSellerNotification(d)
		}
	case protocol.CustomersUpdated:
		var body protocol.CustomersUpdatedBody
		if err = m.UnmarshalBody(&body); err == nil && h.OnCustomersUpdated != nil {
			h.OnCustomersUpdated(body)
		}
	default:
		a.logger.Debug("unknown event", zap.String("type", m.Type))
	}
	if err != nil {
		a.logger.Debug("failed to decode event body", zap.String("type", m.Type), zap.Error(err))
	}
}
