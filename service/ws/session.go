package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/ventas-crm/tracker/model"
)

// State セッションの状態
type State int

const (
	// StateConnecting ハンドシェイク中
	StateConnecting State = iota
	// StateOpen 接続中
	StateOpen
	// StateClosed 切断済み. 再び開かれることはない
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Session WebSocketセッション
type Session interface {
	Key() string
	// Identity このセッションの識別情報. 未認証の場合はmodel.Anonymous
	Identity() model.Identity
	CreatedAt() time.Time
	State() State
}

type session struct {
	key       string
	identity  model.Identity
	createdAt time.Time

	state State
	sync.RWMutex

	ctx      context.Context
	cancel   context.CancelFunc
	req      *http.Request
	conn     *websocket.Conn
	streamer *Streamer
	limiter  *rate.Limiter
	send     chan *rawMessage
	done     chan struct{}
}

func (s *session) readLoop() {
	s.conn.SetReadLimit(maxReadMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		t, m, err := s.conn.ReadMessage()
		if err != nil {
			break
		}

		if t == websocket.TextMessage {
			s.messageHandler(m)
		}

		if t == websocket.BinaryMessage {
			// unsupported
			_ = s.writeMessage(&rawMessage{t: websocket.CloseMessage, data: websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "binary message is not supported.")})
			break
		}
	}
}

func (s *session) writeLoop() {
	defer close(s.done)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-s.send:
			if !ok {
				return
			}

			if err := s.write(msg.t, msg.data); err != nil {
				return
			}

			if msg.t == websocket.CloseMessage {
				return
			}

		case <-ticker.C:
			_ = s.write(websocket.PingMessage, []byte{})
		}
	}
}

func (s *session) writeMessage(msg *rawMessage) error {
	s.RLock()
	defer s.RUnlock()
	if s.state != StateOpen {
		return ErrAlreadyClosed
	}

	select {
	case s.send <- msg:
	default:
		return ErrBufferIsFull
	}
	return nil
}

func (s *session) write(messageType int, data []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

func (s *session) open() {
	s.Lock()
	defer s.Unlock()
	if s.state == StateConnecting {
		s.state = StateOpen
	}
}

func (s *session) close() {
	s.Lock()
	if s.state == StateClosed {
		s.Unlock()
		return
	}
	s.state = StateClosed
	close(s.send)
	s.Unlock()

	// 送信待ちのメッセージ(Closeフレームを含む)を書き出してから切断する
	select {
	case <-s.done:
	case <-time.After(writeWait):
	}
	s.cancel()
	s.conn.Close()
}

// Key implements Session interface.
func (s *session) Key() string {
	return s.key
}

// Identity implements Session interface.
func (s *session) Identity() model.Identity {
	return s.identity
}

// CreatedAt implements Session interface.
func (s *session) CreatedAt() time.Time {
	return s.createdAt
}

// State implements Session interface.
func (s *session) State() State {
	s.RLock()
	defer s.RUnlock()
	return s.state
}
