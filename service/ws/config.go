package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxReadMessageSize = 1 << 12 // 4KiB
	messageBufferSize  = 256
)

var upgrader = &websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Config WebSocketストリーマー設定
type Config struct {
	// InboundRate セッションごとの受信メッセージの許容レート (個/秒). 0以下で無制限
	InboundRate float64
	// InboundBurst 受信メッセージのバースト許容数
	InboundBurst int
}
