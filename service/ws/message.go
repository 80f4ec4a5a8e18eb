package ws

import (
	"github.com/gorilla/websocket"

	"github.com/ventas-crm/tracker/protocol"
)

type rawMessage struct {
	t    int
	data []byte
}

func makeTextMessage(t string, body interface{}) (*rawMessage, error) {
	b, err := protocol.Encode(t, body)
	if err != nil {
		return nil, err
	}
	return &rawMessage{t: websocket.TextMessage, data: b}, nil
}
