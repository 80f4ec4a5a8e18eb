// Package protocol リアルタイムチャネルのイベント名とメッセージ形式
package protocol

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Connect ハンドシェイク完了 (server -> client)
	Connect = "connect"
	// Error エラー通知 (server -> client)
	Error = "error"
	// RequestConnectedUsers 接続中ユーザー数の要求 (client -> server)
	RequestConnectedUsers = "requestConnectedUsers"
	// SendLocation 位置情報の報告 (client -> server)
	SendLocation = "sendLocation"
	// UpdateConnectedUsers 接続中ユーザー数 (server -> client)
	UpdateConnectedUsers = "updateConnectedUsers"
	// ReceiveLocation 位置情報 (server -> client)
	ReceiveLocation = "receiveLocation"
	// NewNotificationToSeller 販売員への通知 (server -> client)
	NewNotificationToSeller = "newNotificationToSeller"
	// CustomersUpdated 顧客一覧の更新通知 (server -> client)
	CustomersUpdated = "customersUpdated"
)

// Message WebSocketで送受信するメッセージ
type Message struct {
	Type string              `json:"type"`
	Body jsoniter.RawMessage `json:"body,omitempty"`
}

type outgoing struct {
	Type string      `json:"type"`
	Body interface{} `json:"body"`
}

// Encode メッセージをJSONにエンコードします
func Encode(t string, body interface{}) ([]byte, error) {
	return json.Marshal(&outgoing{Type: t, Body: body})
}

// Decode JSONをメッセージにデコードします
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UnmarshalBody 本文をvにデコードします
func (m *Message) UnmarshalBody(v interface{}) error {
	if len(m.Body) == 0 {
		return nil
	}
	return json.Unmarshal(m.Body, v)
}

// ConnectAck connectイベントの本文
type ConnectAck struct {
	ID            string `json:"id"`
	UserID        int    `json:"userId"`
	Role          string `json:"role"`
	Authenticated bool   `json:"authenticated"`
}

// CustomersUpdatedBody customersUpdatedイベントの本文
type CustomersUpdatedBody struct {
	CustomerID int `json:"clienteId"`
}
