package notification

import (
	"time"

	"github.com/boz/go-throttle"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/protocol"
	"github.com/ventas-crm/tracker/service/presence"
	"github.com/ventas-crm/tracker/service/rbac"
	"github.com/ventas-crm/tracker/service/ws"
)

// Config 通知サービス設定
type Config struct {
	// CountsPushInterval updateConnectedUsersの最短送信間隔. 0の場合は変化ごとに送信
	CountsPushInterval time.Duration
}

// eventPermissions イベントの受信に必要な権限
var eventPermissions = map[string]rbac.Permission{
	protocol.ReceiveLocation:         rbac.ReceiveLiveLocations,
	protocol.UpdateConnectedUsers:    rbac.ReceiveConnectedUsers,
	protocol.NewNotificationToSeller: rbac.ReceiveSellerNotifications,
	protocol.CustomersUpdated:        rbac.ReceiveSellerNotifications,
}

// Service 通知サービス
type Service struct {
	hub      *hub.Hub
	ws       *ws.Streamer
	registry *presence.Registry
	rbac     rbac.RBAC
	logger   *zap.Logger

	sub            hub.Subscription
	countsThrottle throttle.ThrottleDriver
	done           chan struct{}
}

// NewService 通知サービスを作成して起動します
func NewService(hub *hub.Hub, streamer *ws.Streamer, registry *presence.Registry, rbac rbac.RBAC, logger *zap.Logger, config Config) *Service {
	service := &Service{
		hub:      hub,
		ws:       streamer,
		registry: registry,
		rbac:     rbac,
		logger:   logger.Named("notification"),
		done:     make(chan struct{}),
	}
	if config.CountsPushInterval > 0 {
		service.countsThrottle = throttle.ThrottleFunc(config.CountsPushInterval, true, func() {
			service.pushCounts(service.registry.CountsByRole())
		})
	}

	topics := make([]string, 0, len(handlerMap))
	for k := range handlerMap {
		topics = append(topics, k)
	}
	service.sub = hub.Subscribe(1000, topics...)
	go func() {
		defer close(service.done)
		// ユーザーごとの送信順を保つため、逐次処理する
		for msg := range service.sub.Receiver {
			if h, ok := handlerMap[msg.Topic()]; ok {
				h(service, msg)
			}
		}
	}()
	return service
}

// EmitToUser 指定したユーザーの接続のうち、イベントの受信権限を持つものに送信し、送信した接続数を返します
//
// 受信権限はロールで決まるため、newNotificationToSellerはADMINのユーザーには届きません.
// ユーザーが接続していない場合は何もしません
func (s *Service) EmitToUser(userID int, event string, payload interface{}) int {
	conns := s.registry.Connections(userID)
	if len(conns) == 0 {
		return 0
	}
	return s.ws.WriteMessage(event, payload, ws.And(ws.TargetConnections(conns...), s.entitled(event)))
}

// EmitToRole 指定したロールの全ての接続にイベントを送信し、送信した接続数を返します
func (s *Service) EmitToRole(role model.Role, event string, payload interface{}) int {
	return s.ws.WriteMessage(event, payload, ws.And(ws.TargetRole(role), s.entitled(event)))
}

// EmitToAll 全ての接続にイベントを送信し、送信した接続数を返します. 未認証の接続も含みます
func (s *Service) EmitToAll(event string, payload interface{}) int {
	return s.ws.WriteMessage(event, payload, ws.TargetAll())
}

// emitToEntitled イベントの受信権限を持つ全ての接続に送信します
func (s *Service) emitToEntitled(event string, payload interface{}) int {
	perm, ok := eventPermissions[event]
	if !ok {
		return 0
	}
	return s.ws.WriteMessage(event, payload, ws.TargetEntitled(s.rbac, perm))
}

func (s *Service) entitled(event string) ws.TargetFunc {
	perm, ok := eventPermissions[event]
	if !ok {
		return ws.TargetAll()
	}
	return ws.TargetEntitled(s.rbac, perm)
}

func (s *Service) pushCounts(counts model.ConnectedUsers) {
	s.emitToEntitled(protocol.UpdateConnectedUsers, counts)
}

// Close 通知サービスを停止します
func (s *Service) Close() {
	s.hub.Unsubscribe(s.sub)
	<-s.done
	if s.countsThrottle != nil {
		s.countsThrottle.Stop()
	}
}
