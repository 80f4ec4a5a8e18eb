package ws

import (
	"errors"
	"fmt"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/protocol"
	"github.com/ventas-crm/tracker/service/location"
	"github.com/ventas-crm/tracker/service/rbac"
)

func (s *session) messageHandler(data []byte) {
	if !s.limiter.Allow() {
		s.sendErrorMessage("rate limit exceeded")
		return
	}

	m, err := protocol.Decode(data)
	if err != nil || len(m.Type) == 0 {
		s.sendErrorMessage("invalid message")
		return
	}

	switch m.Type {
	case protocol.RequestConnectedUsers:
		// requestConnectedUsers
		if !s.streamer.rbac.IsEntitled(s.identity, rbac.RequestConnectedUsers) {
			s.sendErrorMessage(fmt.Sprintf("forbidden: %s", m.Type))
			break
		}
		s.sendMessage(protocol.UpdateConnectedUsers, s.streamer.registry.CountsByRole())

	case protocol.SendLocation:
		// sendLocation:{latitud, longitud, timestamp?, usuario?}
		if !s.streamer.rbac.IsEntitled(s.identity, rbac.ReportLocation) {
			s.sendErrorMessage(fmt.Sprintf("forbidden: %s", m.Type))
			break
		}

		var report model.LocationReport
		if err := m.UnmarshalBody(&report); err != nil {
			s.sendErrorMessage(fmt.Sprintf("invalid body: %s", m.Type))
			break
		}
		if _, err := s.streamer.locations.Report(s.ctx, s.identity, report); err != nil {
			var verr vd.Errors
			switch {
			case errors.As(err, &verr):
				s.sendErrorMessage(fmt.Sprintf("invalid location: %s", verr.Error()))
			case errors.Is(err, location.ErrUnauthenticated):
				s.sendErrorMessage(fmt.Sprintf("forbidden: %s", m.Type))
			default:
				s.streamer.logger.Error("failed to record location", zap.Int("userID", s.identity.UserID), zap.Error(err))
				s.sendErrorMessage("internal error")
			}
		}

	default:
		// 不明なイベント
		s.sendErrorMessage(fmt.Sprintf("unknown event: %s", m.Type))
	}
}

func (s *session) sendMessage(t string, body interface{}) {
	m, err := makeTextMessage(t, body)
	if err != nil {
		s.streamer.logger.Error("failed to encode message", zap.String("type", t), zap.Error(err))
		return
	}
	if err := s.writeMessage(m); err == ErrBufferIsFull {
		droppedMessagesCounter.WithLabelValues(t).Inc()
	}
}

func (s *session) sendErrorMessage(message string) {
	s.sendMessage(protocol.Error, message)
}
