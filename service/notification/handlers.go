package notification

import (
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/event"
	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/protocol"
)

type eventHandler func(ns *Service, ev hub.Message)

var handlerMap = map[string]eventHandler{
	event.LocationRecorded: locationRecordedHandler,
	event.PresenceChanged:  presenceChangedHandler,
	event.DiscountDecided:  discountDecidedHandler,
}

func locationRecordedHandler(ns *Service, ev hub.Message) {
	reading, ok := ev.Fields["reading"].(model.LocationReading)
	if !ok {
		return
	}
	ns.emitToEntitled(protocol.ReceiveLocation, reading)
}

func presenceChangedHandler(ns *Service, ev hub.Message) {
	if ns.countsThrottle != nil {
		ns.countsThrottle.Trigger()
		return
	}
	counts, ok := ev.Fields["counts"].(model.ConnectedUsers)
	if !ok {
		counts = ns.registry.CountsByRole()
	}
	ns.pushCounts(counts)
}

func discountDecidedHandler(ns *Service, ev hub.Message) {
	d, ok := ev.Fields["decision"].(model.DiscountDecision)
	if !ok {
		return
	}
	if n := ns.EmitToUser(d.SellerID, protocol.NewNotificationToSeller, d); n == 0 {
		ns.logger.Debug("seller is not connected", zap.Int("sellerID", d.SellerID))
	}
	ns.EmitToRole(model.RoleSeller, protocol.CustomersUpdated, &protocol.CustomersUpdatedBody{CustomerID: d.CustomerID})
}
