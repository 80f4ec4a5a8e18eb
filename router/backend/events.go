package backend

import (
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"

	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/router/extension/herror"
)

// PostEventRequest POST /internal/events リクエストボディ
type PostEventRequest struct {
	Event   string              `json:"event"`
	Payload jsoniter.RawMessage `json:"payload"`
	UserID  *int                `json:"userId"`
	Role    *string             `json:"role"`
}

func (r PostEventRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Event, vd.Required, vd.Length(1, 64)),
		vd.Field(&r.UserID, vd.NilOrNotEmpty, vd.Min(1)),
		vd.Field(&r.Role, vd.NilOrNotEmpty, vd.By(func(v interface{}) error {
			var s string
			switch r := v.(type) {
			case *string:
				if r == nil {
					return nil
				}
				s = *r
			case string:
				s = r
			}
			_, err := model.ParseRole(s)
			return err
		})),
	)
}

type postEventResponse struct {
	Delivered int `json:"delivered"`
}

// PostEvent POST /internal/events
func (h *Handlers) PostEvent(c echo.Context) error {
	var req PostEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.UserID != nil && req.Role != nil {
		return herror.BadRequest("userId and role are exclusive")
	}

	var payload interface{}
	if len(req.Payload) > 0 {
		payload = req.Payload
	}

	var n int
	switch {
	case req.UserID != nil:
		n = h.Notification.EmitToUser(*req.UserID, req.Event, payload)
	case req.Role != nil:
		role, _ := model.ParseRole(*req.Role)
		n = h.Notification.EmitToRole(role, req.Event, payload)
	default:
		n = h.Notification.EmitToAll(req.Event, payload)
	}
	return c.JSON(http.StatusAccepted, &postEventResponse{Delivered: n})
}
