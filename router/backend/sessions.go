package backend

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ventas-crm/tracker/service/ws"
)

type sessionResponse struct {
	Key           string    `json:"key"`
	UserID        int       `json:"userId"`
	Role          string    `json:"role"`
	Authenticated bool      `json:"authenticated"`
	State         string    `json:"state"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GetSessions GET /internal/sessions
func (h *Handlers) GetSessions(c echo.Context) error {
	res := make([]sessionResponse, 0)
	h.WS.IterateSessions(func(s ws.Session) {
		i := s.Identity()
		res = append(res, sessionResponse{
			Key:           s.Key(),
			UserID:        i.UserID,
			Role:          i.Role.String(),
			Authenticated: i.Authenticated(),
			State:         s.State().String(),
			CreatedAt:     s.CreatedAt(),
		})
	})
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return c.JSON(http.StatusOK, res)
}
