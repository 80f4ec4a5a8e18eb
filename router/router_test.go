package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/event"
	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/protocol"
	"github.com/ventas-crm/tracker/router/consts"
	"github.com/ventas-crm/tracker/service"
	"github.com/ventas-crm/tracker/service/directory"
	"github.com/ventas-crm/tracker/service/location"
	"github.com/ventas-crm/tracker/service/notification"
	"github.com/ventas-crm/tracker/service/presence"
	"github.com/ventas-crm/tracker/service/rbac"
	"github.com/ventas-crm/tracker/service/ws"
	"github.com/ventas-crm/tracker/utils/jwt"
)

const testSecret = "test-backend-secret"

type Env struct {
	Hub      *hub.Hub
	Services *service.Services
	Server   *httptest.Server
}

// setup テストセットアップ
func setup(t *testing.T, config Config) *Env {
	t.Helper()
	h := hub.New()
	registry := presence.NewRegistry(h)
	store := location.NewStore(h, zap.NewNop(), location.Config{})
	dir := directory.NewNullDirectory()
	manager := location.NewManager(store, dir, zap.NewNop())
	r := rbac.New()
	streamer := ws.NewStreamer(h, registry, manager, r, zap.NewNop(), ws.Config{})
	ns := notification.NewService(h, streamer, registry, r, zap.NewNop(), notification.Config{})
	ss := &service.Services{
		Directory:       dir,
		LocationManager: manager,
		LocationStore:   store,
		Notification:    ns,
		RBAC:            r,
		Registry:        registry,
		WS:              streamer,
	}

	config.Registerer = prometheus.NewRegistry()
	config.Version = "version"
	config.Revision = "revision"
	server := httptest.NewServer(Setup(h, ss, zap.NewNop(), &config))
	t.Cleanup(func() {
		_ = streamer.Close()
		server.Close()
		ns.Close()
		store.Close()
	})
	return &Env{Hub: h, Services: ss, Server: server}
}

// R リクエストテスターを作成
func (env *Env) R(t *testing.T) *httpexpect.Expect {
	t.Helper()
	return httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  env.Server.URL,
		Reporter: httpexpect.NewAssertReporter(t),
		Printers: []httpexpect.Printer{
			httpexpect.NewCurlPrinter(t),
			httpexpect.NewDebugPrinter(t, true),
		},
		Client: &http.Client{
			Jar:     nil, // クッキーは保持しない
			Timeout: time.Second * 30,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse // リダイレクトを自動処理しない
			},
		},
	})
}

// Dial WebSocket接続を行い、connectイベントを読み捨てます
func (env *Env) Dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(env.Server.URL, "http") + "/api/ws?" + query
	conn, res, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	_ = res.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, b, err := conn.ReadMessage()
	require.NoError(t, err)
	m, err := protocol.Decode(b)
	require.NoError(t, err)
	require.Equal(t, protocol.Connect, m.Type)
	return conn
}

// T バックエンド用トークンを発行
func T(t *testing.T) string {
	t.Helper()
	s, err := jwt.NewSigner(testSecret)
	require.NoError(t, err)
	token, err := s.SignBackend("crm", time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestPing(t *testing.T) {
	t.Parallel()
	env := setup(t, Config{})

	e := env.R(t)
	e.GET("/api/ping").
		Expect().
		Status(http.StatusOK).
		Header(consts.HeaderVersion).IsEqual("version")

	obj := e.GET("/api/version").
		Expect().
		Status(http.StatusOK).
		JSON().
		Object()
	obj.Value("version").String().IsEqual("version")
	obj.Value("revision").String().IsEqual("revision")

	e.GET("/api/metrics").
		Expect().
		Status(http.StatusOK)
}

func TestInternalDisabled(t *testing.T) {
	t.Parallel()
	env := setup(t, Config{})

	e := env.R(t)
	e.GET("/api/internal/presence").
		WithHeader(echo.HeaderAuthorization, T(t)).
		Expect().
		Status(http.StatusNotFound)
}

func TestBackendAuthenticate(t *testing.T) {
	t.Parallel()
	env := setup(t, Config{BackendSecret: testSecret})
	path := "/api/internal/presence"

	t.Run("no header", func(t *testing.T) {
		t.Parallel()
		env.R(t).GET(path).
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("invalid scheme", func(t *testing.T) {
		t.Parallel()
		env.R(t).GET(path).
			WithHeader(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz").
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		s, err := jwt.NewSigner("other")
		require.NoError(t, err)
		token, err := s.SignBackend("crm", time.Minute)
		require.NoError(t, err)
		env.R(t).GET(path).
			WithHeader(echo.HeaderAuthorization, "Bearer "+token).
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		env.R(t).GET(path).
			WithHeader(echo.HeaderAuthorization, T(t)).
			Expect().
			Status(http.StatusOK)
	})
}

func TestGetPresence(t *testing.T) {
	t.Parallel()
	env := setup(t, Config{BackendSecret: testSecret})

	env.Dial(t, "userId=1&role=ADMIN")
	env.Dial(t, "userId=2&role=VENDEDOR")
	env.Dial(t, "userId=2&role=VENDEDOR")
	env.Dial(t, "userId=3&role=SELLER")
	assert.Eventually(t, func() bool {
		return env.Services.Registry.CountsByRole().Total == 3 && len(env.Services.Registry.Connections(2)) == 2
	}, time.Second, 10*time.Millisecond)

	obj := env.R(t).GET("/api/internal/presence").
		WithHeader(echo.HeaderAuthorization, T(t)).
		Expect().
		Status(http.StatusOK).
		JSON().
		Object()

	counts := obj.Value("counts").Object()
	counts.Value("totalConnectedUsers").Number().IsEqual(3)
	counts.Value("totalEmployees").Number().IsEqual(2)
	counts.Value("totalAdmins").Number().IsEqual(1)

	entries := obj.Value("entries").Array()
	entries.Length().IsEqual(3)
	entries.Value(1).Object().Value("userId").Number().IsEqual(2)
	entries.Value(1).Object().Value("connections").Array().Length().IsEqual(2)
}

func TestGetLocations(t *testing.T) {
	t.Parallel()
	env := setup(t, Config{BackendSecret: testSecret})

	env.Services.LocationStore.Record(model.LocationReading{Latitude: 1, Longitude: 2, UserID: 5})
	env.Services.LocationStore.Record(model.LocationReading{Latitude: 3, Longitude: 4, UserID: 4})
	env.Services.LocationStore.MarkStale(5)

	e := env.R(t)
	arr := e.GET("/api/internal/locations").
		WithHeader(echo.HeaderAuthorization, T(t)).
		Expect().
		Status(http.StatusOK).
		JSON().
		Array()
	arr.Length().IsEqual(2)
	arr.Value(0).Object().Value("usuarioId").Number().IsEqual(4)
	arr.Value(0).Object().Value("stale").Boolean().IsFalse()
	arr.Value(1).Object().Value("latitud").Number().IsEqual(1)
	arr.Value(1).Object().Value("stale").Boolean().IsTrue()

	e.GET("/api/internal/locations/{userID}", 4).
		WithHeader(echo.HeaderAuthorization, T(t)).
		Expect().
		Status(http.StatusOK).
		JSON().
		Object().
		Value("longitud").Number().IsEqual(4)

	e.GET("/api/internal/locations/{userID}", 99).
		WithHeader(echo.HeaderAuthorization, T(t)).
		Expect().
		Status(http.StatusNotFound)

	e.GET("/api/internal/locations/{userID}", "abc").
		WithHeader(echo.HeaderAuthorization, T(t)).
		Expect().
		Status(http.StatusBadRequest)
}

func TestGetSessions(t *testing.T) {
	t.Parallel()
	env := setup(t, Config{BackendSecret: testSecret})

	env.Dial(t, "userId=1&role=ADMIN")
	env.Dial(t, "")
	assert.Eventually(t, func() bool {
		n := 0
		env.Services.WS.IterateSessions(func(ws.Session) { n++ })
		return n == 2
	}, time.Second, 10*time.Millisecond)

	arr := env.R(t).GET("/api/internal/sessions").
		WithHeader(echo.HeaderAuthorization, T(t)).
		Expect().
		Status(http.StatusOK).
		JSON().
		Array()
	arr.Length().IsEqual(2)
	first := arr.Value(0).Object()
	first.Value("userId").Number().IsEqual(1)
	first.Value("role").String().IsEqual("ADMIN")
	first.Value("authenticated").Boolean().IsTrue()
	first.Value("state").String().IsEqual("OPEN")
	arr.Value(1).Object().Value("authenticated").Boolean().IsFalse()
}

func TestPostDiscountDecision(t *testing.T) {
	t.Parallel()
	env := setup(t, Config{BackendSecret: testSecret})
	path := "/api/internal/notifications/discount"

	t.Run("bad request", func(t *testing.T) {
		t.Parallel()
		e := env.R(t)
		e.POST(path).
			WithHeader(echo.HeaderAuthorization, T(t)).
			WithJSON(map[string]interface{}{"vendedorId": 2, "clienteId": 3, "estado": "QUIZAS", "descuento": 10}).
			Expect().
			Status(http.StatusBadRequest)
		e.POST(path).
			WithHeader(echo.HeaderAuthorization, T(t)).
			WithJSON(map[string]interface{}{"clienteId": 3, "estado": "APROBADO", "descuento": 10}).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		sub := env.Hub.Subscribe(10, event.DiscountDecided)
		defer env.Hub.Unsubscribe(sub)

		env.R(t).POST(path).
			WithHeader(echo.HeaderAuthorization, T(t)).
			WithJSON(map[string]interface{}{"vendedorId": 2, "clienteId": 3, "estado": "APROBADO", "descuento": 12.5, "nota": "ok"}).
			Expect().
			Status(http.StatusAccepted)

		select {
		case m := <-sub.Receiver:
			d := m.Fields["decision"].(model.DiscountDecision)
			assert.Equal(t, 2, d.SellerID)
			assert.Equal(t, model.DiscountApproved, d.Status)
			assert.Equal(t, 12.5, d.Discount)
			assert.False(t, d.DecidedAt.IsZero())
		case <-time.After(time.Second):
			assert.Fail(t, "no event published")
		}
	})
}

func TestPostEvent(t *testing.T) {
	t.Parallel()
	env := setup(t, Config{BackendSecret: testSecret, Gzipped: true})
	path := "/api/internal/events"

	env.Dial(t, "userId=1&role=ADMIN")
	seller := env.Dial(t, "userId=2&role=VENDEDOR")
	env.Dial(t, "")
	assert.Eventually(t, func() bool {
		n := 0
		env.Services.WS.IterateSessions(func(ws.Session) { n++ })
		return n == 3 && env.Services.Registry.IsOnline(2)
	}, time.Second, 10*time.Millisecond)

	e := env.R(t)
	e.POST(path).
		WithHeader(echo.HeaderAuthorization, T(t)).
		WithJSON(map[string]interface{}{"event": "customersUpdated", "payload": map[string]int{"clienteId": 8}, "userId": 2}).
		Expect().
		Status(http.StatusAccepted).
		JSON().
		Object().
		Value("delivered").Number().IsEqual(1)

	require.NoError(t, seller.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, b, err := seller.ReadMessage()
	require.NoError(t, err)
	m, err := protocol.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, protocol.CustomersUpdated, m.Type)
	var body protocol.CustomersUpdatedBody
	require.NoError(t, m.UnmarshalBody(&body))
	assert.Equal(t, 8, body.CustomerID)

	e.POST(path).
		WithHeader(echo.HeaderAuthorization, T(t)).
		WithJSON(map[string]interface{}{"event": "customersUpdated", "userId": 999}).
		Expect().
		Status(http.StatusAccepted).
		JSON().
		Object().
		Value("delivered").Number().IsEqual(0)

	e.POST(path).
		WithHeader(echo.HeaderAuthorization, T(t)).
		WithJSON(map[string]interface{}{"event": "customersUpdated", "role": "seller"}).
		Expect().
		Status(http.StatusAccepted).
		JSON().
		Object().
		Value("delivered").Number().IsEqual(1)

	e.POST(path).
		WithHeader(echo.HeaderAuthorization, T(t)).
		WithJSON(map[string]interface{}{"event": "maintenance", "payload": "hola"}).
		Expect().
		Status(http.StatusAccepted).
		JSON().
		Object().
		Value("delivered").Number().IsEqual(3)

	e.POST(path).
		WithHeader(echo.HeaderAuthorization, T(t)).
		WithJSON(map[string]interface{}{"event": "x", "userId": 1, "role": "ADMIN"}).
		Expect().
		Status(http.StatusBadRequest)

	e.POST(path).
		WithHeader(echo.HeaderAuthorization, T(t)).
		WithJSON(map[string]interface{}{"event": "x", "role": "MANAGER"}).
		Expect().
		Status(http.StatusBadRequest)

	e.POST(path).
		WithHeader(echo.HeaderAuthorization, T(t)).
		WithJSON(map[string]interface{}{"payload": 1}).
		Expect().
		Status(http.StatusBadRequest)
}
