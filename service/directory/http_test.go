package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
)

func newSnapshotServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/api/usuarios/snapshot" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.URL.Query().Get("userId") {
		case "7":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"nombre":"Ana","id":7,"rol":"VENDEDOR","prospecto":{"estado":"EN_PROSPECTO","inicio":"2024-05-01T10:00:00Z","nombreCompleto":"Luis Ramos","empresaTienda":"Tienda Sol"},"asistencia":null}`))
		case "8":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew(t *testing.T) {
	t.Parallel()

	d, err := New(Config{}, zap.NewNop())
	require.NoError(t, err)
	_, err = d.GetUserSnapshot(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHTTPDirectory_GetUserSnapshot(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := newSnapshotServer(t, &hits)
	d, err := New(Config{
		BaseURL:      srv.URL + "/",
		SnapshotPath: "/api/usuarios/snapshot",
		CacheFresh:   time.Minute,
		CacheTTL:     time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		s, err := d.GetUserSnapshot(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Ana", s.Name)
		assert.Equal(t, model.RoleSeller, s.Role)
		if assert.NotNil(t, s.Prospect) {
			assert.Equal(t, model.ProspectInProgress, s.Prospect.State)
			assert.Equal(t, "Tienda Sol", s.Prospect.CompanyName)
		}
		assert.Nil(t, s.Attendance)

		before := atomic.LoadInt32(&hits)
		_, err = d.GetUserSnapshot(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, before, atomic.LoadInt32(&hits), "cached")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := d.GetUserSnapshot(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := d.GetUserSnapshot(ctx, 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := d.GetUserSnapshot(ctx, 8)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
