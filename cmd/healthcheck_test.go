package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventas-crm/tracker/router/consts"
)

func TestCheckHealth(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set(consts.HeaderVersion, "v1.2.3")
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)

		version, err := checkHealth(context.Background(), srv.Client(), srv.URL+"/api/ping")
		require.NoError(t, err)
		assert.Equal(t, "v1.2.3", version)
	})

	t.Run("unhealthy", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)

		_, err := checkHealth(context.Background(), srv.Client(), srv.URL)
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := checkHealth(ctx, srv.Client(), srv.URL)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
