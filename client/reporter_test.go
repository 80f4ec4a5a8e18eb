package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
)

type recorder struct {
	mu      sync.Mutex
	reports []model.LocationReport
	fail    bool
}

func (r *recorder) EmitLocation(report model.LocationReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	if r.fail {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func TestRunReporter(t *testing.T) {
	t.Parallel()

	for _, fail := range []bool{false, true} {
		fail := fail
		rec := &recorder{fail: fail}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- RunReporter(ctx, rec, NewRandomWalk(19.43, -99.13, 0.001, 1), 5*time.Millisecond, time.Millisecond, zap.NewNop())
		}()

		assert.Eventually(t, func() bool { return rec.len() >= 3 }, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			assert.Fail(t, "reporter did not stop")
		}

		rec.mu.Lock()
		for _, report := range rec.reports {
			assert.NoError(t, report.Validate())
			assert.NotNil(t, report.Timestamp)
		}
		rec.mu.Unlock()
	}
}

func TestRandomWalk(t *testing.T) {
	t.Parallel()

	w := NewRandomWalk(89.9995, 179.9995, 0.001, 42)
	lat, lon := 89.9995, 179.9995
	for i := 0; i < 100; i++ {
		nlat, nlon := w.Location()
		assert.LessOrEqual(t, nlat, 90.0)
		assert.LessOrEqual(t, nlon, 180.0)
		assert.InDelta(t, lat, nlat, 0.001+1e-9)
		assert.InDelta(t, lon, nlon, 0.001+1e-9)
		lat, lon = nlat, nlon
	}

	a := NewRandomWalk(0, 0, 1, 7)
	b := NewRandomWalk(0, 0, 1, 7)
	for i := 0; i < 10; i++ {
		alat, alon := a.Location()
		blat, blon := b.Location()
		assert.Equal(t, alat, blat)
		assert.Equal(t, alon, blon)
	}
}
