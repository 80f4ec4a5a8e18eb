package client

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
)

// LocationSource 現在地の取得元
type LocationSource interface {
	Location() (lat, lon float64)
}

// LocationEmitter 位置情報の送信先
type LocationEmitter interface {
	EmitLocation(report model.LocationReport) error
}

// RunReporter ctxが終了するまで, interval毎にsrcの現在地をeに送信します
//
// 送信間隔は標準偏差jitterの正規分布で揺らぐ. 送信エラーはログに残して継続する
func RunReporter(ctx context.Context, e LocationEmitter, src LocationSource, interval, jitter time.Duration, logger *zap.Logger) error {
	t := jitterbug.New(interval, &jitterbug.Norm{Stdev: jitter})
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			lat, lon := src.Location()
			now := time.Now()
			report := model.NewLocationReport(lat, lon)
			report.Timestamp = &now
			if err := e.EmitLocation(report); err != nil {
				logger.Debug("failed to emit location", zap.Error(err))
			}
		}
	}
}

// RandomWalk 始点からランダムに移動する模擬的な現在地
type RandomWalk struct {
	mu   sync.Mutex
	lat  float64
	lon  float64
	step float64
	rnd  *rand.Rand
}

// NewRandomWalk (lat, lon) を始点とし, 1回あたり最大step度移動するRandomWalkを生成します
func NewRandomWalk(lat, lon, step float64, seed int64) *RandomWalk {
	return &RandomWalk{
		lat:  lat,
		lon:  lon,
		step: step,
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// Location implements LocationSource interface.
func (w *RandomWalk) Location() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lat = clamp(w.lat+(w.rnd.Float64()*2-1)*w.step, -90, 90)
	w.lon = clamp(w.lon+(w.rnd.Float64()*2-1)*w.step, -180, 180)
	return w.lat, w.lon
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
