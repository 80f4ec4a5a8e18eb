package location

import (
	"context"
	"time"

	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/event"
	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/repository"
)

const persistTimeout = 5 * time.Second

// Persister 記録された位置情報をリポジトリに書き出します
type Persister struct {
	repo   repository.LocationRepository
	hub    *hub.Hub
	logger *zap.Logger
	sub    hub.Subscription
	done   chan struct{}
}

// NewPersister Persisterを生成して起動します
func NewPersister(hub *hub.Hub, repo repository.LocationRepository, logger *zap.Logger) *Persister {
	p := &Persister{
		repo:   repo,
		hub:    hub,
		logger: logger.Named("location_persister"),
		sub:    hub.Subscribe(1000, event.LocationRecorded),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Persister) run() {
	defer close(p.done)
	for msg := range p.sub.Receiver {
		r, ok := msg.Fields["reading"].(model.LocationReading)
		if !ok {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := p.repo.SaveLastLocation(ctx, r); err != nil {
			p.logger.Error("failed to persist location", zap.Int("userID", r.UserID), zap.Error(err))
		}
		cancel()
	}
}

// Close 購読を解除し、書き出し中の処理を待ちます
func (p *Persister) Close() {
	p.hub.Unsubscribe(p.sub)
	<-p.done
}

// RestoreStore リポジトリに保存されている位置情報をストアに読み込みます
func RestoreStore(ctx context.Context, store *Store, repo repository.LocationRepository) (int, error) {
	readings, err := repo.GetLastLocations(ctx)
	if err != nil {
		return 0, err
	}
	return store.Restore(readings), nil
}
