package location

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/service/directory"
)

// ErrUnauthenticated 識別情報のない接続からの報告
var ErrUnauthenticated = errors.New("unauthenticated identity")

// Manager クライアントからの位置情報の報告を受け付けます
type Manager struct {
	store  *Store
	dir    directory.Directory
	logger *zap.Logger
	now    func() time.Time
}

// NewManager Managerを生成します
func NewManager(store *Store, dir directory.Directory, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		dir:    dir,
		logger: logger.Named("location_manager"),
		now:    time.Now,
	}
}

// Report 報告を検証し、スナップショットを付与してストアに記録します
func (m *Manager) Report(ctx context.Context, identity model.Identity, report model.LocationReport) (model.LocationReading, error) {
	if !identity.Authenticated() {
		return model.LocationReading{}, ErrUnauthenticated
	}
	if err := report.Validate(); err != nil {
		return model.LocationReading{}, err
	}

	reading := model.LocationReading{
		Latitude:  *report.Latitude,
		Longitude: *report.Longitude,
		UserID:    identity.UserID,
		User:      m.resolveSnapshot(ctx, identity, report.User),
		Timestamp: m.now(),
	}
	if report.Timestamp != nil && !report.Timestamp.IsZero() {
		reading.Timestamp = *report.Timestamp
	}

	m.store.Record(reading)
	return reading, nil
}

// Store 位置情報ストア
func (m *Manager) Store() *Store {
	return m.store
}

func (m *Manager) resolveSnapshot(ctx context.Context, identity model.Identity, sent *model.UserSnapshot) model.UserSnapshot {
	s, err := m.dir.GetUserSnapshot(ctx, identity.UserID)
	switch {
	case err == nil:
		return *s
	case errors.Is(err, directory.ErrNotConfigured):
	case errors.Is(err, directory.ErrNotFound):
		m.logger.Debug("user not found in directory", zap.Int("userID", identity.UserID))
	default:
		m.logger.Warn("failed to resolve user snapshot", zap.Int("userID", identity.UserID), zap.Error(err))
	}

	if sent != nil {
		snap := *sent
		// 本人以外の情報にはさせない
		snap.ID = identity.UserID
		snap.Role = identity.Role
		if snap.Name == "" {
			snap.Name = identity.Name
		}
		return snap
	}
	return model.SnapshotFromIdentity(identity)
}
