package location

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/repository/mock_repository"
)

func TestPersister(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockLocationRepository(ctrl)
	h := hub.New()

	first := reading(1, 1, 1)
	second := reading(2, 2, 2)
	gomock.InOrder(
		repo.EXPECT().SaveLastLocation(gomock.Any(), first).Return(nil),
		repo.EXPECT().SaveLastLocation(gomock.Any(), second).Return(errors.New("db down")),
	)

	p := NewPersister(h, repo, zap.NewNop())
	s := newTestStore(t, h, Config{})
	s.Record(first)
	s.Record(second)

	// Closeで購読済みのメッセージの処理を待つ
	p.Close()
}

func TestRestoreStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockLocationRepository(ctrl)
		repo.EXPECT().GetLastLocations(gomock.Any()).Return([]model.LocationReading{reading(1, 1, 1), reading(2, 2, 2)}, nil)

		s := newTestStore(t, hub.New(), Config{})
		n, err := RestoreStore(ctx, s, repo)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		for _, e := range s.All() {
			assert.True(t, e.Stale)
		}
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockLocationRepository(ctrl)
		repo.EXPECT().GetLastLocations(gomock.Any()).Return(nil, errors.New("db down"))

		s := newTestStore(t, hub.New(), Config{})
		_, err := RestoreStore(ctx, s, repo)
		assert.Error(t, err)
		assert.Empty(t, s.All())
	})
}
