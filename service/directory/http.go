package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	jsoniter "github.com/json-iterator/go"
	"github.com/motoki317/sc"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/model"
)

const cacheSize = 1024

// Config CRMディレクトリ設定
type Config struct {
	// BaseURL CRM REST APIのベースURL. 空の場合は無効
	BaseURL string
	// SnapshotPath スナップショット取得エンドポイントのパス
	SnapshotPath string
	// CacheFresh キャッシュを再取得せずに返す期間
	CacheFresh time.Duration
	// CacheTTL キャッシュの有効期間
	CacheTTL time.Duration
	// Timeout リクエストタイムアウト
	Timeout time.Duration
}

type snapshotQuery struct {
	UserID int `url:"userId"`
}

type httpDirectory struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
	cache    *sc.Cache[int, *model.UserSnapshot]
}

// New 設定に応じたDirectoryを生成します
//
// BaseURLが空の場合はNewNullDirectoryと同じものを返します
func New(c Config, logger *zap.Logger) (Directory, error) {
	if len(c.BaseURL) == 0 {
		return NewNullDirectory(), nil
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid crm base url: %w", err)
	}
	if c.CacheFresh <= 0 {
		c.CacheFresh = 10 * time.Second
	}
	if c.CacheTTL < c.CacheFresh {
		c.CacheTTL = c.CacheFresh
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}

	d := &httpDirectory{
		endpoint: strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.TrimPrefix(c.SnapshotPath, "/"),
		client:   &http.Client{Timeout: c.Timeout},
		logger:   logger.Named("directory"),
	}
	d.cache = sc.NewMust(d.fetch, c.CacheFresh, c.CacheTTL, sc.With2QBackend(cacheSize))
	return d, nil
}

func (d *httpDirectory) GetUserSnapshot(ctx context.Context, userID int) (*model.UserSnapshot, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return d.cache.Get(ctx, userID)
}

func (d *httpDirectory) fetch(ctx context.Context, userID int) (*model.UserSnapshot, error) {
	v, err := query.Values(&snapshotQuery{UserID: userID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+v.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request snapshot: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status code from directory: %d", res.StatusCode)
	}

	var snap model.UserSnapshot
	if err := jsoniter.ConfigFastest.NewDecoder(res.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.ID == 0 {
		snap.ID = userID
	}
	d.logger.Debug("snapshot fetched", zap.Int("userID", userID))
	return &snap, nil
}
