package router

import "github.com/prometheus/client_golang/prometheus"

// Config APIサーバー設定
type Config struct {
	// 開発モードかどうか
	Development bool
	// Version サーバーバージョン
	Version string
	// Revision サーバーリビジョン
	Revision string
	// AccessLogging アクセスログを記録するかどうか
	AccessLogging bool
	// Gzipped 内部APIのレスポンスをGzip圧縮するかどうか
	Gzipped bool
	// BackendSecret 内部API認証用の共有鍵. 空の場合は内部APIを無効にします
	BackendSecret string
	// Registerer HTTPメトリクスの登録先. nilの場合はprometheus.DefaultRegisterer
	Registerer prometheus.Registerer
}
