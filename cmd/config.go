package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/ventas-crm/tracker/router"
	"github.com/ventas-crm/tracker/service/directory"
	"github.com/ventas-crm/tracker/service/location"
	"github.com/ventas-crm/tracker/service/notification"
	"github.com/ventas-crm/tracker/service/ws"
)

// Config 設定
type Config struct {
	// DevMode 開発モードかどうか (default: false)
	DevMode bool `mapstructure:"dev" yaml:"dev"`
	// Pprof pprofを有効にするかどうか (default: false)
	Pprof bool `mapstructure:"pprof" yaml:"pprof"`

	// Origin サーバーオリジン (default: http://localhost:3000)
	Origin string `mapstructure:"origin" yaml:"origin"`
	// Port サーバーポート番号 (default: 3000)
	Port int `mapstructure:"port" yaml:"port"`
	// Gzip 内部APIレスポンスのGZIP圧縮を有効にするかどうか (default: true)
	Gzip bool `mapstructure:"gzip" yaml:"gzip"`
	// ShutdownTimeout シャットダウン時の待機時間(秒) (default: 10)
	ShutdownTimeout int `mapstructure:"shutdownTimeout" yaml:"shutdownTimeout"`

	// AccessLog HTTPアクセスログ設定
	AccessLog struct {
		// Enabled 有効かどうか (default: true)
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	} `mapstructure:"accessLog" yaml:"accessLog"`

	// WS リアルタイムチャネル設定
	WS struct {
		// InboundRate 1接続あたりの受信メッセージ数/秒. 0は無制限 (default: 10)
		InboundRate float64 `mapstructure:"inboundRate" yaml:"inboundRate"`
		// InboundBurst 受信メッセージのバースト許容数 (default: 20)
		InboundBurst int `mapstructure:"inboundBurst" yaml:"inboundBurst"`
		// CountsPushInterval 接続中ユーザー数プッシュの最短間隔(ミリ秒). 0は変化毎に送信 (default: 0)
		CountsPushInterval int `mapstructure:"countsPushInterval" yaml:"countsPushInterval"`
	} `mapstructure:"ws" yaml:"ws"`

	// Location 位置情報設定
	Location struct {
		// Retention 最後の受信から位置情報を保持する時間(秒). 0は無期限 (default: 0)
		Retention int `mapstructure:"retention" yaml:"retention"`
	} `mapstructure:"location" yaml:"location"`

	// Storage 最終位置情報の永続化設定
	Storage struct {
		// Type ストレージタイプ (default: memory)
		// 	memory: 永続化しない
		// 	mariadb: MariaDBに保存する
		Type string `mapstructure:"type" yaml:"type"`
	} `mapstructure:"storage" yaml:"storage"`

	// MariaDB データベース接続設定
	MariaDB struct {
		// Host ホスト名 (default: 127.0.0.1)
		Host string `mapstructure:"host" yaml:"host"`
		// Port ポート番号 (default: 3306)
		Port int `mapstructure:"port" yaml:"port"`
		// Username ユーザー名 (default: root)
		Username string `mapstructure:"username" yaml:"username"`
		// Password パスワード (default: password)
		Password string `mapstructure:"password" yaml:"password"`
		// Database データベース名 (default: tracker)
		Database string `mapstructure:"database" yaml:"database"`
		// Connection コネクション設定
		Connection struct {
			// MaxOpen 最大オープン接続数. 0は無制限 (default: 0)
			MaxOpen int `mapstructure:"maxOpen" yaml:"maxOpen"`
			// MaxIdle 最大アイドル接続数 (default: 2)
			MaxIdle int `mapstructure:"maxIdle" yaml:"maxIdle"`
			// LifeTime 待機接続維持時間(秒). 0は無制限 (default: 0)
			LifeTime int `mapstructure:"lifetime" yaml:"lifetime"`
		} `mapstructure:"connection" yaml:"connection"`
	} `mapstructure:"mariadb" yaml:"mariadb"`

	// CRM CRM REST API設定
	CRM struct {
		// BaseURL ベースURL. 空の場合はスナップショットを問い合わせない (default: "")
		BaseURL string `mapstructure:"baseURL" yaml:"baseURL"`
		// SnapshotPath スナップショット取得パス (default: /api/usuarios/snapshot)
		SnapshotPath string `mapstructure:"snapshotPath" yaml:"snapshotPath"`
		// CacheFresh キャッシュを再取得しない期間(秒) (default: 10)
		CacheFresh int `mapstructure:"cacheFresh" yaml:"cacheFresh"`
		// CacheTTL キャッシュ有効期間(秒) (default: 60)
		CacheTTL int `mapstructure:"cacheTTL" yaml:"cacheTTL"`
		// Timeout リクエストタイムアウト(秒) (default: 5)
		Timeout int `mapstructure:"timeout" yaml:"timeout"`
	} `mapstructure:"crm" yaml:"crm"`

	// Auth 認証設定
	Auth struct {
		// BackendSecret 内部API用HS256共有鍵. 空の場合は内部APIを無効化 (default: "")
		BackendSecret string `mapstructure:"backendSecret" yaml:"backendSecret"`
	} `mapstructure:"auth" yaml:"auth"`
}

func init() {
	viper.SetDefault("dev", false)
	viper.SetDefault("pprof", false)
	viper.SetDefault("origin", "http://localhost:3000")
	viper.SetDefault("port", 3000)
	viper.SetDefault("gzip", true)
	viper.SetDefault("shutdownTimeout", 10)
	viper.SetDefault("accessLog.enabled", true)
	viper.SetDefault("ws.inboundRate", 10)
	viper.SetDefault("ws.inboundBurst", 20)
	viper.SetDefault("ws.countsPushInterval", 0)
	viper.SetDefault("location.retention", 0)
	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("mariadb.host", "127.0.0.1")
	viper.SetDefault("mariadb.port", 3306)
	viper.SetDefault("mariadb.username", "root")
	viper.SetDefault("mariadb.password", "password")
	viper.SetDefault("mariadb.database", "tracker")
	viper.SetDefault("mariadb.connection.maxOpen", 0)
	viper.SetDefault("mariadb.connection.maxIdle", 2)
	viper.SetDefault("mariadb.connection.lifetime", 0)
	viper.SetDefault("crm.baseURL", "")
	viper.SetDefault("crm.snapshotPath", "/api/usuarios/snapshot")
	viper.SetDefault("crm.cacheFresh", 10)
	viper.SetDefault("crm.cacheTTL", 60)
	viper.SetDefault("crm.timeout", 5)
	viper.SetDefault("auth.backendSecret", "")
}

func (c Config) useDatabase() bool {
	return c.Storage.Type == "mariadb"
}

func (c Config) getDSN(database string) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true",
		c.MariaDB.Username,
		c.MariaDB.Password,
		c.MariaDB.Host,
		c.MariaDB.Port,
		database,
	)
}

func (c Config) getDatabase() (*gorm.DB, error) {
	engine, err := gorm.Open(mysql.New(mysql.Config{DSN: c.getDSN(c.MariaDB.Database)}))
	if err != nil {
		return nil, err
	}
	db, err := engine.DB()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(c.MariaDB.Connection.MaxOpen)
	db.SetMaxIdleConns(c.MariaDB.Connection.MaxIdle)
	db.SetConnMaxLifetime(time.Duration(c.MariaDB.Connection.LifeTime) * time.Second)
	return engine, nil
}

func provideWSConfig(c *Config) ws.Config {
	return ws.Config{
		InboundRate:  c.WS.InboundRate,
		InboundBurst: c.WS.InboundBurst,
	}
}

func provideNotificationConfig(c *Config) notification.Config {
	return notification.Config{
		CountsPushInterval: time.Duration(c.WS.CountsPushInterval) * time.Millisecond,
	}
}

func provideLocationConfig(c *Config) location.Config {
	return location.Config{
		Retention: time.Duration(c.Location.Retention) * time.Second,
	}
}

func provideDirectoryConfig(c *Config) directory.Config {
	return directory.Config{
		BaseURL:      c.CRM.BaseURL,
		SnapshotPath: c.CRM.SnapshotPath,
		CacheFresh:   time.Duration(c.CRM.CacheFresh) * time.Second,
		CacheTTL:     time.Duration(c.CRM.CacheTTL) * time.Second,
		Timeout:      time.Duration(c.CRM.Timeout) * time.Second,
	}
}

func provideRouterConfig(c *Config) *router.Config {
	return &router.Config{
		Development:   c.DevMode,
		Version:       Version,
		Revision:      Revision,
		AccessLogging: c.AccessLog.Enabled,
		Gzipped:       c.Gzip,
		BackendSecret: c.Auth.BackendSecret,
	}
}
