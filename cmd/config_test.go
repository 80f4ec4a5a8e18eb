package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Providers(t *testing.T) {
	t.Parallel()

	var c Config
	c.DevMode = true
	c.Gzip = true
	c.AccessLog.Enabled = true
	c.WS.InboundRate = 5
	c.WS.InboundBurst = 10
	c.WS.CountsPushInterval = 250
	c.Location.Retention = 3600
	c.CRM.BaseURL = "http://crm.local"
	c.CRM.SnapshotPath = "/api/usuarios/snapshot"
	c.CRM.CacheFresh = 10
	c.CRM.CacheTTL = 60
	c.CRM.Timeout = 5
	c.Auth.BackendSecret = "secret"

	ws := provideWSConfig(&c)
	assert.Equal(t, 5.0, ws.InboundRate)
	assert.Equal(t, 10, ws.InboundBurst)

	assert.Equal(t, 250*time.Millisecond, provideNotificationConfig(&c).CountsPushInterval)
	assert.Equal(t, time.Hour, provideLocationConfig(&c).Retention)

	dir := provideDirectoryConfig(&c)
	assert.Equal(t, "http://crm.local", dir.BaseURL)
	assert.Equal(t, 10*time.Second, dir.CacheFresh)
	assert.Equal(t, time.Minute, dir.CacheTTL)
	assert.Equal(t, 5*time.Second, dir.Timeout)

	rc := provideRouterConfig(&c)
	assert.True(t, rc.Development)
	assert.True(t, rc.Gzipped)
	assert.True(t, rc.AccessLogging)
	assert.Equal(t, "secret", rc.BackendSecret)
}

func TestConfig_Database(t *testing.T) {
	t.Parallel()

	var c Config
	c.MariaDB.Username = "root"
	c.MariaDB.Password = "password"
	c.MariaDB.Host = "127.0.0.1"
	c.MariaDB.Port = 3306
	assert.Equal(t, "root:password@tcp(127.0.0.1:3306)/tracker?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true", c.getDSN("tracker"))

	assert.False(t, c.useDatabase())
	c.Storage.Type = "mariadb"
	assert.True(t, c.useDatabase())
}
