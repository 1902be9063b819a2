package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
dbname = "beauty"
user = "smc"
password = "secret"

[orders]
link_token_secret = "from-file"

[kafka]
enabled = true
brokers = ["kafka:9092"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "beauty.orders", cfg.Kafka.Topic)
	assert.Equal(t, "host=db port=5432 user=smc password=secret dbname=beauty sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("SMC_ORDERS_LINK_TOKEN_SECRET", "from-env")
	t.Setenv("SMC_SERVER_HTTP_PORT", "7070")
	t.Setenv("SMC_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Orders.LinkTokenSecret)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SMC_DATABASE_NAME", "beauty")
	t.Setenv("SMC_ORDERS_LINK_TOKEN_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "db"
dbname = "beauty"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_BrokenFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate_UnknownTimezone(t *testing.T) {
	cfg := Default()
	cfg.Database.DBName = "beauty"
	cfg.Orders.LinkTokenSecret = "secret"
	cfg.App.Timezone = "Mars/Olympus"

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
