package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	content := `{
		"endpoint_addr": ":9999",
		"store_backend": "s3",
		"database_dsn": "dsn",
		"secret_key": "sk",
		"token_validity_duration": "30m",
		"s3_root_user": "u",
		"s3_root_password": "p",
		"s3_bucket": "b",
		"s3_region": "r",
		"s3_base_endpoint": "http://e"
	}`

	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", path}

	config := &Config{}
	parseJson(config)

	assert.Equal(t, ":9999", config.EndpointAddr)
	assert.Equal(t, "s3", config.StoreBackend)
	assert.Equal(t, "dsn", config.DatabaseDSN)
	assert.Equal(t, "sk", config.SecretKey)
	assert.Equal(t, 30*time.Minute, config.TokenValidityDuration)
	assert.Equal(t, "u", config.S3RootUser)
	assert.Equal(t, "p", config.S3RootPassword)
	assert.Equal(t, "b", config.S3Bucket)
	assert.Equal(t, "r", config.S3Region)
	assert.Equal(t, "http://e", config.S3BaseEndpoint)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd"}

	config := &Config{}
	config.LoadDefaults()
	before := *config

	parseJson(config)

	assert.Equal(t, before, *config)
}
