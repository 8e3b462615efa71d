package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[mainConfig]
appName = "pigeon_chat_server"
host = "127.0.0.1"
port = 8000
mode = "dev"

[storageConfig]
driver = "sqlite"

[kafkaConfig]
messageMode = "channel"
hostPort = "127.0.0.1:9092"
chatTopic = "pigeon_chat_messages"

[jwtConfig]
secret = "s3cret"
accessTokenExpiry = 30
refreshTokenExpiry = 168

[storyConfig]
ttlHours = 24
sweepIntervalMinutes = 30
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFrom(t *testing.T) {
	require.NoError(t, LoadFrom(writeSample(t, sampleConfig)))
	conf := GetConfig()

	require.Equal(t, "pigeon_chat_server", conf.MainConfig.AppName)
	require.Equal(t, 8000, conf.MainConfig.Port)
	require.Equal(t, "sqlite", conf.StorageConfig.Driver)
	require.Equal(t, "channel", conf.KafkaConfig.MessageMode)
	require.Equal(t, "s3cret", conf.JWTConfig.Secret)
	require.Equal(t, 24*time.Hour, conf.StoryTTL())
}

func TestStoryTTLDefaultsTo24h(t *testing.T) {
	conf := &Config{}
	require.Equal(t, 24*time.Hour, conf.StoryTTL())

	conf.StoryConfig.TTLHours = 48
	require.Equal(t, 48*time.Hour, conf.StoryTTL())
}

func TestLoadFromRejectsMissingFile(t *testing.T) {
	require.Error(t, LoadFrom(filepath.Join(t.TempDir(), "absent.toml")))
}
