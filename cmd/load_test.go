package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewlens/pkg/models"
)

func TestBuildSnowflakeConfigViperFallback(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("snowflake.account", "viper-account")
	viper.Set("snowflake.username", "viper-user")
	viper.Set("snowflake.warehouse", "VIPER_WH")

	appConfig := &models.Config{}
	appConfig.Snowflake.Username = "file-user"

	sfConfig := buildSnowflakeConfig(appConfig)

	// Structured config wins; viper fills in what it left blank
	assert.Equal(t, "file-user", sfConfig.Username)
	assert.Equal(t, "viper-account", sfConfig.Account)
	assert.Equal(t, "VIPER_WH", sfConfig.Warehouse)
}

func TestInitConfigHonorsEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	configFile := filepath.Join(dir, "custom.yaml")
	content := "snowflake:\n  account: env-account\n  role: ANALYST\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))

	t.Setenv("REVIEWLENS_CONFIG", configFile)
	initConfig()

	assert.Equal(t, "env-account", viper.GetString("snowflake.account"))
	assert.Equal(t, "ANALYST", viper.GetString("snowflake.role"))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "set", orDefault("set", "fallback"))
	assert.Equal(t, "fallback", orDefault("", "fallback"))
}
