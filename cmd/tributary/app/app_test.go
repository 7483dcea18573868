package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tributary-data/tributary/internal/warehouse"
)

func TestNew(t *testing.T) {
	application, err := New("1.2.3", "abc123", "2024-06-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", application.Version())
	assert.Equal(t, "abc123", application.Commit())
	assert.NotNil(t, application.Config())
	assert.NotNil(t, application.Logger())
}

func TestConfigWarehouse(t *testing.T) {
	config := &Config{
		SnowflakeAccount:   "acct",
		SnowflakeUser:      "etl",
		SnowflakePassword:  "secret",
		SnowflakeWarehouse: "WH",
		SnowflakeDatabase:  "DB",
		SnowflakeSchema:    "PUBLIC",
		RawTable:           "RAW_FROM_ENV",
	}

	t.Run("carries connection settings", func(t *testing.T) {
		cfg := config.Warehouse("", "")
		assert.Equal(t, "acct", cfg.Account)
		assert.Equal(t, "RAW_FROM_ENV", cfg.RawTable)
		assert.Empty(t, cfg.FinalTable)
	})

	t.Run("flag overrides win", func(t *testing.T) {
		cfg := config.Warehouse("RAW_OVERRIDE", "FINAL_OVERRIDE")
		assert.Equal(t, "RAW_OVERRIDE", cfg.RawTable)
		assert.Equal(t, "FINAL_OVERRIDE", cfg.FinalTable)
	})

	t.Run("validate fills defaults", func(t *testing.T) {
		cfg := config.Warehouse("", "")
		require.NoError(t, cfg.Validate())
		assert.Equal(t, warehouse.DefaultFinalTable, cfg.FinalTable)
	})
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{LogLevel: "info"}
	config.UpdateFromFlags(true, false, true, "")

	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "info", config.LogLevel) // empty flag keeps prior value

	config.UpdateFromFlags(false, false, false, "debug")
	assert.Equal(t, "debug", config.LogLevel)
}
