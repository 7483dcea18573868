package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tributary-data/tributary/internal/warehouse"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Snowflake connection
	SnowflakeAccount   string
	SnowflakeUser      string
	SnowflakePassword  string
	SnowflakeWarehouse string
	SnowflakeDatabase  string
	SnowflakeSchema    string

	// Destination tables
	RawTable   string
	FinalTable string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.tributary.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files before Viper env binding
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindWarehouseKeys()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".tributary")
		}
	}

	// Missing config file is fine, env vars may carry everything
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		SnowflakeAccount:   viper.GetString("SNOWFLAKE_ACCOUNT"),
		SnowflakeUser:      viper.GetString("SNOWFLAKE_USER"),
		SnowflakePassword:  viper.GetString("SNOWFLAKE_PASSWORD"),
		SnowflakeWarehouse: viper.GetString("SNOWFLAKE_WAREHOUSE"),
		SnowflakeDatabase:  viper.GetString("SNOWFLAKE_DATABASE"),
		SnowflakeSchema:    viper.GetString("SNOWFLAKE_SCHEMA"),

		RawTable:   viper.GetString("raw_table"),
		FinalTable: viper.GetString("final_table"),

		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// Warehouse builds the Snowflake loader configuration. Table name overrides
// win over config file and environment values.
func (c *Config) Warehouse(rawTable, finalTable string) warehouse.Config {
	cfg := warehouse.Config{
		Account:    c.SnowflakeAccount,
		User:       c.SnowflakeUser,
		Password:   c.SnowflakePassword,
		Warehouse:  c.SnowflakeWarehouse,
		Database:   c.SnowflakeDatabase,
		Schema:     c.SnowflakeSchema,
		RawTable:   c.RawTable,
		FinalTable: c.FinalTable,
	}
	if rawTable != "" {
		cfg.RawTable = rawTable
	}
	if finalTable != "" {
		cfg.FinalTable = finalTable
	}
	return cfg
}

// UpdateFromFlags updates config values from parsed command flags. Called
// after cobra parses flags so flag values take precedence over config file
// and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindWarehouseKeys explicitly binds the Snowflake environment variables to
// Viper so they resolve even without config file entries.
func bindWarehouseKeys() {
	keys := []string{
		"SNOWFLAKE_ACCOUNT",
		"SNOWFLAKE_USER",
		"SNOWFLAKE_PASSWORD",
		"SNOWFLAKE_WAREHOUSE",
		"SNOWFLAKE_DATABASE",
		"SNOWFLAKE_SCHEMA",
	}
	for _, key := range keys {
		_ = viper.BindEnv(key)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
