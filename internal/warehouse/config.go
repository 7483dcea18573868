// Package warehouse persists the pipeline's two output layers into
// Snowflake, replacing the destination tables wholesale on every run. It is
// a thin collaborator: the pipeline hands it fully-materialized tables and
// receives row counts back.
package warehouse

import (
	"regexp"

	"github.com/snowflakedb/gosnowflake"

	"github.com/tributary-data/tributary/pkg/errors"
)

// Default destination table names.
const (
	DefaultRawTable   = "RAW_LAYER_DT"
	DefaultFinalTable = "FNL_LAYER_DT"
)

// Config holds the Snowflake connection target and destination table names.
// Values come from the environment; the pipeline core never reads them.
type Config struct {
	Account   string
	User      string
	Password  string
	Warehouse string
	Database  string
	Schema    string

	RawTable   string
	FinalTable string
}

// identifierRe matches unquoted Snowflake identifiers. Table names outside
// this set are rejected rather than quoted.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// Validate checks that the connection target is complete and the table
// names are safe identifiers. Missing table names get defaults.
func (c *Config) Validate() error {
	required := map[string]string{
		"account":   c.Account,
		"user":      c.User,
		"password":  c.Password,
		"warehouse": c.Warehouse,
		"database":  c.Database,
		"schema":    c.Schema,
	}
	for field, value := range required {
		if value == "" {
			return errors.NewConfigError("warehouse", "missing "+field, nil)
		}
	}

	if c.RawTable == "" {
		c.RawTable = DefaultRawTable
	}
	if c.FinalTable == "" {
		c.FinalTable = DefaultFinalTable
	}
	for _, table := range []string{c.RawTable, c.FinalTable} {
		if !identifierRe.MatchString(table) {
			return errors.NewConfigError("warehouse", "invalid table name "+table, nil)
		}
	}
	return nil
}

// DSN builds the gosnowflake connection string for the configured target.
func (c *Config) DSN() (string, error) {
	dsn, err := gosnowflake.DSN(&gosnowflake.Config{
		Account:   c.Account,
		User:      c.User,
		Password:  c.Password,
		Warehouse: c.Warehouse,
		Database:  c.Database,
		Schema:    c.Schema,
	})
	if err != nil {
		return "", errors.NewConfigError("warehouse", "building DSN", err)
	}
	return dsn, nil
}
