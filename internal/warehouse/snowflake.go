package warehouse

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/rs/zerolog"
	_ "github.com/snowflakedb/gosnowflake" // registers the "snowflake" driver

	"github.com/tributary-data/tributary/pkg/errors"
	"github.com/tributary-data/tributary/pkg/logging"
	"github.com/tributary-data/tributary/pkg/pipeline"
	"github.com/tributary-data/tributary/pkg/tabular"
)

// insertBatchSize bounds the number of rows bound into one INSERT statement.
const insertBatchSize = 500

// Snowflake loads pipeline output tables into a Snowflake warehouse. It
// implements pipeline.Loader.
type Snowflake struct {
	cfg    Config
	db     *sql.DB
	logger *zerolog.Logger
}

var _ pipeline.Loader = (*Snowflake)(nil)

// Option configures a Snowflake loader.
type Option func(*Snowflake)

// WithLogger sets the logger used for load progress.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Snowflake) {
		s.logger = logger
	}
}

// Open validates the configuration and prepares a connection pool. No
// network traffic happens until Load.
func Open(cfg Config, opts ...Option) (*Snowflake, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, errors.NewLoadError("connect", "", err)
	}

	s := &Snowflake{cfg: cfg, db: db, logger: logging.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Snowflake) Close() error {
	return s.db.Close()
}

// Load replaces both destination tables with the given run output and
// returns the number of rows written to each.
func (s *Snowflake) Load(ctx context.Context, raw, final *tabular.Table) (int, int, error) {
	if err := s.db.PingContext(ctx); err != nil {
		s.db.Close()
		return 0, 0, errors.NewLoadError("connect", "", err)
	}

	rawRows, err := s.replace(ctx, s.cfg.RawTable, raw)
	if err != nil {
		s.db.Close()
		return 0, 0, err
	}
	finalRows, err := s.replace(ctx, s.cfg.FinalTable, final)
	if err != nil {
		s.db.Close()
		return rawRows, 0, err
	}
	return rawRows, finalRows, nil
}

// replace recreates one destination table and bulk-inserts the given rows.
func (s *Snowflake) replace(ctx context.Context, table string, t *tabular.Table) (int, error) {
	columns := t.Columns()
	if _, err := s.db.ExecContext(ctx, createTableSQL(table, defs(columns))); err != nil {
		return 0, errors.NewLoadError("create table", table, err)
	}
	s.logger.Debug().Str("table", table).Int("rows", t.Len()).Msg("destination table replaced, inserting")

	inserted := 0
	for start := 0; start < t.Len(); start += insertBatchSize {
		end := start + insertBatchSize
		if end > t.Len() {
			end = t.Len()
		}
		args := make([]any, 0, (end-start)*len(columns))
		for i := start; i < end; i++ {
			row := t.Row(i)
			for _, col := range columns {
				args = append(args, bindValue(col, row.Get(col)))
			}
		}
		if _, err := s.db.ExecContext(ctx, insertSQL(table, columns, end-start), args...); err != nil {
			return inserted, errors.NewLoadError("insert", table, err)
		}
		inserted = end
	}
	s.logger.Info().Str("table", table).Int("rows", inserted).Msg("table loaded")
	return inserted, nil
}

// bindValue converts a cell into a driver argument. Nulls bind as NULL,
// numeric columns bind as integers so Snowflake stores them as NUMBER.
func bindValue(column string, v tabular.Value) any {
	if v.IsNull() {
		return nil
	}
	if columnTypes[column] == "NUMBER" {
		if n, err := strconv.Atoi(v.Str()); err == nil {
			return n
		}
	}
	return v.Str()
}
