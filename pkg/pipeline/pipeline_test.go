package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/tributary-data/tributary/pkg/errors"
	"github.com/tributary-data/tributary/pkg/logging"
	"github.com/tributary-data/tributary/pkg/pipeline"
	"github.com/tributary-data/tributary/pkg/tabular"
)

var (
	fixedProcessing = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	fixedRun        = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)
)

// memSource serves a fixed table from memory.
type memSource struct {
	name  string
	table *tabular.Table
	err   error
}

func (s *memSource) Name() string { return s.name }

func (s *memSource) Fetch(_ context.Context) (*tabular.Table, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.table.Clone(), nil
}

// memLoader records what it was asked to load.
type memLoader struct {
	raw   *tabular.Table
	final *tabular.Table
	err   error
}

func (l *memLoader) Load(_ context.Context, raw, final *tabular.Table) (int, int, error) {
	if l.err != nil {
		return 0, 0, l.err
	}
	l.raw = raw
	l.final = final
	return raw.Len(), final.Len(), nil
}

func fixtureSourceA() *tabular.Table {
	tbl := tabular.New(" user_id", "Name", "Gender ", "DOB", "City")
	tbl.Append(tabular.String("1"), tabular.String("Alice"), tabular.String("Female"), tabular.String("2000-01-15"), tabular.String("Pune"))
	tbl.Append(tabular.String("2"), tabular.String("Bob"), tabular.String("m"), tabular.String("15/03/2010"), tabular.String("Delhi"))
	tbl.Append(tabular.String("3"), tabular.String("Cara"), tabular.String("xyz"), tabular.String("not-a-date"), tabular.String("Mumbai"))
	tbl.Append(tabular.String("4"), tabular.String("Dan"), tabular.String("M"), tabular.String("1990-12-31"), tabular.Null())
	return tbl
}

func fixtureSourceB() *tabular.Table {
	tbl := tabular.New("USER_ID", "NAME", "GENDER", "DOB", "Email", "Country")
	tbl.Append(tabular.String("1"), tabular.Null(), tabular.Null(), tabular.Null(), tabular.String("a@x.com"), tabular.String("IN"))
	tbl.Append(tabular.String("3"), tabular.String("Cara B"), tabular.String("F"), tabular.String("1985-02-02"), tabular.String("c@x.com"), tabular.String("IN"))
	tbl.Append(tabular.String("4"), tabular.String("Daniel"), tabular.String("F"), tabular.String("1991-01-01"), tabular.String("d@x.com"), tabular.String("US"))
	tbl.Append(tabular.String("5"), tabular.String("Eve"), tabular.String("F"), tabular.String("1999-09-09"), tabular.String("e@x.com"), tabular.String("UK"))
	return tbl
}

func fixturePipeline(opts ...pipeline.Option) *pipeline.Pipeline {
	base := []pipeline.Option{
		pipeline.WithProcessingDate(fixedProcessing),
		pipeline.WithRunTimestamp(fixedRun),
		pipeline.WithLogger(&logging.Nop),
	}
	return pipeline.New(
		&memSource{name: "source-a", table: fixtureSourceA()},
		&memSource{name: "source-b", table: fixtureSourceB()},
		append(base, opts...)...,
	)
}

// renderTable produces a stable textual form of a table for golden
// comparison. Null cells render as NULL.
func renderTable(t *tabular.Table) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(t.Columns(), ","))
	b.WriteByte('\n')
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]string, 0, len(t.Columns()))
		for _, c := range t.Columns() {
			v := row.Get(c)
			if v.IsNull() {
				cells = append(cells, "NULL")
			} else {
				cells = append(cells, v.Str())
			}
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func TestPipelineRun(t *testing.T) {
	loader := &memLoader{}
	p := fixturePipeline(pipeline.WithLoader(loader))

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	// Raw layer row count always equals the sum of both source row counts
	assert.Equal(t, result.SourceARows+result.SourceBRows, result.RawRows)
	assert.Equal(t, 8, result.RawRows)

	// Reconciled identifiers are a subset of both sources' identifier sets
	assert.Equal(t, 3, result.MergedRows)

	// Eligibility: id 2 is 14, id 3 has a null age; ids 1 and 4 remain
	assert.Equal(t, 2, result.FinalRows)

	assert.True(t, result.Loaded)
	assert.Equal(t, 8, result.RawLoaded)
	assert.Equal(t, 2, result.FinalLoaded)
	assert.Equal(t, pipeline.RawColumns, loader.raw.Columns())
	assert.Equal(t, pipeline.FinalColumns, loader.final.Columns())
	assert.Contains(t, result.Summary(), "loaded 8 raw + 2 final rows")
}

func TestPipelineAgeBoundary(t *testing.T) {
	// Eligibility is strictly greater than 18 as of the processing date:
	// id 1 turns 19, id 2 turns exactly 18 on the processing date, id 3 is
	// still 17 until the next day.
	a := tabular.New("user_id", "name", "dob")
	a.Append(tabular.String("1"), tabular.String("Pia"), tabular.String("2005-06-01"))
	a.Append(tabular.String("2"), tabular.String("Quin"), tabular.String("2006-06-01"))
	a.Append(tabular.String("3"), tabular.String("Rae"), tabular.String("2006-06-02"))
	b := tabular.New("user_id", "email")
	b.Append(tabular.String("1"), tabular.String("p@x.com"))
	b.Append(tabular.String("2"), tabular.String("q@x.com"))
	b.Append(tabular.String("3"), tabular.String("r@x.com"))

	p := pipeline.New(
		&memSource{name: "source-a", table: a},
		&memSource{name: "source-b", table: b},
		pipeline.WithProcessingDate(fixedProcessing),
		pipeline.WithRunTimestamp(fixedRun),
		pipeline.WithLogger(&logging.Nop),
	)
	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.MergedRows)
	require.Equal(t, 1, result.FinalRows)
	assert.Equal(t, "1", result.Final.Row(0).Get("USER_ID").Str())
	assert.Equal(t, "19", result.Final.Row(0).Get("AGE").Str())
}

func TestPipelineGolden(t *testing.T) {
	result, err := fixturePipeline().Run(context.Background())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "raw_layer", renderTable(result.Raw))
	g.Assert(t, "final_layer", renderTable(result.Final))
}

func TestPipelineDeterminism(t *testing.T) {
	first, err := fixturePipeline().Run(context.Background())
	require.NoError(t, err)
	second, err := fixturePipeline().Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, renderTable(first.Raw), renderTable(second.Raw))
	assert.Equal(t, renderTable(first.Final), renderTable(second.Final))
}

func TestPipelineDryRun(t *testing.T) {
	result, err := fixturePipeline().Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Loaded)
	assert.Contains(t, result.Summary(), "dry run")
}

func TestPipelineIngestFailure(t *testing.T) {
	t.Run("unreadable source", func(t *testing.T) {
		p := pipeline.New(
			&memSource{name: "source-a", err: pkgerrors.NewIngestError("source-a", "missing.csv", pkgerrors.New("no such file"))},
			&memSource{name: "source-b", table: fixtureSourceB()},
			pipeline.WithLogger(&logging.Nop),
		)
		_, err := p.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, pipeline.StageIngest, pkgerrors.Stage(err))
		assert.True(t, pkgerrors.IsIngest(err))
	})

	t.Run("missing identifier column", func(t *testing.T) {
		noID := tabular.New("NAME", "EMAIL")
		noID.Append(tabular.String("Alice"), tabular.String("a@x.com"))
		p := pipeline.New(
			&memSource{name: "source-a", table: noID},
			&memSource{name: "source-b", table: fixtureSourceB()},
			pipeline.WithLogger(&logging.Nop),
		)
		_, err := p.Run(context.Background())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsIngest(err))
	})
}

func TestPipelineLoadFailure(t *testing.T) {
	loader := &memLoader{err: pkgerrors.NewLoadError("connect", "", pkgerrors.New("bad account"))}
	p := fixturePipeline(pipeline.WithLoader(loader))

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, pipeline.StageLoad, pkgerrors.Stage(err))
	assert.True(t, pkgerrors.IsLoad(err))
}

func TestPipelineProvenance(t *testing.T) {
	result, err := fixturePipeline(pipeline.WithProvenance(true)).Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, result.Provenance, "1")
	assert.Equal(t, "source-a", string(result.Provenance["1"]["NAME"]))
	assert.Equal(t, "source-b", string(result.Provenance["1"]["EMAIL"]))
}

func TestPipelineCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fixturePipeline().Run(ctx)
	require.Error(t, err)
}
