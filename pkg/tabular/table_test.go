package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/tributary-data/tributary/pkg/errors"
	"github.com/tributary-data/tributary/pkg/tabular"
)

func TestValue(t *testing.T) {
	assert.True(t, tabular.Null().IsNull())
	assert.Equal(t, "", tabular.Null().Str())

	v := tabular.String("Alice")
	assert.False(t, v.IsNull())
	assert.Equal(t, "Alice", v.Str())

	// Zero value is null
	var zero tabular.Value
	assert.True(t, zero.IsNull())
}

func TestTableRowAccess(t *testing.T) {
	tbl := tabular.New("USER_ID", "NAME")
	tbl.Append(tabular.String("1"), tabular.String("Alice"))
	tbl.Append(tabular.String("2")) // missing trailing cell

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Alice", tbl.Row(0).Get("NAME").Str())
	assert.True(t, tbl.Row(1).Get("NAME").IsNull())

	// Absent column reads as null, writes are no-ops
	assert.True(t, tbl.Row(0).Get("EMAIL").IsNull())
	tbl.Row(0).Set("EMAIL", tabular.String("a@x.com"))
	assert.False(t, tbl.HasColumn("EMAIL"))
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  user_id ", "USER_ID"},
		{"Name", "NAME"},
		{"EMAIL", "EMAIL"},
		{"\tdob\n", "DOB"},
	}
	for _, tt := range tests {
		got := tabular.CanonicalName(tt.in)
		assert.Equal(t, tt.want, got)
		// Idempotent
		assert.Equal(t, tt.want, tabular.CanonicalName(got))
	}
}

func TestNormalizeHeader(t *testing.T) {
	t.Run("canonicalizes in order", func(t *testing.T) {
		tbl := tabular.New(" user_id", "Name ", "dob")
		tbl.Append(tabular.String("1"), tabular.String("Alice"), tabular.String("2000-01-01"))

		require.NoError(t, tbl.NormalizeHeader())
		assert.Equal(t, []string{"USER_ID", "NAME", "DOB"}, tbl.Columns())
		assert.Equal(t, "Alice", tbl.Row(0).Get("NAME").Str())

		// Idempotent
		require.NoError(t, tbl.NormalizeHeader())
		assert.Equal(t, []string{"USER_ID", "NAME", "DOB"}, tbl.Columns())
	})

	t.Run("zero columns is fatal", func(t *testing.T) {
		err := tabular.New().NormalizeHeader()
		assert.True(t, pkgerrors.IsIngest(err))
	})
}

func TestRequireColumn(t *testing.T) {
	tbl := tabular.New("USER_ID")
	assert.NoError(t, tbl.RequireColumn("USER_ID"))
	assert.True(t, pkgerrors.IsSchemaContract(tbl.RequireColumn("NAME")))
}

func TestStack(t *testing.T) {
	a := tabular.New("USER_ID", "NAME", "CITY")
	a.Append(tabular.String("1"), tabular.String("Alice"), tabular.String("Pune"))
	a.Append(tabular.String("2"), tabular.String("Bob"), tabular.Null())

	b := tabular.New("USER_ID", "NAME", "COUNTRY")
	b.Append(tabular.String("1"), tabular.String("Alice B"), tabular.String("IN"))

	out := tabular.Stack(a, b)

	// Union columns: a's first, then b's novel ones
	assert.Equal(t, []string{"USER_ID", "NAME", "CITY", "COUNTRY"}, out.Columns())
	// Row count is always the sum, duplicates preserved
	require.Equal(t, a.Len()+b.Len(), out.Len())
	// Source-specific columns are null for rows from the other source
	assert.True(t, out.Row(0).Get("COUNTRY").IsNull())
	assert.True(t, out.Row(2).Get("CITY").IsNull())
	assert.Equal(t, "IN", out.Row(2).Get("COUNTRY").Str())
}

func TestProject(t *testing.T) {
	tbl := tabular.New("USER_ID", "NAME", "EMAIL")
	tbl.Append(tabular.String("1"), tabular.String("Alice"), tabular.String("a@x.com"))

	out := tbl.Project("EMAIL", "USER_ID")
	assert.Equal(t, []string{"EMAIL", "USER_ID"}, out.Columns())
	assert.Equal(t, "a@x.com", out.Row(0).Get("EMAIL").Str())
	assert.Equal(t, "1", out.Row(0).Get("USER_ID").Str())
}

func TestClone(t *testing.T) {
	tbl := tabular.New("USER_ID")
	tbl.Append(tabular.String("1"))

	cp := tbl.Clone()
	cp.Row(0).Set("USER_ID", tabular.String("9"))
	assert.Equal(t, "1", tbl.Row(0).Get("USER_ID").Str())
	assert.Equal(t, "9", cp.Row(0).Get("USER_ID").Str())
}
