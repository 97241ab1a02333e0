package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name  string
		row   []string
		width int
		want  []string
	}{
		{name: "exact width untouched", row: []string{"a", "b"}, width: 2, want: []string{"a", "b"}},
		{name: "short row padded", row: []string{"a"}, width: 3, want: []string{"a", "", ""}},
		{name: "empty row padded", row: []string{}, width: 2, want: []string{"", ""}},
		{name: "long row truncated", row: []string{"a", "b", "c", "d"}, width: 2, want: []string{"a", "b"}},
		{name: "zero width", row: []string{"a"}, width: 0, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repair(tt.row, tt.width)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, tt.width)
		})
	}
}

func TestRepair_TruncatedRowDoesNotAliasAppends(t *testing.T) {
	row := []string{"a", "b", "c"}
	got := Repair(row, 2)
	got = append(got, "x")

	assert.Equal(t, "c", row[2], "appending to a repaired row must not overwrite the source")
	assert.Equal(t, []string{"a", "b", "x"}, got)
}

func TestTable_Column(t *testing.T) {
	tbl := &Table{Header: []string{"node_index", "node_id", "node_type"}}

	assert.Equal(t, 0, tbl.Column("node_index"))
	assert.Equal(t, 2, tbl.Column("node_type"))
	assert.Equal(t, -1, tbl.Column("Node_Type"), "lookup is case-sensitive")
	assert.Equal(t, -1, tbl.Column("missing"))
}

func TestTable_FilterKeepsOrder(t *testing.T) {
	tbl := &Table{
		Header: []string{"v"},
		Rows:   [][]string{{"3"}, {"1"}, {"4"}, {"1"}, {"5"}},
	}

	got := tbl.Filter(func(row []string) bool { return row[0] != "4" })

	assert.Equal(t, tbl.Header, got.Header)
	assert.Equal(t, [][]string{{"3"}, {"1"}, {"1"}, {"5"}}, got.Rows)
	assert.Equal(t, 5, tbl.Len(), "source table is not modified")
}

func TestDialect_Validate(t *testing.T) {
	tests := []struct {
		name      string
		dialect   Dialect
		wantErr   bool
		errSubstr string
	}{
		{name: "tsv", dialect: TSV},
		{name: "csv", dialect: CSV},
		{name: "single quote", dialect: Dialect{Delimiter: ';', Quote: '\''}},
		{name: "missing delimiter", dialect: Dialect{Quote: '"'}, wantErr: true, errSubstr: "requires both"},
		{name: "same characters", dialect: Dialect{Delimiter: '"', Quote: '"'}, wantErr: true, errSubstr: "must differ"},
		{name: "newline delimiter", dialect: Dialect{Delimiter: '\n', Quote: '"'}, wantErr: true, errSubstr: "cannot be used"},
		{name: "carriage return quote", dialect: Dialect{Delimiter: ',', Quote: '\r'}, wantErr: true, errSubstr: "cannot be used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dialect.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
		})
	}
}
