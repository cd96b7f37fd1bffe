package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestTokenizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t ", nil},
		{"single token", "jazz", []string{"jazz"}},
		{"two tokens append phrase", "jazz night", []string{"jazz", "night", "jazz night"}},
		{"collapses extra spaces", "  jazz   night ", []string{"jazz", "night", "jazz night"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenizeQuery(tt.query))
		})
	}
}

func TestContainsClause(t *testing.T) {
	t.Run("sensitive", func(t *testing.T) {
		cond, args := ContainsClause([]string{"title", "city"}, []string{"Jazz"}, false)
		assert.Equal(t, "title LIKE ? OR city LIKE ?", cond)
		assert.Equal(t, []any{"%Jazz%", "%Jazz%"}, args)
	})

	t.Run("insensitive lowers both sides", func(t *testing.T) {
		cond, args := ContainsClause([]string{"name"}, []string{"Jazz"}, true)
		assert.Equal(t, "LOWER(name) LIKE ?", cond)
		assert.Equal(t, []any{"%jazz%"}, args)
	})

	t.Run("empty inputs", func(t *testing.T) {
		cond, args := ContainsClause(nil, []string{"x"}, false)
		assert.Empty(t, cond)
		assert.Nil(t, args)

		cond, args = ContainsClause([]string{"title"}, nil, false)
		assert.Empty(t, cond)
		assert.Nil(t, args)
	})
}

func TestProperty_ContainsClauseShape(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		numCols := rapid.IntRange(1, 5).Draw(rt, "numCols")
		numTerms := rapid.IntRange(1, 5).Draw(rt, "numTerms")

		columns := make([]string, numCols)
		for i := range columns {
			columns[i] = rapid.StringMatching(`[a-z_]{1,10}`).Draw(rt, "column")
		}
		terms := make([]string, numTerms)
		for i := range terms {
			terms[i] = rapid.StringMatching(`[a-zA-Z0-9 ]{1,12}`).Draw(rt, "term")
		}

		cond, args := ContainsClause(columns, terms, false)

		// One placeholder and one argument per (term x column)
		want := numCols * numTerms
		if got := strings.Count(cond, "?"); got != want {
			rt.Fatalf("expected %d placeholders, got %d", want, got)
		}
		if len(args) != want {
			rt.Fatalf("expected %d args, got %d", want, len(args))
		}
		if strings.Count(cond, " OR ") != want-1 {
			rt.Fatalf("clause count and OR separators disagree: %q", cond)
		}
	})
}
