package repositories

import "strings"

// TokenizeQuery splits a free-text query on whitespace and drops empty
// tokens. When the query has more than one token, the full trimmed
// phrase is appended as an extra term so multi-word matches rank in.
func TokenizeQuery(query string) []string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return nil
	}
	terms := make([]string, 0, len(fields)+1)
	terms = append(terms, fields...)
	if len(fields) > 1 {
		terms = append(terms, strings.Join(fields, " "))
	}
	return terms
}

// ContainsClause builds one OR'ed contains condition per (term x column).
// With insensitive set, both sides are lowered; otherwise matching
// follows the database's plain LIKE semantics.
func ContainsClause(columns []string, terms []string, insensitive bool) (string, []any) {
	if len(columns) == 0 || len(terms) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(columns)*len(terms))
	args := make([]any, 0, len(columns)*len(terms))

	for _, term := range terms {
		pattern := "%" + term + "%"
		if insensitive {
			pattern = strings.ToLower(pattern)
		}
		for _, col := range columns {
			if insensitive {
				clauses = append(clauses, "LOWER("+col+") LIKE ?")
			} else {
				clauses = append(clauses, col+" LIKE ?")
			}
			args = append(args, pattern)
		}
	}

	return strings.Join(clauses, " OR "), args
}
