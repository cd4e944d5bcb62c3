// Package genre normalizes the free-form genres field of an artist.
//
// The field arrives in one of three shapes: an actual list, a string holding
// a bracketed list literal such as "['pop', 'rock']", or a comma-separated
// string such as "pop, rock". Classify names the shape and Parse turns any of
// them into Genres before aggregation looks at the value.
package genre

import (
	"strings"

	"github.com/ademuri/spotify-eda/internal/table"
)

type Variant int

const (
	Missing Variant = iota
	List
	LiteralList
	Delimited
)

func (v Variant) String() string {
	switch v {
	case List:
		return "list"
	case LiteralList:
		return "literal-list"
	case Delimited:
		return "delimited"
	}
	return "missing"
}

// Genres is a normalized list of genre tokens.
type Genres []string

// Classify reports which representation v uses. A string is a LiteralList
// only if it parses completely as a list literal; anything else is split on
// commas. A token that itself contains a comma can therefore only survive
// inside a list literal.
func Classify(v any) Variant {
	switch val := v.(type) {
	case []string, []any:
		return List
	case string:
		if table.IsMissing(val) {
			return Missing
		}
		if _, ok := parseLiteralList(val); ok {
			return LiteralList
		}
		return Delimited
	}
	return Missing
}

// Parse normalizes v into tokens using the precedence list, literal list,
// comma-separated. Empty tokens are dropped.
func Parse(v any) Genres {
	var tokens []string
	switch Classify(v) {
	case List:
		tokens = listTokens(v)
	case LiteralList:
		tokens, _ = parseLiteralList(v.(string))
	case Delimited:
		for _, tok := range strings.Split(v.(string), ",") {
			tokens = append(tokens, stripListMarks(tok))
		}
	default:
		return nil
	}

	var out Genres
	for _, tok := range tokens {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// stripListMarks removes the brackets and quotes a malformed list literal
// leaves on its tokens.
func stripListMarks(tok string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(tok), `[]'"`))
}

// Flatten renders the genres as a single lowercase, comma-separated string.
func (g Genres) Flatten() string {
	parts := make([]string, len(g))
	for i, tok := range g {
		parts[i] = strings.ToLower(strings.TrimSpace(tok))
	}
	return strings.Join(parts, ", ")
}

func listTokens(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		var tokens []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				tokens = append(tokens, s)
			} else if s := table.FormatCell(item); s != "" {
				tokens = append(tokens, s)
			}
		}
		return tokens
	}
	return nil
}
