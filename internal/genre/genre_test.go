package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   any
		want Variant
	}{
		{nil, Missing},
		{"", Missing},
		{"NaN", Missing},
		{[]string{"rock"}, List},
		{[]any{"rock", "pop"}, List},
		{"['pop','rock']", LiteralList},
		{`["dance pop", 'edm']`, LiteralList},
		{"[]", LiteralList},
		{"pop, jazz", Delimited},
		{"['pop', rock]", Delimited},
		{"['unterminated", Delimited},
		{"['a'] trailing", Delimited},
		{int64(3), Missing},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.in), "Classify(%#v)", tt.in)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   any
		want Genres
	}{
		{"['pop','rock']", Genres{"pop", "rock"}},
		{"pop, jazz", Genres{"pop", "jazz"}},
		{[]string{"rock"}, Genres{"rock"}},
		{"[]", nil},
		{"", nil},
		{" indie ,, folk ", Genres{"indie", "folk"}},
		{`['hip hop', "children's music"]`, Genres{"hip hop", "children's music"}},
		{`['it\'s', 1980]`, Genres{"it's", "1980"}},
		{"['comma, inside']", Genres{"comma, inside"}},
		{"['pop', 'rock'", Genres{"pop", "rock"}},
		{"['Pop', Rock]", Genres{"Pop", "Rock"}},
		{`["edm", 'house`, Genres{"edm", "house"}},
		{"[", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "Parse(%#v)", tt.in)
	}
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, "pop, k-pop", Parse("['Pop', 'K-Pop']").Flatten())
	assert.Equal(t, "", Parse("[]").Flatten())

	// Flattening is stable under a second parse.
	once := Parse("['Pop', 'Rock']").Flatten()
	assert.Equal(t, once, Parse(once).Flatten())
}
