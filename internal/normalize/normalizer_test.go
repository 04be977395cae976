package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "accents folded",
			input:    "Ronald Acuña Jr.",
			expected: "ronald acuna jr",
		},
		{
			name:     "already canonical",
			input:    "ronald acuna jr",
			expected: "ronald acuna jr",
		},
		{
			name:     "periods stripped",
			input:    "J.D. Martinez",
			expected: "jd martinez",
		},
		{
			name:     "curly apostrophe regularized",
			input:    "Logan O’Hoppe",
			expected: "logan o'hoppe",
		},
		{
			name:     "whitespace collapsed",
			input:    "  Luis   Robert  ",
			expected: "luis robert",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()

	inputs := []string{
		"Ronald Acuña Jr.",
		"José Ramírez",
		"Logan O’Hoppe",
		"  Shohei   Ohtani ",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", input)
	}
}

func TestNormalizeIdempotentWithChainedAliases(t *testing.T) {
	n := New()
	n.AddAlias("A. Rod", "Alex Rodriguez")
	n.AddAlias("Alex Rodriguez", "Alexander Rodriguez")

	for _, input := range []string{"A. Rod", "Alex Rodriguez", "Alexander Rodriguez"} {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", input)
		assert.Equal(t, "alexander rodriguez", once)
	}

	// same chain declared in the opposite order resolves at insertion
	m := New()
	m.AddAlias("Alex Rodriguez", "Alexander Rodriguez")
	m.AddAlias("A. Rod", "Alex Rodriguez")
	assert.Equal(t, "alexander rodriguez", m.Normalize("A. Rod"))
	assert.Equal(t, m.Normalize("A. Rod"), m.Normalize(m.Normalize("A. Rod")))
}

func TestNormalizeAccentInsensitive(t *testing.T) {
	n := New()
	assert.Equal(t, n.Normalize("ronald acuna jr"), n.Normalize("Ronald Acuña Jr."))
	assert.Equal(t, n.Normalize("jose ramirez"), n.Normalize("José Ramírez"))
}

func TestAddAlias(t *testing.T) {
	n := New()
	n.AddAlias("Michael Harris", "Michael Harris II")

	assert.Equal(t, "michael harris ii", n.Normalize("Michael Harris"))
	assert.Equal(t, "michael harris ii", n.Normalize("michael harris"))

	// unrelated names fall through to the generated key
	assert.Equal(t, "matt olson", n.Normalize("Matt Olson"))
}

func TestAliasTableIsInstanceScoped(t *testing.T) {
	a := New()
	b := New()
	a.AddAlias("Peté Alonso", "Pete Alonso")

	assert.Equal(t, "pete alonso", a.Normalize("Peté Alonso"))
	// fresh instance has no alias, but diacritic folding still applies
	assert.Equal(t, "pete alonso", b.Normalize("Peté Alonso"))

	b.AddAlias("Julio R.", "Julio Rodriguez")
	assert.Equal(t, "julio r", a.Normalize("Julio R."))
	assert.Equal(t, "julio rodriguez", b.Normalize("Julio R."))
}
