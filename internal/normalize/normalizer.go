// Package normalize canonicalizes player and team name strings into
// snapshot lookup keys. Keys are for lookups only, never for display.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// apostrophes maps the common apostrophe variants onto plain ASCII.
var apostrophes = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"ʼ", "'", // modifier letter apostrophe
	"`", "'",
)

// Normalizer builds canonical lookup keys. The alias table is instance
// state so tests can construct a fresh Normalizer without cross-test bleed.
type Normalizer struct {
	fold    transform.Transformer
	aliases map[string]string
}

// New creates a Normalizer with an empty alias table.
func New() *Normalizer {
	return &Normalizer{
		fold:    transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		aliases: make(map[string]string),
	}
}

// AddAlias registers an alternate spelling for a name. Both sides are
// normalized before insertion so the mapping holds for any input casing.
// Chained aliases are flattened here: the target is resolved through the
// table and earlier entries pointing at the re-aliased key are re-pointed,
// so resolution stays a single hop and Normalize stays idempotent.
func (n *Normalizer) AddAlias(from, to string) {
	fromKey := n.key(from)
	target := n.Normalize(to)
	n.aliases[fromKey] = target

	for k, v := range n.aliases {
		if v == fromKey {
			n.aliases[k] = target
		}
	}
}

// Normalize canonicalizes a name: lower-case, periods stripped, diacritics
// folded to their base form, apostrophe variants regularized, whitespace
// collapsed, then resolved through the alias table. Idempotent.
func (n *Normalizer) Normalize(name string) string {
	k := n.key(name)
	if alias, ok := n.aliases[k]; ok {
		return alias
	}
	return k
}

func (n *Normalizer) key(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = apostrophes.Replace(s)
	s = strings.ReplaceAll(s, ".", "")
	if folded, _, err := transform.String(n.fold, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}
