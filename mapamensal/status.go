// Package mapamensal builds the monthly map (mapa mensal) of procedures: it
// fetches the case records of one process type and month, aggregates them by
// completion, renders the HTML report and exports it to a paginated PDF.
package mapamensal

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	StatusConcluido   = "Concluído"
	StatusEmAndamento = "Em Andamento"
)

// NormalizeStatus maps any status mentioning completion to StatusConcluido and
// everything else, legacy "Andamento" and empty values included, to
// StatusEmAndamento.
func NormalizeStatus(status string) string {
	if strings.Contains(fold(status), "conclu") {
		return StatusConcluido
	}
	return StatusEmAndamento
}

// fold lowercases s and strips its diacritics
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// slug turns s into a lowercase ASCII token joined by underscores
func slug(s string) string {
	var b strings.Builder
	sep := false
	for _, r := range fold(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}
