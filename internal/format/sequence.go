package format

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Style names a sequence rendering.
type Style string

const (
	// StyleList renders "[0, 1, 1, 2]".
	StyleList Style = "list"
	// StyleLines renders one term per line.
	StyleLines Style = "lines"
	// StyleIndexed renders "F(i) = term" per line.
	StyleIndexed Style = "indexed"
	// StyleJSON renders {"n": ..., "terms": [...]}.
	StyleJSON Style = "json"
)

// Styles returns every supported style in display order.
func Styles() []Style {
	return []Style{StyleList, StyleLines, StyleIndexed, StyleJSON}
}

// ParseStyle validates a style name.
func ParseStyle(name string) (Style, error) {
	for _, s := range Styles() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: list, lines, indexed, json)", name)
}

// FormatSequence renders terms in the given style. n is the requested term
// count, which only the JSON style records.
func FormatSequence(terms []*big.Int, n int, style Style) (string, error) {
	switch style {
	case StyleList, "":
		return FormatList(terms), nil
	case StyleLines:
		return joinLines(terms, func(_ int, t *big.Int) string { return t.String() }), nil
	case StyleIndexed:
		return joinLines(terms, func(i int, t *big.Int) string { return fmt.Sprintf("F(%d) = %s", i, t) }), nil
	case StyleJSON:
		return FormatJSON(terms, n)
	}
	return "", fmt.Errorf("unknown format %q", style)
}

// FormatList renders terms as a bracketed, comma-separated list. An empty
// sequence renders as "[]".
func FormatList(terms []*big.Int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, t := range terms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteByte(']')
	return b.String()
}

// sequenceDocument is the JSON shape of a rendered sequence. *big.Int
// marshals as a JSON number, so arbitrarily large terms keep full precision.
type sequenceDocument struct {
	N     int        `json:"n"`
	Terms []*big.Int `json:"terms"`
}

// FormatJSON renders terms as a single-line JSON document.
func FormatJSON(terms []*big.Int, n int) (string, error) {
	if terms == nil {
		terms = []*big.Int{}
	}
	data, err := json.Marshal(sequenceDocument{N: n, Terms: terms})
	if err != nil {
		return "", fmt.Errorf("encoding sequence: %w", err)
	}
	return string(data), nil
}

func joinLines(terms []*big.Int, line func(int, *big.Int) string) string {
	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line(i, t))
	}
	return b.String()
}
