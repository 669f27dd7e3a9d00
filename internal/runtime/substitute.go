package runtime

import "strings"

// Substituter fills slot values into a response template.
type Substituter interface {
	Substitute(template string, slots []string, values map[string]string) string
}

// LiteralSubstituter replaces every occurrence of each slot name with its
// value, in the given slot order. A slot name that also appears as ordinary
// text is replaced too. Unset slots are left as written.
type LiteralSubstituter struct{}

func (LiteralSubstituter) Substitute(template string, slots []string, values map[string]string) string {
	text := template
	for _, slot := range slots {
		value, ok := values[slot]
		if !ok {
			continue
		}
		text = strings.ReplaceAll(text, slot, value)
	}
	return text
}

// DelimitedSubstituter only replaces slot names wrapped in delimiters,
// e.g. "{size}" with the defaults.
type DelimitedSubstituter struct {
	Left  string
	Right string
}

func (d DelimitedSubstituter) Substitute(template string, slots []string, values map[string]string) string {
	left, right := d.Left, d.Right
	if left == "" && right == "" {
		left, right = "{", "}"
	}

	pairs := make([]string, 0, len(slots)*2)
	for _, slot := range slots {
		if value, ok := values[slot]; ok {
			pairs = append(pairs, left+slot+right, value)
		}
	}
	if len(pairs) == 0 {
		return template
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
