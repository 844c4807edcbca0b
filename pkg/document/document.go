package document

import "strings"

// Kind identifies the family of a Brazilian tax document.
type Kind string

const (
	KindUnknown Kind = "unknown"
	KindCPF     Kind = "cpf"
	KindCNPJ    Kind = "cnpj"
)

// MinLength is the shortest normalized document accepted for a vendor lookup (a CPF).
const MinLength = 11

// Normalize strips every character that is not a decimal digit.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// KindOf classifies a document by its digit count.
func KindOf(raw string) Kind {
	switch len(Normalize(raw)) {
	case 11:
		return KindCPF
	case 14:
		return KindCNPJ
	default:
		return KindUnknown
	}
}

// Format applies the CPF mask (000.000.000-00) up to 11 digits and the
// CNPJ mask (00.000.000/0000-00) beyond that. Partial input is masked as far
// as it goes.
func Format(raw string) string {
	v := Normalize(raw)
	if len(v) <= 11 {
		return mask(v, []int{3, 3, 3, 2}, []string{".", ".", "-"})
	}
	if len(v) > 14 {
		v = v[:14]
	}
	return mask(v, []int{2, 3, 3, 4, 2}, []string{".", ".", "/", "-"})
}

func mask(v string, sizes []int, seps []string) string {
	var b strings.Builder
	pos := 0
	for i, size := range sizes {
		if pos >= len(v) {
			break
		}
		if i > 0 {
			b.WriteString(seps[i-1])
		}
		end := pos + size
		if end > len(v) {
			end = len(v)
		}
		b.WriteString(v[pos:end])
		pos = end
	}
	return b.String()
}
