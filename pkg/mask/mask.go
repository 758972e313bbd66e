// Package mask formata CPF, telefone e CEP e normaliza texto para busca.
// As funções aceitam entrada parcial para que a máscara acompanhe a
// digitação no formulário.
package mask

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// OnlyDigits remove tudo que não for dígito ASCII.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF aplica 000.000.000-00, truncando em 11 dígitos.
func FormatCPF(s string) string {
	d := truncate(OnlyDigits(s), 11)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// FormatPhone aplica (00) 0000-0000 ou (00) 00000-0000 conforme a
// quantidade de dígitos, truncando em 11.
func FormatPhone(s string) string {
	d := truncate(OnlyDigits(s), 11)
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case len(d) <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// FormatCEP aplica 00000-000, truncando em 8 dígitos.
func FormatCEP(s string) string {
	d := truncate(OnlyDigits(s), 8)
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// ValidCPF confere os dígitos verificadores. CPFs com todos os dígitos
// iguais são rejeitados.
func ValidCPF(s string) bool {
	d := OnlyDigits(s)
	if len(d) != 11 {
		return false
	}
	if strings.Count(d, d[:1]) == 11 {
		return false
	}
	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

func checkDigit(prefix string, weight int) byte {
	sum := 0
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return byte('0' + rest)
}

// ValidPhone aceita telefones fixos (10 dígitos) e celulares (11).
func ValidPhone(s string) bool {
	n := len(OnlyDigits(s))
	return n == 10 || n == 11
}

// ValidCEP exige exatamente 8 dígitos.
func ValidCEP(s string) bool {
	return len(OnlyDigits(s)) == 8
}

// Normalize remove acentos, colapsa espaços e passa para minúsculas.
// É a forma gravada em nome_busca e usada nos filtros da listagem.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
