package password

import "strings"

// Checks é o resultado do validador simples (medidor de força).
type Checks struct {
	MinLength bool `json:"minimo"`
	Upper     bool `json:"maiuscula"`
	Lower     bool `json:"minuscula"`
	Number    bool `json:"numero"`
	Special   bool `json:"especial"`
	Valid     bool `json:"valida"`
}

// Check avalia as cinco verificações. Aqui qualquer caractere fora de
// A-Z, a-z e 0-9 conta como especial, inclusive letras acentuadas.
func Check(pw string) Checks {
	c := Checks{
		MinLength: len([]rune(pw)) >= MinLength,
		Upper:     strings.ContainsFunc(pw, isUpper),
		Lower:     strings.ContainsFunc(pw, isLower),
		Number:    strings.ContainsFunc(pw, isDigit),
		Special: strings.ContainsFunc(pw, func(r rune) bool {
			return !isUpper(r) && !isLower(r) && !isDigit(r)
		}),
	}
	c.Valid = c.MinLength && c.Upper && c.Lower && c.Number && c.Special
	return c
}

// Count devolve quantas das cinco verificações passaram.
func (c Checks) Count() int {
	n := 0
	for _, ok := range []bool{c.MinLength, c.Upper, c.Lower, c.Number, c.Special} {
		if ok {
			n++
		}
	}
	return n
}

// Score escala Count linearmente para 0..100 (passos de 20).
func (c Checks) Score() int { return c.Count() * 20 }

// Score é o score do medidor para pw.
func Score(pw string) int { return Check(pw).Score() }

// Rótulos do medidor.
const (
	LabelVeryWeak = "Muito fraca"
	LabelWeak     = "Fraca"
	LabelMedium   = "Média"
	LabelStrong   = "Forte"
)

// StrengthLabel aplica as faixas ≤25, ≤50, ≤75 sobre o score.
// Com passos de 20: 0 e 20 → muito fraca, 40 → fraca, 60 → média, 80 e 100 → forte.
func StrengthLabel(score int) string {
	switch {
	case score <= 25:
		return LabelVeryWeak
	case score <= 50:
		return LabelWeak
	case score <= 75:
		return LabelMedium
	default:
		return LabelStrong
	}
}

// Strength resume o medidor para a tela.
type Strength struct {
	Score  int    `json:"score"`
	Label  string `json:"label"`
	Checks Checks `json:"checks"`
}

// Evaluate combina Check, Score e StrengthLabel.
func Evaluate(pw string) Strength {
	c := Check(pw)
	return Strength{Score: c.Score(), Label: StrengthLabel(c.Score()), Checks: c}
}
