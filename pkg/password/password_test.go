package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-profissionais/pkg/password"
)

func TestCheck_SenhaCompleta(t *testing.T) {
	c := password.Check("Abcdef1!")
	assert.True(t, c.MinLength)
	assert.True(t, c.Upper)
	assert.True(t, c.Lower)
	assert.True(t, c.Number)
	assert.True(t, c.Special)
	assert.True(t, c.Valid)
	assert.Equal(t, 100, c.Score())
}

func TestCheck_SoMinusculas(t *testing.T) {
	c := password.Check("abcdefgh")
	assert.False(t, c.Valid)
	assert.False(t, c.Upper)
	assert.False(t, c.Number)
	assert.False(t, c.Special)
	assert.True(t, c.MinLength)
	assert.True(t, c.Lower)
	assert.Equal(t, 40, c.Score())
}

// Adicionar uma verificação satisfeita nunca reduz o score.
func TestScore_Monotonico(t *testing.T) {
	seq := []string{"", "a", "aA", "aA1", "aA1!", "aA1!aaaa"}
	prev := -1
	for _, pw := range seq {
		s := password.Check(pw).Score()
		assert.GreaterOrEqual(t, s, prev, "score de %q", pw)
		prev = s
	}
	assert.Equal(t, 100, prev)
}

func TestStrengthLabel_Faixas(t *testing.T) {
	cases := map[int]string{
		0:   password.LabelVeryWeak,
		20:  password.LabelVeryWeak,
		25:  password.LabelVeryWeak,
		26:  password.LabelWeak,
		40:  password.LabelWeak,
		50:  password.LabelWeak,
		60:  password.LabelMedium,
		75:  password.LabelMedium,
		80:  password.LabelStrong,
		100: password.LabelStrong,
	}
	for score, want := range cases {
		assert.Equal(t, want, password.StrengthLabel(score), "score %d", score)
	}
}

func TestEvaluate(t *testing.T) {
	s := password.Evaluate("abc1")
	assert.Equal(t, 40, s.Score)
	assert.Equal(t, password.LabelWeak, s.Label)
}

func TestValidate_OrdemDasViolacoes(t *testing.T) {
	got := password.Validate("abc")
	assert.Equal(t, []string{
		password.MsgMinLength,
		password.MsgUpper,
		password.MsgNumber,
		password.MsgSpecial,
	}, got)
}

func TestValidate_SenhaValida(t *testing.T) {
	assert.Empty(t, password.Validate("Abcdef1!"))
	assert.True(t, password.IsValid("Abcdef1!"))
}

// O validador detalhado só aceita o conjunto específico de especiais.
func TestValidate_EspecialForaDoConjunto(t *testing.T) {
	assert.Equal(t, []string{password.MsgSpecial}, password.Validate("Abcdef1_"))
	assert.True(t, password.Check("Abcdef1_").Special, "o validador simples aceita qualquer não alfanumérico")
}

func TestValidate_MaiusculaEMinusculaSoASCII(t *testing.T) {
	assert.Equal(t, []string{password.MsgUpper}, password.Validate("émbora1!x"), "É minúsculo acentuado não é maiúscula")
	assert.Equal(t, []string{password.MsgLower}, password.Validate("ÇÃOABC1!é"))
	assert.Equal(t, []string{password.MsgUpper}, password.Validate("Éabcdef1!"))

	c := password.Check("Éçabc1!x")
	assert.False(t, c.Upper)
	assert.True(t, c.Lower)
	assert.True(t, password.Check("abcdefgé").Special, "letra acentuada conta como especial no medidor")
}

func TestScore_PorSenha(t *testing.T) {
	assert.Equal(t, 100, password.Score("Abcdef1!"))
	assert.Equal(t, 0, password.Score(""))
	assert.Equal(t, password.Check("abc").Score(), password.Score("abc"))
	assert.Equal(t, password.LabelStrong, password.StrengthLabel(password.Score("Abcdef1!")))
}

func TestValidate_CPF(t *testing.T) {
	const cpf = "529.982.247-25"
	assert.Equal(t, []string{password.MsgCPF}, password.Validate("Aa!52998224725", password.WithCPF(cpf)))
	assert.Equal(t, []string{password.MsgCPF}, password.Validate("Aa!529.982.247-25", password.WithCPF(cpf)))
	assert.Empty(t, password.Validate("Aa!52998224725"), "sem WithCPF a regra fica desligada")
	assert.Empty(t, password.Validate("Abcdef1!", password.WithCPF(cpf)))
}

func TestGenerateProvisional(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		pw, err := password.GenerateProvisional()
		require.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.Empty(t, password.Validate(pw), "senha provisória %q deve passar na política", pw)
		seen[pw] = true
	}
	assert.Greater(t, len(seen), 45)
}
