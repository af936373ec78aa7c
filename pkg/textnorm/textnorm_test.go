package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"Anel":              "anel",
		"PREÇO":             "preco",
		"Coleção Aurora":    "colecao aurora",
		"Turmalina Paraíba": "turmalina paraiba",
		"ÁÉÍÓÚ ãõ ü":        "aeiou ao u",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"anel", "ouro"}, Tokenize("  Anel de   OURO "))
	assert.Equal(t, []string{"voces", "tem", "colar"}, Tokenize("vocês têm colar"))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t\n "))
	assert.Empty(t, Tokenize("oi de um"))
}

func TestTokenizeMin(t *testing.T) {
	assert.Equal(t, []string{"de", "ouro"}, TokenizeMin("de ouro", 2))
}
