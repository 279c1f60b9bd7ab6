package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommaDelimited(t *testing.T) {
	csv := "pagina,ref,nome,qtd_multiplo,preco\n" +
		"1,A-10,Bota Couro,3,59.90\n" +
		"2,B-20,Avental,1,12.00\n"

	rows, ignoradas, err := Parse([]byte(csv))
	require.NoError(t, err)
	assert.Zero(t, ignoradas)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Pagina)
	assert.Equal(t, "A-10", rows[0].Ref)
	assert.Equal(t, "Bota Couro", rows[0].Nome)
	assert.Equal(t, 3, rows[0].QtdMultiplo)
	assert.Equal(t, "59.9", rows[0].Preco.String())
}

func TestParseSemicolonWithCommaDecimals(t *testing.T) {
	// pt-BR Excel export: semicolons, comma decimals, thousands dots
	csv := "pagina;ref;nome;qtd_multiplo;preco\n" +
		"1;A-10;Bota Couro;3;1.259,90\n"

	rows, ignoradas, err := Parse([]byte(csv))
	require.NoError(t, err)
	assert.Zero(t, ignoradas)
	require.Len(t, rows, 1)
	assert.Equal(t, "1259.9", rows[0].Preco.String())
}

func TestParseStripsBOMAndBlankLines(t *testing.T) {
	csv := "\xEF\xBB\xBFpagina,ref,nome\n" +
		"1,A-10,Bota\n" +
		",,\n" +
		"\n" +
		"2,B-20,Avental\n"

	rows, ignoradas, err := Parse([]byte(csv))
	require.NoError(t, err)
	assert.Zero(t, ignoradas)
	assert.Len(t, rows, 2)
}

func TestParseHeaderAliases(t *testing.T) {
	csv := "Página,Referência,Descrição,Múltiplo,Preço\n" +
		"4,C-30,Luva Raspa,12,8,50\n"

	// Note: "8,50" unquoted splits into two fields; preco lands on "8"
	rows, _, err := Parse([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Pagina)
	assert.Equal(t, "C-30", rows[0].Ref)
	assert.Equal(t, 12, rows[0].QtdMultiplo)
}

func TestParseSkipsInvalidRows(t *testing.T) {
	csv := "pagina,ref,nome,qtd_multiplo,preco\n" +
		"0,A-10,Pagina zero,1,5.00\n" +
		"x,B-20,Pagina nao numerica,1,5.00\n" +
		"2,,Sem ref,1,5.00\n" +
		"3,C-30,,1,5.00\n" +
		"4,D-40,Valida,1,5.00\n"

	rows, ignoradas, err := Parse([]byte(csv))
	require.NoError(t, err)
	assert.Equal(t, 4, ignoradas)
	require.Len(t, rows, 1)
	assert.Equal(t, "D-40", rows[0].Ref)
}

func TestParseDefaultsMultiploAndPreco(t *testing.T) {
	csv := "pagina,ref,nome,qtd_multiplo,preco\n" +
		"1,A-10,Sem extras,,\n" +
		"2,B-20,Multiplo invalido,0,-9.90\n"

	rows, _, err := Parse([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].QtdMultiplo)
	assert.True(t, rows[0].Preco.IsZero())
	assert.Equal(t, 1, rows[1].QtdMultiplo)
	assert.True(t, rows[1].Preco.IsZero(), "preco negativo cai para zero")
}

func TestParseQuotedFields(t *testing.T) {
	csv := "pagina,ref,nome,preco\n" +
		`1,A-10,"Bota, cano longo","59.90"` + "\n"

	rows, _, err := Parse([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bota, cano longo", rows[0].Nome)
}

func TestParseMissingRequiredColumn(t *testing.T) {
	csv := "ref,nome,preco\nA-10,Bota,5.00\n"

	_, _, err := Parse([]byte(csv))
	assert.ErrorIs(t, err, ErrColunasFaltando)
}

func TestParseRPrefixedPrice(t *testing.T) {
	csv := "pagina,ref,nome,preco\n" +
		`1,A-10,Bota,"R$ 1.234,56"` + "\n"

	rows, _, err := Parse([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1234.56", rows[0].Preco.String())
}
