package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"catalogo/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMontarTexto(t *testing.T) {
	empresa := "Calcados Silva LTDA"
	politica := "Pedido minimo R$ 300"
	cat := &model.Catalogo{Nome: "Colecao Inverno 2026", EmpresaNome: &empresa, Politica: &politica}

	itens := []model.PedidoItem{
		{Ref: "A-10", Nome: "Bota Couro", Qtd: 3, Preco: decimal.NewFromFloat(59.90)},
		{Ref: "B-20", Nome: "Avental", Qtd: 2, Preco: decimal.NewFromFloat(12.00)},
	}

	texto := MontarTexto(cat, itens, "https://catalogo.example.com/p/abc")

	assert.Contains(t, texto, "Colecao Inverno 2026")
	assert.Contains(t, texto, "Calcados Silva LTDA")
	assert.Contains(t, texto, "Pedido minimo R$ 300")
	assert.Contains(t, texto, "Bota Couro | Ref: A-10 | Qtd: 3 | R$ 59,90 | Sub: R$ 179,70")
	assert.Contains(t, texto, "Avental | Ref: B-20 | Qtd: 2 | R$ 12,00 | Sub: R$ 24,00")
	assert.Contains(t, texto, "Total: R$ 203,70")
	assert.Contains(t, texto, "https://catalogo.example.com/p/abc")
}

func TestMontarTextoSemCatalogoOpcionais(t *testing.T) {
	texto := MontarTexto(&model.Catalogo{Nome: "Colecao"}, nil, "")

	assert.Contains(t, texto, "Colecao")
	assert.NotContains(t, texto, "Empresa:")
	assert.NotContains(t, texto, "Link do pedido")
	assert.Contains(t, texto, "Total: R$ 0,00")
}

func TestMontarLink(t *testing.T) {
	link := MontarLink("+55 (11) 98888-7777", "Pedido: 3x Bota")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511988887777?text="), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Pedido: 3x Bota", u.Query().Get("text"))
}

func TestMontarLinkSemTelefone(t *testing.T) {
	link := MontarLink("", "oi")
	assert.Equal(t, "https://wa.me/?text=oi", link)
}

func TestFormatarBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatarBRL(decimal.Zero))
	assert.Equal(t, "R$ 8,50", FormatarBRL(decimal.NewFromFloat(8.5)))
	assert.Equal(t, "R$ 1.234,56", FormatarBRL(decimal.NewFromFloat(1234.56)))
	assert.Equal(t, "R$ 1.234.567,80", FormatarBRL(decimal.NewFromFloat(1234567.8)))
	assert.Equal(t, "-R$ 12,00", FormatarBRL(decimal.NewFromInt(-12)))
}
