// Package whatsapp renders an order as the plain-text message buyers send to
// the seller, plus the wa.me deep link carrying it. Pure presentation — no
// I/O, no state.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"catalogo/internal/model"

	"github.com/shopspring/decimal"
)

// MontarTexto builds the order message: header with catalog and company,
// one bullet per line with quantity and subtotal, the grand total, and the
// shareable order link.
func MontarTexto(catalogo *model.Catalogo, itens []model.PedidoItem, link string) string {
	var b strings.Builder

	nome := "Catálogo"
	if catalogo != nil && catalogo.Nome != "" {
		nome = catalogo.Nome
	}
	fmt.Fprintf(&b, "🧾 Pedido B2B — %s\n", nome)
	if catalogo != nil && catalogo.EmpresaNome != nil {
		fmt.Fprintf(&b, "🏷️ Empresa: %s\n", *catalogo.EmpresaNome)
	}
	if catalogo != nil && catalogo.Politica != nil {
		fmt.Fprintf(&b, "📌 Política: %s\n", *catalogo.Politica)
	}

	b.WriteString("\nItens:\n")
	total := decimal.Zero
	for _, it := range itens {
		sub := it.Preco.Mul(decimal.NewFromInt(int64(it.Qtd)))
		total = total.Add(sub)
		fmt.Fprintf(&b, "• %s | Ref: %s | Qtd: %d | %s | Sub: %s\n",
			it.Nome, it.Ref, it.Qtd, FormatarBRL(it.Preco), FormatarBRL(sub))
	}

	fmt.Fprintf(&b, "\nTotal: %s", FormatarBRL(total))
	if link != "" {
		fmt.Fprintf(&b, "\n\n🔗 Link do pedido: %s", link)
	}
	return b.String()
}

// MontarLink builds a wa.me link for the given phone (digits extracted from
// any E.164-ish input; empty phone yields a target-less link) carrying the
// message as the text parameter.
func MontarLink(phone, texto string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	base := "https://wa.me/"
	if digits != "" {
		base += digits
	}
	return base + "?text=" + url.QueryEscape(texto)
}

// FormatarBRL renders a decimal as Brazilian currency: R$ 1.234,56.
func FormatarBRL(v decimal.Decimal) string {
	s := v.StringFixed(2) // e.g. -1234.56
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	out := "R$ " + grouped.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
