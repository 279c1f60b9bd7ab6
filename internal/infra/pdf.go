package infra

// pdf.go — printable order quote generation using go-pdf/fpdf.
// Renders an A4 quote sheet with the catalog header, order metadata, the
// item table (name, ref, multiple, quantity, unit price, subtotal) and a
// bold total. The output file is saved to storagePath/pedido_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"catalogo/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GerarPedidoPDF writes the quote PDF for an order and returns its path.
// storagePath is created if missing.
func GerarPedidoPDF(pedido *model.Pedido, itens []model.PedidoItem, catalogo *model.Catalogo, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: criar diretorio: %w", err)
	}

	fileName := fmt.Sprintf("pedido_%s.pdf", pedido.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	titulo := catalogo.Nome
	if catalogo.EmpresaNome != nil {
		titulo = *catalogo.EmpresaNome + " — " + catalogo.Nome
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, titulo, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Pedido %s", pedido.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, pedido.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if pedido.ClienteNome != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+*pedido.ClienteNome, "", 1, "L", false, 0, "")
	}
	if catalogo.Politica != nil {
		pdf.CellFormat(contentW, 5, "Política: "+*catalogo.Politica, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Item table ───────────────────────────────────────────────────────────
	colNome := contentW * 0.38
	colRef := contentW * 0.14
	colMult := contentW * 0.10
	colQtd := contentW * 0.10
	colPreco := contentW * 0.14
	colSub := contentW * 0.14

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colNome, 6, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colRef, 6, "Ref", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colMult, 6, "Múlt.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colQtd, 6, "Qtd", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colPreco, 6, "Preço", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colSub, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	total := decimal.Zero
	for _, it := range itens {
		sub := it.Preco.Mul(decimal.NewFromInt(int64(it.Qtd)))
		total = total.Add(sub)
		pdf.CellFormat(colNome, 6, it.Nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(colRef, 6, it.Ref, "", 0, "L", false, 0, "")
		pdf.CellFormat(colMult, 6, fmt.Sprintf("%d", it.QtdMultiplo), "", 0, "R", false, 0, "")
		pdf.CellFormat(colQtd, 6, fmt.Sprintf("%d", it.Qtd), "", 0, "R", false, 0, "")
		pdf.CellFormat(colPreco, 6, it.Preco.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colSub, 6, sub.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 8, "Total: R$ "+total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: gravar arquivo: %w", err)
	}
	return filePath, nil
}
