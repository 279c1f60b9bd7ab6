// Package csvimport parses supplier product spreadsheets exported as CSV.
// Real-world exports are messy: BOM prefixes, semicolon delimiters from
// pt-BR Excel, comma decimals and stray blank lines all show up. The parser
// normalizes what it can and leaves semantic validation (page ranges,
// required refs) to the product service.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"catalogo/internal/dto"
)

// ErrColunasFaltando is returned when the header lacks a required column.
var ErrColunasFaltando = errors.New("planilha sem as colunas obrigatorias (pagina, ref, nome)")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Column header aliases accepted for each field, lowercase.
var headerAliases = map[string][]string{
	"pagina":       {"pagina", "página", "page", "pag"},
	"ref":          {"ref", "referencia", "referência", "codigo", "código", "sku"},
	"nome":         {"nome", "descricao", "descrição", "produto", "name"},
	"qtd_multiplo": {"qtd_multiplo", "multiplo", "múltiplo", "caixa", "pack"},
	"preco":        {"preco", "preço", "valor", "price"},
}

// Parse reads a whole CSV export and returns the product rows it could make
// sense of. Rows missing required values or with unparsable numbers are
// dropped and counted in ignoradas; a missing required column is a hard
// error for the whole file.
func Parse(data []byte) (rows []dto.ProdutoRow, ignoradas int, err error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("lendo cabecalho do CSV: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, 0, err
	}

	rows = make([]dto.ProdutoRow, 0, 64)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ignoradas++
			continue
		}
		if isBlank(record) {
			continue
		}

		row, ok := parseRow(record, cols)
		if !ok {
			ignoradas++
			continue
		}
		rows = append(rows, row)
	}
	return rows, ignoradas, nil
}

// detectDelimiter picks ';' when the first line carries more semicolons than
// commas, which is what pt-BR Excel exports look like.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// mapHeader resolves each known field to its column index via the alias
// table. pagina, ref and nome are mandatory.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(headerAliases))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range headerAliases {
			if _, seen := cols[field]; seen {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[field] = i
					break
				}
			}
		}
	}
	for _, required := range []string{"pagina", "ref", "nome"} {
		if _, ok := cols[required]; !ok {
			return nil, ErrColunasFaltando
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int) (dto.ProdutoRow, bool) {
	get := func(field string) string {
		idx, ok := cols[field]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	pagina, err := strconv.Atoi(get("pagina"))
	if err != nil || pagina < 1 {
		return dto.ProdutoRow{}, false
	}
	ref := get("ref")
	nome := get("nome")
	if ref == "" || nome == "" {
		return dto.ProdutoRow{}, false
	}

	multiplo := 1
	if raw := get("qtd_multiplo"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			multiplo = v
		}
	}

	preco := decimal.Zero
	if raw := get("preco"); raw != "" {
		if v, err := parsePreco(raw); err == nil && !v.IsNegative() {
			preco = v
		}
	}

	return dto.ProdutoRow{
		Pagina:      pagina,
		Ref:         ref,
		Nome:        nome,
		QtdMultiplo: multiplo,
		Preco:       preco,
	}, true
}

// parsePreco accepts both "1234.56" and pt-BR "1.234,56" notations.
func parsePreco(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "R$"))
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ",") {
		// Comma decimal: dots are thousands separators.
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return decimal.NewFromString(raw)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
