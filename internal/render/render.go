package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hanpama/docxcat/internal/document"
)

const (
	separatorWidth = 80
	cellSeparator  = " | "

	headerLabel = "CONTEÚDO DO ARQUIVO: "
	tablesLabel = "TABELAS ENCONTRADAS:"
	footerLabel = "FIM DO ARQUIVO"
)

var separator = strings.Repeat("=", separatorWidth)

// printer writes lines straight to w and keeps the first write error; every
// later call is a no-op.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) println(a ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, a...)
}

func (p *printer) banner(label string) {
	p.println(separator)
	p.println(label)
	p.println(separator)
}

// RenderText writes the paragraphs and tables of doc between the fixed
// banner lines. name is printed in the header, usually the file's base name.
func RenderText(doc *document.Document, name string, w io.Writer) error {
	p := &printer{w: w}

	p.banner(headerLabel + name)
	p.println()

	for _, para := range doc.Paragraphs {
		renderParagraph(p, para)
	}

	if len(doc.Tables) > 0 {
		p.println()
		p.banner(tablesLabel)

		for i, table := range doc.Tables {
			renderTable(p, i+1, table)
		}
	}

	p.println()
	p.banner(footerLabel)

	if p.err != nil {
		return fmt.Errorf("error writing output: %w", p.err)
	}
	return nil
}

// renderParagraph prints the original text; blank paragraphs print nothing.
func renderParagraph(p *printer, para document.Paragraph) {
	if strings.TrimSpace(para.Text) == "" {
		return
	}
	p.println(para.Text)
}

func renderTable(p *printer, number int, table document.Table) {
	p.println()
	p.println(fmt.Sprintf("--- Tabela %d ---", number))

	for _, row := range table.Rows {
		p.println(RowText(row))
	}
}

// RowText joins the trimmed texts of the row's cells.
func RowText(row document.Row) string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = strings.TrimSpace(cell.Text)
	}
	return strings.Join(cells, cellSeparator)
}
