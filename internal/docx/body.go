package docx

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/hanpama/docxcat/internal/document"
)

// XML element structures. Element names are matched by local name, so both
// transitional and strict WordprocessingML namespaces decode.

type relationshipsXML struct {
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type documentXML struct {
	Body bodyXML `xml:"body"`
}

// bodyXML keeps only direct children of w:body; paragraphs nested in tables,
// content controls or text boxes are not body paragraphs.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
	Tables     []tableXML     `xml:"tbl"`
}

type paragraphXML struct {
	Nodes []nodeXML `xml:",any"`
}

// text concatenates the runs of the paragraph, including runs inside
// hyperlinks.
func (p *paragraphXML) text() string {
	var sb strings.Builder
	for i := range p.Nodes {
		n := &p.Nodes[i]
		switch n.XMLName.Local {
		case "r":
			writeRun(&sb, n)
		case "hyperlink":
			for j := range n.Nodes {
				if n.Nodes[j].XMLName.Local == "r" {
					writeRun(&sb, &n.Nodes[j])
				}
			}
		}
	}
	return sb.String()
}

func writeRun(sb *strings.Builder, run *nodeXML) {
	for i := range run.Nodes {
		n := &run.Nodes[i]
		switch n.XMLName.Local {
		case "t":
			sb.WriteString(n.Text)
		case "tab", "ptab":
			sb.WriteByte('\t')
		case "br":
			// page and column breaks carry no text
			if t := n.attr("type"); t == "" || t == "textWrapping" {
				sb.WriteByte('\n')
			}
		case "cr":
			sb.WriteByte('\n')
		case "noBreakHyphen":
			sb.WriteByte('-')
		}
	}
}

// nodeXML is a generic element that preserves child order.
type nodeXML struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []nodeXML  `xml:",any"`
}

func (n *nodeXML) attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// maxGridColumns is the widest table Word produces, used when a table
// declares no grid.
const maxGridColumns = 63

type tableXML struct {
	Grid tableGridXML `xml:"tblGrid"`
	Rows []rowXML     `xml:"tr"`
}

type tableGridXML struct {
	Cols []struct{} `xml:"gridCol"`
}

// width is the number of grid columns a row may fill.
func (t *tableXML) width() int {
	if n := len(t.Grid.Cols); n > 0 {
		return n
	}
	return maxGridColumns
}

type rowXML struct {
	Cells []cellXML `xml:"tc"`
}

type cellXML struct {
	Properties cellPropertiesXML `xml:"tcPr"`
	Paragraphs []paragraphXML    `xml:"p"`
}

type cellPropertiesXML struct {
	GridSpan *valueXML `xml:"gridSpan"`
	VMerge   *valueXML `xml:"vMerge"`
}

type valueXML struct {
	Val string `xml:"val,attr"`
}

// gridSpan returns the number of grid columns the cell covers.
func (p *cellPropertiesXML) gridSpan() int {
	if p.GridSpan == nil {
		return 1
	}
	n, err := strconv.Atoi(p.GridSpan.Val)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// continuesMerge reports whether the cell continues a vertical merge
// started in a row above. A bare w:vMerge means "continue".
func (p *cellPropertiesXML) continuesMerge() bool {
	return p.VMerge != nil && p.VMerge.Val != "restart"
}

func (c *cellXML) text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for i := range c.Paragraphs {
		parts = append(parts, c.Paragraphs[i].text())
	}
	return strings.Join(parts, "\n")
}

// table lays every row out on the table grid. A cell spanning n grid
// columns is repeated n times, up to the grid width, and a vertically
// merged continuation cell takes the text of the cell above it.
func (t *tableXML) table() document.Table {
	table := document.Table{
		Rows: make([]document.Row, 0, len(t.Rows)),
	}

	width := t.width()
	var above []string
	for _, tr := range t.Rows {
		var grid []string
		for i := range tr.Cells {
			tc := &tr.Cells[i]
			// a span never runs past the grid; every cell keeps one column
			span := min(tc.Properties.gridSpan(), max(width-len(grid), 1))
			text := tc.text()
			for s := 0; s < span; s++ {
				col := len(grid)
				if tc.Properties.continuesMerge() && col < len(above) {
					grid = append(grid, above[col])
					continue
				}
				grid = append(grid, text)
			}
		}

		row := document.Row{Cells: make([]document.Cell, len(grid))}
		for i, text := range grid {
			row.Cells[i] = document.Cell{Text: text}
		}
		table.Rows = append(table.Rows, row)
		above = grid
	}

	return table
}
