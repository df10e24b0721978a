package document

// Document is the read-only view of a parsed file: its body paragraphs and
// its top-level tables, both in document order.
type Document struct {
	Paragraphs []Paragraph
	Tables     []Table
}

// Paragraph represents a paragraph with text
type Paragraph struct {
	Text string
}

// Table represents a table as an ordered list of rows
type Table struct {
	Rows []Row
}

// Row is one table row. Cells are laid out on the table grid, so a cell
// spanning several grid columns appears once per column.
type Row struct {
	Cells []Cell
}

// Cell represents a table cell
type Cell struct {
	Text string
}
