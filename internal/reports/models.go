package reports

// Document is a printable plan: a title followed by headed sections of text
// lines, optionally rendered as tables.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

type Section struct {
	Heading string
	Lines   []string
	Table   *Table
}

// Table is a simple grid. Widths are in millimetres and must match Header.
type Table struct {
	Header []string
	Widths []float64
	Rows   [][]string
}
