package statement

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// Filename is the name the statement is downloaded as.
const Filename = "fee_statement.pdf"

const title = "Meru Poly Fee Statement"

// Statement is the content of a fee statement.
type Statement struct {
	Student string
	Balance int
}

// Exporter renders fee statements as PDF documents.
type Exporter struct {
	compress bool
}

// NewExporter returns an Exporter. Uncompressed documents keep their text searchable.
func NewExporter(compress bool) *Exporter {
	return &Exporter{compress: compress}
}

// Render writes a one page A4 statement to w.
func (e *Exporter) Render(w io.Writer, st Statement) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	pdf.SetTitle(title, true)
	pdf.SetCreator("Meru Poly", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(20)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Student: %s", st.Student)))
	pdf.Ln(10)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Balance: Ksh %d", st.Balance)))

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "writing statement")
	}
	return nil
}
