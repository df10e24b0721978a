// Package docxcat prints the text content of Word (.docx) documents.
//
// Paragraph text is printed in document order, blank paragraphs skipped,
// followed by every top-level table with one line per row and the trimmed
// cell texts joined by " | ". The output is bracketed by fixed banner lines.
//
// # Example Usage
//
//	if err := docxcat.Extract("report.docx", os.Stdout); err != nil {
//		log.Fatal(err)
//	}
//
// # Reader availability
//
// The DOCX reader registers itself with the package unless the program is
// built with the nodocx build tag. Extract reports ErrDependencyUnavailable
// before touching the file when no reader is registered.
package docxcat

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/hanpama/docxcat/internal/document"
	"github.com/hanpama/docxcat/internal/render"
)

const formatName = "docx"

// ErrDependencyUnavailable is returned when the binary carries no DOCX reader.
var ErrDependencyUnavailable = errors.New("DOCX reader is not available in this build")

// ReadError wraps any failure to open, parse or print a document.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

var lookupFormat = document.LookupFormat

// Available reports whether a DOCX reader is compiled into the program.
func Available() bool {
	_, ok := lookupFormat(formatName)
	return ok
}

// Extract parses the document at path and writes its paragraphs and tables
// to out.
//
// Output is not buffered: when printing fails halfway, whatever was already
// written stays written.
func Extract(path string, out io.Writer) error {
	f, ok := lookupFormat(formatName)
	if !ok {
		return ErrDependencyUnavailable
	}

	log.Debug().Str("path", path).Msg("reading document")

	doc, err := f.Open(path)
	if err != nil {
		return &ReadError{Path: path, Err: err}
	}

	if err := render.RenderText(doc, filepath.Base(path), out); err != nil {
		return &ReadError{Path: path, Err: err}
	}

	return nil
}
