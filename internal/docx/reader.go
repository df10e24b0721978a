// Package docx reads the paragraphs and tables of Office Open XML
// WordprocessingML (.docx) documents.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/hanpama/docxcat/internal/document"
	"github.com/hanpama/docxcat/internal/format"
)

const (
	packageRelsPart  = "_rels/.rels"
	defaultMainPart  = "word/document.xml"
	officeDocRelType = "/officeDocument"
)

// Reader provides access to DOCX document content
type Reader struct {
	zipReader *zip.Reader
	mainPart  string
}

// Open opens, parses and closes the DOCX file at filename.
func Open(filename string) (*document.Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	reader, err := NewReader(file, info.Size())
	if err != nil {
		return nil, err
	}
	return reader.Document()
}

// NewReader checks that r holds a WordprocessingML package and locates its
// main document part.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	container, err := format.Inspect(r, size)
	if err != nil {
		return nil, err
	}
	log.Debug().Stringer("kind", container.Kind).Msg("detected container")

	switch kind := container.Kind; kind {
	case format.DOCX, format.ZIP:
	case format.EncryptedOOXML:
		return nil, errors.New("password protected documents are not supported")
	case format.LegacyDoc:
		return nil, errors.New("legacy Word 97-2003 (.doc) documents are not supported")
	default:
		return nil, fmt.Errorf("file is not a DOCX package (detected %s content)", kind)
	}

	reader := &Reader{
		zipReader: container.Zip,
	}

	if err := reader.resolveMainPart(); err != nil {
		return nil, err
	}

	return reader, nil
}

// MainPart returns the name of the main document part inside the package.
func (r *Reader) MainPart() string {
	return r.mainPart
}

// resolveMainPart follows the package-level officeDocument relationship and
// falls back to word/document.xml when the package has no usable one.
func (r *Reader) resolveMainPart() error {
	r.mainPart = defaultMainPart

	var rels relationshipsXML
	if err := r.decodePart(packageRelsPart, &rels); err != nil {
		log.Debug().Err(err).Msg("package relationships unavailable")
	} else {
		for _, rel := range rels.Relationships {
			if strings.HasSuffix(rel.Type, officeDocRelType) && rel.TargetMode != "External" {
				r.mainPart = path.Clean(strings.TrimPrefix(rel.Target, "/"))
				break
			}
		}
	}

	if r.file(r.mainPart) == nil {
		return fmt.Errorf("main document part %s not found", r.mainPart)
	}
	log.Debug().Str("part", r.mainPart).Msg("resolved main document part")
	return nil
}

// Document decodes the main document part into a read-only Document.
func (r *Reader) Document() (*document.Document, error) {
	var doc documentXML
	if err := r.decodePart(r.mainPart, &doc); err != nil {
		return nil, err
	}

	result := &document.Document{
		Paragraphs: make([]document.Paragraph, 0, len(doc.Body.Paragraphs)),
		Tables:     make([]document.Table, 0, len(doc.Body.Tables)),
	}
	for i := range doc.Body.Paragraphs {
		result.Paragraphs = append(result.Paragraphs, document.Paragraph{
			Text: doc.Body.Paragraphs[i].text(),
		})
	}
	for i := range doc.Body.Tables {
		result.Tables = append(result.Tables, doc.Body.Tables[i].table())
	}

	log.Debug().
		Int("paragraphs", len(result.Paragraphs)).
		Int("tables", len(result.Tables)).
		Msg("parsed document body")

	return result, nil
}

func (r *Reader) file(name string) *zip.File {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// decodePart decodes an XML part. A leading byte-order mark selects UTF-16
// (or is dropped for UTF-8) before the XML declaration is read; other
// non-UTF-8 encodings come from the declaration.
func (r *Reader) decodePart(name string, v any) error {
	f := r.file(name)
	if f == nil {
		return fmt.Errorf("%s not found", name)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(transform.NewReader(rc, unicode.BOMOverride(transform.Nop)))
	decoder.CharsetReader = charsetReader
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// charsetReader leaves UTF-16 input alone since the byte-order mark has
// already been decoded to UTF-8 by the time the declaration is seen.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

func init() {
	document.RegisterFormat(document.Format{
		Name: "docx",
		Open: Open,
	})
}
