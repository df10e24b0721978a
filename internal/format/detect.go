// Package format classifies office document containers from their content.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
)

// Kind is the container type of an input file.
type Kind int

const (
	// Unknown indicates an unrecognized container.
	Unknown Kind = iota
	// DOCX is a ZIP package holding a WordprocessingML document.
	DOCX
	// ZIP is any other ZIP archive.
	ZIP
	// EncryptedOOXML is a password-protected Office Open XML package, which
	// Office stores inside an OLE compound file.
	EncryptedOOXML
	// LegacyDoc is a Word 97-2003 binary document.
	LegacyDoc
	// OLE is any other OLE compound file.
	OLE
)

var (
	zipMagic      = []byte("PK\x03\x04")
	emptyZipMagic = []byte("PK\x05\x06")
	oleMagic      = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

func (k Kind) String() string {
	switch k {
	case DOCX:
		return "DOCX"
	case ZIP:
		return "ZIP"
	case EncryptedOOXML:
		return "encrypted OOXML"
	case LegacyDoc:
		return "Word 97-2003"
	case OLE:
		return "OLE"
	default:
		return "unknown"
	}
}

// Container is the result of inspecting an input file. Zip is set for the
// DOCX and ZIP kinds so callers can reuse the parsed archive index.
type Container struct {
	Kind Kind
	Zip  *zip.Reader
}

// Detect inspects the content of r to determine its container kind.
func Detect(r io.ReaderAt, size int64) (Kind, error) {
	c, err := Inspect(r, size)
	if err != nil {
		return Unknown, err
	}
	return c.Kind, nil
}

// Inspect classifies r from its magic bytes and opens ZIP archives once.
func Inspect(r io.ReaderAt, size int64) (*Container, error) {
	magic := make([]byte, len(oleMagic))
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return nil, err
	}
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, zipMagic), bytes.HasPrefix(magic, emptyZipMagic):
		return inspectZIP(r, size)
	case bytes.Equal(magic, oleMagic):
		kind, err := detectOLE(r)
		if err != nil {
			return nil, err
		}
		return &Container{Kind: kind}, nil
	}
	return &Container{Kind: Unknown}, nil
}

func inspectZIP(r io.ReaderAt, size int64) (*Container, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP container: %w", err)
	}

	c := &Container{Kind: ZIP, Zip: zr}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			c.Kind = DOCX
			break
		}
	}
	return c, nil
}

func detectOLE(r io.ReaderAt) (Kind, error) {
	doc, err := mscfb.New(r)
	if err != nil {
		return Unknown, fmt.Errorf("failed to open OLE container: %w", err)
	}

	kind := OLE
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptedPackage":
			return EncryptedOOXML, nil
		case "WordDocument":
			kind = LegacyDoc
		}
	}
	return kind, nil
}
