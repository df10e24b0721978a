// Package docxtest builds small WordprocessingML packages and OLE compound
// files for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"unicode/utf16"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// DocumentXML wraps body in a w:document element.
func DocumentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>` + body + `</w:body>
</w:document>`
}

// Parts returns the parts of a minimal package whose body is body.
func Parts(body string) map[string]string {
	return map[string]string{
		"[Content_Types].xml": contentTypes,
		"_rels/.rels":         packageRels,
		"word/document.xml":   DocumentXML(body),
	}
}

// Zip encodes parts as a ZIP archive, writing entries in name order.
func Zip(tb testing.TB, parts map[string]string) []byte {
	tb.Helper()

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			tb.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			tb.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("failed to close ZIP writer: %v", err)
	}
	return buf.Bytes()
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Write writes a minimal package with the given body to dir/name.
func Write(tb testing.TB, dir, name, body string) string {
	tb.Helper()
	return WriteFile(tb, dir, name, Zip(tb, Parts(body)))
}

const (
	sectorSize = 512
	dirEntry   = 128
	freeSect   = 0xFFFFFFFF
	endOfChain = 0xFFFFFFFE
	fatSect    = 0xFFFFFFFD
	noStream   = 0xFFFFFFFF
)

// OLE builds a version 3 compound file with one FAT sector and one directory
// sector holding a root entry and up to three empty streams.
func OLE(tb testing.TB, streams ...string) []byte {
	tb.Helper()

	if len(streams) > sectorSize/dirEntry-1 {
		tb.Fatalf("at most %d streams fit in one directory sector", sectorSize/dirEntry-1)
	}

	le := binary.LittleEndian
	buf := make([]byte, 3*sectorSize)

	h := buf[:sectorSize]
	copy(h, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	le.PutUint16(h[24:], 0x003E)
	le.PutUint16(h[26:], 0x0003)
	le.PutUint16(h[28:], 0xFFFE)
	le.PutUint16(h[30:], 9)
	le.PutUint16(h[32:], 6)
	le.PutUint32(h[44:], 1)
	le.PutUint32(h[48:], 1)
	le.PutUint32(h[56:], 0x1000)
	le.PutUint32(h[60:], endOfChain)
	le.PutUint32(h[68:], endOfChain)
	le.PutUint32(h[76:], 0)
	for i := 1; i < 109; i++ {
		le.PutUint32(h[76+4*i:], freeSect)
	}

	fat := buf[sectorSize : 2*sectorSize]
	for i := 0; i < sectorSize/4; i++ {
		le.PutUint32(fat[4*i:], freeSect)
	}
	le.PutUint32(fat[0:], fatSect)
	le.PutUint32(fat[4:], endOfChain)

	dir := buf[2*sectorSize:]
	for i := 0; i < sectorSize/dirEntry; i++ {
		e := dir[i*dirEntry : (i+1)*dirEntry]
		le.PutUint32(e[68:], noStream)
		le.PutUint32(e[72:], noStream)
		le.PutUint32(e[76:], noStream)
	}

	child := uint32(noStream)
	if len(streams) > 0 {
		child = 1
	}
	putEntry(dir[:dirEntry], "Root Entry", 5, child)

	for i, name := range streams {
		e := dir[(i+1)*dirEntry : (i+2)*dirEntry]
		putEntry(e, name, 2, noStream)
		if i+1 < len(streams) {
			le.PutUint32(e[72:], uint32(i+2))
		}
	}

	return buf
}

func putEntry(e []byte, name string, objType byte, child uint32) {
	le := binary.LittleEndian

	units := utf16.Encode([]rune(name))
	for i, u := range units {
		le.PutUint16(e[2*i:], u)
	}
	le.PutUint16(e[64:], uint16(2*(len(units)+1)))
	e[66] = objType
	e[67] = 1
	le.PutUint32(e[76:], child)
	le.PutUint32(e[116:], endOfChain)
}
