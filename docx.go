//go:build !nodocx

package docxcat

import (
	// registers the "docx" format
	_ "github.com/hanpama/docxcat/internal/docx"
)
