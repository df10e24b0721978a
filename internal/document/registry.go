package document

import (
	"sort"
	"sync"
)

// OpenFunc parses the file at path into a Document.
type OpenFunc func(path string) (*Document, error)

// Format is a document reader that can be plugged into the registry.
type Format struct {
	Name string
	Open OpenFunc
}

var (
	formatsMu sync.RWMutex
	formats   = make(map[string]Format)
)

// RegisterFormat makes a reader available by name. It is meant to be called
// from the init function of the reader package and panics if the name is
// registered twice or the format has no Open function.
func RegisterFormat(f Format) {
	formatsMu.Lock()
	defer formatsMu.Unlock()

	if f.Open == nil {
		panic("document: RegisterFormat " + f.Name + " with nil Open")
	}
	if _, dup := formats[f.Name]; dup {
		panic("document: RegisterFormat called twice for " + f.Name)
	}
	formats[f.Name] = f
}

// LookupFormat returns the reader registered under name.
func LookupFormat(name string) (Format, bool) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()

	f, ok := formats[name]
	return f, ok
}

// Formats returns the sorted names of the registered readers.
func Formats() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()

	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
