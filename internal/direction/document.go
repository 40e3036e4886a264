package direction

import (
	"strings"
	"sync"

	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
)

// Document is the root element of a rendered page. Implementations must
// apply both attributes together.
type Document interface {
	SetRootAttributes(dir, lang string)
}

// ApplyDocumentDirection writes the dir and lang attributes for language
// onto doc. It is the only operation in this package with a side effect.
func ApplyDocumentDirection(doc Document, language string) {
	if doc == nil {
		return
	}
	doc.SetRootAttributes(i18n.GetDocumentDirection(language), documentLanguage(language))
}

// ApplyDocumentDirection writes the adapter's own direction and language onto doc.
func (a *Adapter) ApplyDocumentDirection(doc Document) {
	if doc == nil {
		return
	}
	doc.SetRootAttributes(string(a.direction), documentLanguage(a.language))
}

func documentLanguage(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return i18n.DefaultLanguage
	}
	return language
}

// Attributes is an in-memory Document. Readers never observe a dir without
// its matching lang.
type Attributes struct {
	mu   sync.RWMutex
	dir  string
	lang string
}

// SetRootAttributes implements Document.
func (a *Attributes) SetRootAttributes(dir, lang string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dir = dir
	a.lang = lang
}

// Get returns the current dir and lang values.
func (a *Attributes) Get() (dir, lang string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dir, a.lang
}
