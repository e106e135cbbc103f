package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxLabelLen bounds label values in bytes; longer values are truncated
const MaxLabelLen = 64

// Label is an atomic short string, e.g. the current app phase
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncating to MaxLabelLen on a rune boundary
func (l *Label) Store(val string) {
	if len(val) > MaxLabelLen {
		cut := MaxLabelLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	l.ptr.Store(&val)
}

// Load returns the label or "" when never set
func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
