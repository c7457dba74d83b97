package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Sheet maps class names to styles.
type Sheet struct {
	mu      sync.RWMutex
	classes map[string]lipgloss.Style
}

// NewSheet creates an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{classes: make(map[string]lipgloss.Style)}
}

// DefaultSheet is the process-wide sheet renderers use unless given another.
var DefaultSheet = NewSheet()

// Set registers style for class, replacing an earlier one.
func (s *Sheet) Set(class string, style lipgloss.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[class] = style
}

// Get returns the style for class.
func (s *Sheet) Get(class string) (lipgloss.Style, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.classes[class]
	return st, ok
}

// Len returns the number of registered classes.
func (s *Sheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.classes)
}

// Reset drops every registered class.
func (s *Sheet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes = make(map[string]lipgloss.Style)
}

// CursorClass and WrapperClass are the class names the default styles target.
const (
	WrapperClass = "Typewriter__wrapper"
	CursorClass  = "Typewriter__cursor"
)

// DefaultStyles returns the built-in class styles: a blinking cursor.
func DefaultStyles() map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		CursorClass: lipgloss.NewStyle().
			Blink(true).
			Foreground(lipgloss.Color("252")),
	}
}

// AddStyles registers styles on sheet.
func AddStyles(sheet *Sheet, styles map[string]lipgloss.Style) {
	for class, st := range styles {
		sheet.Set(class, st)
	}
}
