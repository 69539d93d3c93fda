package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Sink renders each published message as one styled line on a terminal.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	prompt lipgloss.Style
	text   lipgloss.Style
}

func NewSink(w io.Writer) *Sink {
	r := lipgloss.NewRenderer(w)
	return &Sink{
		w:      w,
		prompt: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		text:   r.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

func (s *Sink) Publish(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintln(s.w, s.prompt.Render("»"), s.text.Render(text)); err != nil {
		return fmt.Errorf("writing to console: %w", err)
	}
	return nil
}
