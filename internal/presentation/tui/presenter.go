// Package tui renders conversation output for terminal hosts, using glamour
// for markdown node content.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// Presenter implements ports.Presenter for terminals. Bot messages are
// treated as markdown; user echoes and buttons are printed plain.
type Presenter struct {
	out    io.Writer
	render func(string) (string, error)
}

// NewPresenter creates a terminal presenter writing to out.
func NewPresenter(out io.Writer) *Presenter {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Detect light/dark background
	)

	render := func(s string) (string, error) { return s, nil }
	if err == nil {
		render = r.Render
	}
	return &Presenter{out: out, render: render}
}

// Render displays one transcript message.
func (p *Presenter) Render(msg domain.Message) error {
	if msg.Sender == domain.SenderUser {
		fmt.Fprintf(p.out, "you: %s\n", msg.Text)
		return nil
	}

	output := msg.Text
	if rendered, err := p.render(msg.Text); err == nil {
		output = rendered
	}
	fmt.Fprintln(p.out, strings.TrimSpace(output))

	for _, btn := range msg.Buttons {
		marker := ""
		if btn.Style == domain.ButtonShare {
			marker = " [share]"
		}
		fmt.Fprintf(p.out, "  %d) %s%s\n", btn.Index+1, btn.Label, marker)
	}
	return nil
}

// RenderQuiz displays the drag-drop board and its commands.
func (p *Presenter) RenderQuiz(prompt domain.QuizPrompt, onComplete func(correct bool)) error {
	fmt.Fprintln(p.out, "Match each item to a target:")
	for _, it := range prompt.Items {
		fmt.Fprintf(p.out, "  item   %-8s %s\n", it.ID, it.Text)
	}
	for _, tgt := range prompt.Targets {
		fmt.Fprintf(p.out, "  target %-8s %s\n", tgt.ID, tgt.Label)
	}
	fmt.Fprintln(p.out, `Commands: "place <item> <target>", "check".`)
	return nil
}
