package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/presentation/graph"
	"github.com/aretw0/marquee/internal/presentation/tui"
	"github.com/aretw0/marquee/pkg/domain"
)

// Inspect formats.
const (
	FormatPretty   = "pretty"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// Validate loads and checks the show at path.
func Validate(path string) (*domain.SceneGraph, error) {
	eng, err := marquee.Open(path)
	if err != nil {
		return nil, err
	}
	return eng.Graph(), nil
}

// Inspect describes the show at path. Pretty output is markdown rendered
// for the terminal; it falls back to plain text when w is not a TTY.
func Inspect(path, format string, w io.Writer) error {
	g, err := Validate(path)
	if err != nil {
		return err
	}

	var out string
	switch format {
	case FormatMermaid:
		out, err = graph.GenerateMermaid(g, nil)
	case FormatMarkdown:
		out, err = tui.Report(g)
	case FormatPretty, "":
		var md string
		if md, err = tui.Report(g); err != nil {
			return err
		}
		var render func(string) (string, error)
		if render, err = tui.NewRenderer(!isTerminal(w), 100); err != nil {
			return err
		}
		out, err = render(md)
	default:
		return fmt.Errorf("unknown format %q: supported: pretty, markdown, mermaid", format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
