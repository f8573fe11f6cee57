package backend

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const barWidth = 20

// ConsolePresenter displays the discovery progress as a bar on a single terminal line.
type ConsolePresenter struct {
	mu       sync.Mutex
	out      io.Writer
	open     bool
	bar      *color.Color
	errTitle *color.Color
}

// NewConsolePresenter creates a presenter writing to out.
func NewConsolePresenter(out io.Writer, noColor bool) *ConsolePresenter {
	p := &ConsolePresenter{
		out:      out,
		bar:      color.New(color.FgCyan),
		errTitle: color.New(color.FgRed).Add(color.Bold),
	}

	if noColor {
		p.bar.DisableColor()
		p.errTitle.DisableColor()
	}

	return p
}

// Progress redraws the progress line.
func (p *ConsolePresenter) Progress(message string, fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * barWidth)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)

	fmt.Fprintf(p.out, "\r%s %3.0f%% %-40s", p.bar.Sprintf("[%s]", bar), fraction*100, message)
	p.open = true
}

// Error prints the title and the message of a terminal error.
func (p *ConsolePresenter) Error(title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	fmt.Fprintln(p.out, p.errTitle.Sprint(title))
	fmt.Fprintln(p.out, message)
}

// Close ends the progress line.
func (p *ConsolePresenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
}

func (p *ConsolePresenter) endLine() {
	if !p.open {
		return
	}

	fmt.Fprintln(p.out)
	p.open = false
}
