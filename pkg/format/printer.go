package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/leaplang/pkg/token"
)

const indentSize = 2

// Printer accumulates formatted source with indentation.
type Printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool

	// comments still waiting to be printed, in source order.
	comments []token.Token
}

func newPrinter(comments []token.Token) *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
		comments:    comments,
	}
}

// String returns the formatted output. Empty programs format to "".
func (p *Printer) String() string {
	out := strings.TrimRight(p.output.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// flushComments prints every pending comment that starts before offset.
// A negative offset flushes all of them.
func (p *Printer) flushComments(offset int) {
	for len(p.comments) > 0 {
		c := p.comments[0]
		if offset >= 0 && c.Pos.Offset >= offset {
			return
		}
		if !p.atLineStart {
			p.writeln()
		}
		p.write(strings.TrimRight(c.Lexeme, "\r"))
		p.writeln()
		p.comments = p.comments[1:]
	}
}
