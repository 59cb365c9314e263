// Package printer is the process-wide error funnel and value renderer: the
// single place a pipeline result or a top-level error reaches the
// terminal. Grounded on pkg/lib/exit.go's Exit(err) funnel, generalized from
// a print-and-os.Exit(1) helper into a reusable Printer so the REPL can keep
// running after reporting an error instead of exiting the process.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"tshell/internal/eval"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
)

// Printer renders Values and errors to an output stream.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New builds a Printer writing values to out and errors to errW.
func New(out, errW io.Writer) *Printer {
	return &Printer{out: out, err: errW}
}

// Stderr builds a Printer writing both values and errors to os.Stdout and
// os.Stderr respectively, the pairing cmd/tshell uses for interactive use.
func Stderr() *Printer {
	return New(os.Stdout, os.Stderr)
}

// Error reports err, the same funnel pkg/lib/exit.go's Exit provided, but
// without terminating the process: a REPL calls this once per failed
// command and keeps reading the next line.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.err, errorStyle.Render("error:"), err)
}

// Fatal reports err and terminates the process with exit code 1, for use
// at cmd/tshell's outermost boundary (a malformed config, a failed
// bootstrap) where there is no REPL loop to keep running.
func (p *Printer) Fatal(err error) {
	p.Error(err)
	os.Exit(1)
}

// Value renders v to the output stream: Empty prints nothing; tables and
// table streams (drained first) get a column-aligned rendering under a
// styled header row; every other kind falls back to Value.String.
func (p *Printer) Value(v eval.Value) error {
	if v.Kind() == eval.KindEmpty {
		return nil
	}
	if t, ok := v.AsTable(); ok {
		fmt.Fprintln(p.out, renderTable(t.Columns, t.Rows))
		return nil
	}
	if r, ok := v.AsTableStream(); ok {
		return p.streamTable(r)
	}
	fmt.Fprintln(p.out, v.String())
	return nil
}

func (p *Printer) streamTable(r eval.RowReceiver) error {
	var rows []eval.Row
	for {
		row, err := r.Recv()
		if err == eval.ErrEndOfStream {
			break
		}
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(p.out, renderTable(r.Columns(), rows))
	return nil
}

func renderTable(columns []eval.ColumnType, rows []eval.Row) string {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c.Name)
	}
	cellText := make([][]string, len(rows))
	for i, row := range rows {
		cellText[i] = make([]string, len(columns))
		for j := range columns {
			text := ""
			if j < len(row) {
				text = row[j].String()
			}
			cellText[i][j] = text
			if len(text) > widths[j] {
				widths[j] = len(text)
			}
		}
	}

	var b []byte
	for i, c := range columns {
		b = append(b, []byte(headerStyle.Render(pad(c.Name, widths[i])))...)
		if i < len(columns)-1 {
			b = append(b, ' ', ' ')
		}
	}
	b = append(b, '\n')
	for _, row := range cellText {
		for i, text := range row {
			b = append(b, []byte(pad(text, widths[i]))...)
			if i < len(row)-1 {
				b = append(b, ' ', ' ')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
