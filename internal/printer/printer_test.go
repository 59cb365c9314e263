package printer

import (
	"bytes"
	"strings"
	"testing"

	"tshell/internal/eval"
)

func TestValue_EmptyPrintsNothing(t *testing.T) {
	var out, errW bytes.Buffer
	p := New(&out, &errW)
	if err := p.Value(eval.NewEmpty()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing printed for Empty, got %q", out.String())
	}
}

func TestValue_ScalarFallsBackToString(t *testing.T) {
	var out, errW bytes.Buffer
	p := New(&out, &errW)
	if err := p.Value(eval.NewString("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", out.String())
	}
}

func TestValue_TableRendersColumnsAndRows(t *testing.T) {
	var out, errW bytes.Buffer
	p := New(&out, &errW)

	columns := []eval.ColumnType{{Name: "name", Type: eval.TString}, {Name: "age", Type: eval.TInteger}}
	rows := []eval.Row{{eval.NewString("alice"), eval.NewIntegerFromInt64(30)}}
	table := eval.NewTable(eval.NewTableData(columns, rows))

	if err := p.Value(table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rendered := out.String()
	for _, want := range []string{"name", "age", "alice", "30"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected rendered table to contain %q, got %q", want, rendered)
		}
	}
}

func TestValue_TableStreamDrainsBeforeRendering(t *testing.T) {
	var out, errW bytes.Buffer
	p := New(&out, &errW)

	columns := []eval.ColumnType{{Name: "n", Type: eval.TInteger}}
	sender, receiver := eval.NewRowStream(columns)
	go func() {
		sender.Send(eval.Row{eval.NewIntegerFromInt64(1)})
		sender.Send(eval.Row{eval.NewIntegerFromInt64(2)})
		sender.Close()
	}()

	if err := p.Value(eval.NewTableStream(receiver)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "1") || !strings.Contains(rendered, "2") {
		t.Fatalf("expected both streamed rows rendered, got %q", rendered)
	}
}

func TestError_WritesToErrorStream(t *testing.T) {
	var out, errW bytes.Buffer
	p := New(&out, &errW)
	p.Error(errFixture)
	if out.Len() != 0 {
		t.Fatalf("expected nothing on the value stream, got %q", out.String())
	}
	if !strings.Contains(errW.String(), "boom") {
		t.Fatalf("expected the error message in stderr, got %q", errW.String())
	}
}

var errFixture = fixtureError("boom")

type fixtureError string

func (e fixtureError) Error() string { return string(e) }
