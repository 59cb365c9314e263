package builtin

import (
	"testing"

	"tshell/internal/eval"
)

func TestSysPs_EmitsTableWithExpectedColumns(t *testing.T) {
	sender, receiver := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{
		Env:    eval.NewRootScope(),
		Input:  eval.EmptyChannel(),
		Output: sender,
	}
	if err := SysPs().Invoke(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, ok := v.AsTable()
	if !ok {
		t.Fatalf("expected a table, got %v", v.Kind())
	}
	want := []string{"pid", "name", "status", "memory_percent"}
	if len(table.Columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(table.Columns))
	}
	for i, name := range want {
		if table.Columns[i].Name != name {
			t.Fatalf("expected column %d to be %q, got %q", i, name, table.Columns[i].Name)
		}
	}
	// The current process must always appear somewhere in the listing.
	if table.Len() == 0 {
		t.Fatal("expected at least one running process")
	}
}
