package builtin

import (
	"bytes"
	"testing"

	"tshell/internal/eval"
)

func TestVal_ArgumentBeatsInput(t *testing.T) {
	sender, receiver := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{
		Env:       eval.NewRootScope(),
		Input:     eval.EmptyChannel(),
		Output:    sender,
		Arguments: []eval.CallArgument{{Value: eval.NewIntegerFromInt64(9)}},
	}
	if err := Val().Invoke(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, _ := v.AsInteger()
	if i.Int64() != 9 {
		t.Fatalf("expected 9, got %v", v)
	}
}

func TestVal_PassesInputThroughWhenNoArgument(t *testing.T) {
	inSender, inReceiver := eval.NewValueChannel()
	if err := inSender.Send(eval.NewString("from upstream")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sender, receiver := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{
		Env:    eval.NewRootScope(),
		Input:  inReceiver,
		Output: sender,
	}
	if err := Val().Invoke(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := v.AsString()
	if s != "from upstream" {
		t.Fatalf("expected passthrough value, got %v", v)
	}
}

func TestEcho_PrintsSpaceSeparatedArguments(t *testing.T) {
	var buf bytes.Buffer
	sender, receiver := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{
		Env:    eval.NewRootScope(),
		Input:  eval.EmptyChannel(),
		Output: sender,
		Arguments: []eval.CallArgument{
			{Value: eval.NewString("hello")},
			{Value: eval.NewIntegerFromInt64(42)},
		},
	}
	if err := Echo(&buf).Invoke(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "hello 42\n" {
		t.Fatalf("expected %q, got %q", "hello 42\n", buf.String())
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != eval.KindEmpty {
		t.Fatalf("expected echo to emit Empty, got %v", v.Kind())
	}
}

func TestListOf_BuildsListFromArguments(t *testing.T) {
	sender, receiver := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{
		Env:    eval.NewRootScope(),
		Input:  eval.EmptyChannel(),
		Output: sender,
		Arguments: []eval.CallArgument{
			{Value: eval.NewIntegerFromInt64(1)},
			{Value: eval.NewIntegerFromInt64(2)},
			{Value: eval.NewIntegerFromInt64(3)},
		},
	}
	if err := ListOf().Invoke(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := v.AsList()
	if !ok {
		t.Fatalf("expected a list, got %v", v.Kind())
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", l.Len())
	}
	if l.Elem != eval.TInteger {
		t.Fatalf("expected homogeneous Integer arguments to yield element type Integer, got %v", l.Elem)
	}
}

// S2: mixed-type arguments yield a list whose element type is Any, rather
// than silently taking on the first argument's type.
func TestListOf_MixedArgumentTypesYieldAnyElementType(t *testing.T) {
	sender, receiver := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{
		Env:    eval.NewRootScope(),
		Input:  eval.EmptyChannel(),
		Output: sender,
		Arguments: []eval.CallArgument{
			{Value: eval.NewIntegerFromInt64(1)},
			{Value: eval.NewString("a")},
		},
	}
	if err := ListOf().Invoke(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := v.AsList()
	if !ok {
		t.Fatalf("expected a list, got %v", v.Kind())
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", l.Len())
	}
	if l.Elem != eval.TAny {
		t.Fatalf("expected mixed-type arguments to yield element type Any, got %v", l.Elem)
	}
}

func TestListLen_ReportsLength(t *testing.T) {
	list := eval.NewList(eval.NewListData(eval.TInteger, []eval.Value{
		eval.NewIntegerFromInt64(1), eval.NewIntegerFromInt64(2),
	}))
	sender, receiver := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{
		Env:       eval.NewRootScope(),
		Input:     eval.EmptyChannel(),
		Output:    sender,
		Arguments: []eval.CallArgument{{Value: list}},
	}
	if err := ListLen().Invoke(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, _ := v.AsInteger()
	if i.Int64() != 2 {
		t.Fatalf("expected 2, got %v", v)
	}
}

func TestListLen_RejectsNonListArgument(t *testing.T) {
	sender, _ := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{
		Env:       eval.NewRootScope(),
		Input:     eval.EmptyChannel(),
		Output:    sender,
		Arguments: []eval.CallArgument{{Value: eval.NewIntegerFromInt64(1)}},
	}
	err := ListLen().Invoke(ctx)
	if err == nil {
		t.Fatal("expected an error for a non-list argument")
	}
}
