package builtin

import (
	"testing"

	"tshell/internal/eval"
)

// S1: `list:of 1 2 3 | list:len` pipes a freshly built list into list:len
// and yields its length, 3, with the list's own element type Integer.
func TestScenario_S1ListRoundTrip(t *testing.T) {
	env := eval.NewRootScope()
	env.Declare("list:of", eval.NewCommand(ListOf()))
	env.Declare("list:len", eval.NewCommand(ListLen()))

	job := eval.NewJob(
		eval.Invoke(eval.Ident("list:of"),
			eval.Pos(eval.Lit(eval.NewIntegerFromInt64(1))),
			eval.Pos(eval.Lit(eval.NewIntegerFromInt64(2))),
			eval.Pos(eval.Lit(eval.NewIntegerFromInt64(3))),
		),
		eval.Invoke(eval.Ident("list:len")),
	)

	sender, receiver := eval.NewValueChannel()
	if err := eval.RunJob(env, job, eval.EmptyChannel(), sender); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := v.AsInteger()
	if !ok || i.Int64() != 3 {
		t.Fatalf("expected length 3, got %v", v)
	}
}

// S6: `list integer` invokes list's own "__call_type__" method, yielding a
// Type value whose textual form is "list of integer"; calling ":new" on
// that Type builds an empty List(Integer).
func TestScenario_S6ListTypeAsConstructor(t *testing.T) {
	RegisterTypeMethods()

	env := eval.NewRootScope()
	env.Declare("list", eval.NewType(eval.ListType(eval.TAny)))
	env.Declare("integer", eval.NewType(eval.TInteger))

	parameterized := eval.Invoke(eval.Ident("list"), eval.Pos(eval.Ident("integer")))
	typeVal, err := eval.EvalToValue(env, parameterized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	listType, ok := typeVal.AsType()
	if !ok {
		t.Fatalf("expected a type value, got %v", typeVal.Kind())
	}
	if listType.String() != "list of integer" {
		t.Fatalf("expected %q, got %q", "list of integer", listType.String())
	}

	ctor := eval.Invoke(eval.GetItem{Base: eval.Lit(typeVal), Key: eval.Lit(eval.NewString("new"))})
	built, err := eval.EvalToValue(env, ctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := built.AsList()
	if !ok {
		t.Fatalf("expected a list, got %v", built.Kind())
	}
	if list.Len() != 0 {
		t.Fatalf("expected an empty list, got %d items", list.Len())
	}
	if list.Elem != eval.TInteger {
		t.Fatalf("expected element type Integer, got %v", list.Elem)
	}
}

// S8: in `{ loop { break }; echo done }`, the break inside the loop body
// must stop the enclosing closure before its trailing job runs.
func TestScenario_S8PipelineCancellation(t *testing.T) {
	root := eval.NewRootScope()
	root.Declare("loop", eval.NewCommand(Loop()))
	root.Declare("break", eval.NewCommand(Break()))

	ranTrailingJob := false
	root.Declare("mark-ran", eval.NewCommand(eval.NewNative("mark-ran", false,
		func(ctx *eval.ExecutionContext) error {
			ranTrailingJob = true
			return ctx.Output.Send(eval.NewEmpty())
		}, "mark-ran", "mark-ran", "")))

	breakingBody := eval.NewClosure("body", root, nil, []*eval.Job{
		eval.NewJob(eval.Invoke(eval.Ident("break"))),
	})

	outer := eval.NewClosure("outer", root, nil, []*eval.Job{
		eval.NewJob(eval.Invoke(eval.Ident("loop"), eval.Pos(eval.Lit(eval.NewCommand(breakingBody))))),
		eval.NewJob(eval.Invoke(eval.Ident("mark-ran"))),
	})

	sender, _ := eval.NewValueChannel()
	ctx := &eval.ExecutionContext{Env: root, Input: eval.EmptyChannel(), Output: sender}
	if err := outer.Invoke(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranTrailingJob {
		t.Fatal("expected the trailing job after the broken loop to be skipped")
	}
}
