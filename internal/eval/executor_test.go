package eval

import "testing"

func incrementCommand() *Native {
	return NewNative("increment", false, func(ctx *ExecutionContext) error {
		v, err := ctx.Input.Recv()
		if err != nil {
			return err
		}
		i, _ := v.AsInteger()
		return ctx.Output.Send(NewIntegerFromInt64(i.Int64() + 1))
	}, "increment", "increment", "")
}

func TestRunJob_ChainsStagesOutputToInput(t *testing.T) {
	env := NewRootScope()
	env.Declare("increment", NewCommand(incrementCommand()))

	job := NewJob(
		Invoke(Lit(NewIntegerFromInt64(1))),
		Invoke(Ident("increment")),
		Invoke(Ident("increment")),
	)

	sender, receiver := NewValueChannel()
	if err := RunJob(env, job, EmptyChannel(), sender); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, _ := v.AsInteger()
	if i.Int64() != 3 {
		t.Fatalf("expected 1 incremented twice = 3, got %v", v)
	}
}

func TestRunJob_EmptyJobIsANoOp(t *testing.T) {
	env := NewRootScope()
	if err := RunJob(env, NewJob(), EmptyChannel(), BlackHole()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// blockingEchoCommand can block, forcing its stage to run on its own
// goroutine — exercising the spawn path of RunJob rather than the inline
// path.
func blockingEchoCommand() *Native {
	return NewNative("blocking-echo", true, func(ctx *ExecutionContext) error {
		v, err := ctx.Input.Recv()
		if err != nil {
			return err
		}
		return ctx.Output.Send(v)
	}, "blocking-echo", "blocking-echo", "")
}

func TestRunJob_SpawnsBlockingStages(t *testing.T) {
	env := NewRootScope()
	env.Declare("blocking-echo", NewCommand(blockingEchoCommand()))

	job := NewJob(
		Invoke(Lit(NewString("payload"))),
		Invoke(Ident("blocking-echo")),
	)

	sender, receiver := NewValueChannel()
	if err := RunJob(env, job, EmptyChannel(), sender); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := receiver.Recv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := v.AsString()
	if s != "payload" {
		t.Fatalf("expected payload to pass through, got %v", v)
	}
}

func TestRunJob_StageFailurePropagates(t *testing.T) {
	env := NewRootScope()
	job := NewJob(Invoke(Ident("unknown-command")))

	sender, _ := NewValueChannel()
	err := RunJob(env, job, EmptyChannel(), sender)
	if err == nil {
		t.Fatal("expected an unknown command to fail the job")
	}
}
