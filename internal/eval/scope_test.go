package eval

import "testing"

func TestScope_LookupOrder(t *testing.T) {
	t.Run("local shadows parent", func(t *testing.T) {
		parent := NewRootScope()
		parent.Declare("x", NewIntegerFromInt64(1))
		child := parent.CreateChild(nil, false)
		child.Declare("x", NewIntegerFromInt64(2))

		v, ok := child.Get("x")
		if !ok {
			t.Fatal("expected x to resolve")
		}
		i, _ := v.AsInteger()
		if i.Int64() != 2 {
			t.Fatalf("expected local value 2, got %d", i.Int64())
		}
	})

	t.Run("falls through to parent", func(t *testing.T) {
		parent := NewRootScope()
		parent.Declare("y", NewIntegerFromInt64(9))
		child := parent.CreateChild(nil, false)

		v, ok := child.Get("y")
		if !ok {
			t.Fatal("expected y to resolve via parent")
		}
		i, _ := v.AsInteger()
		if i.Int64() != 9 {
			t.Fatalf("expected 9, got %d", i.Int64())
		}
	})

	t.Run("falls through to caller after parent", func(t *testing.T) {
		parent := NewRootScope()
		caller := NewRootScope()
		caller.Declare("z", NewIntegerFromInt64(3))
		child := parent.CreateChild(caller, false)

		v, ok := child.Get("z")
		if !ok {
			t.Fatal("expected z to resolve via caller")
		}
		i, _ := v.AsInteger()
		if i.Int64() != 3 {
			t.Fatalf("expected 3, got %d", i.Int64())
		}
	})

	t.Run("used namespace searched before parent", func(t *testing.T) {
		parent := NewRootScope()
		parent.Declare("w", NewIntegerFromInt64(100))
		ns := NewRootScope()
		ns.Declare("w", NewIntegerFromInt64(200))
		child := parent.CreateChild(nil, false)
		child.Use(ns)

		v, _ := child.Get("w")
		i, _ := v.AsInteger()
		if i.Int64() != 200 {
			t.Fatalf("expected used namespace's binding 200, got %d", i.Int64())
		}
	})

	t.Run("unknown name fails", func(t *testing.T) {
		s := NewRootScope()
		if _, ok := s.Get("nope"); ok {
			t.Fatal("expected lookup to fail")
		}
	})
}

func TestScope_ReadOnly(t *testing.T) {
	s := NewRootScope()
	s.Declare("a", NewIntegerFromInt64(1))
	s.ReadOnly()

	if err := s.Declare("b", NewIntegerFromInt64(2)); err == nil {
		t.Fatal("expected Declare on a readonly scope to fail")
	}
	if err := s.Redeclare("a", NewIntegerFromInt64(9)); err == nil {
		t.Fatal("expected Redeclare on a readonly scope to fail")
	}
}

func TestScope_DeclareRejectsDuplicate(t *testing.T) {
	s := NewRootScope()
	if err := s.Declare("a", NewIntegerFromInt64(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Declare("a", NewIntegerFromInt64(2)); err == nil {
		t.Fatal("expected a second Declare of the same name to fail")
	}
	if err := s.Redeclare("a", NewIntegerFromInt64(2)); err != nil {
		t.Fatalf("Redeclare should overwrite without error: %v", err)
	}
	v, _ := s.Get("a")
	i, _ := v.AsInteger()
	if i.Int64() != 2 {
		t.Fatalf("expected Redeclare to overwrite, got %d", i.Int64())
	}
}

// TestScope_BreakSignalsLoopNotJustCaller exercises the caller-shared stop
// cell: a closure-style body invoked with a loop frame as its caller must
// be able to signal that loop frame's break, and the loop frame must be
// findable via NearestLoop from inside the body.
func TestScope_BreakSignalsLoopNotJustCaller(t *testing.T) {
	top := NewRootScope()
	frame := top.NewLoopFrame(top)
	body := frame.CreateChild(frame, false)

	if body.NearestLoop() != frame {
		t.Fatal("expected NearestLoop to find the loop frame via the caller chain")
	}

	body.SignalBreak()
	if !frame.ShouldBreakLoop() {
		t.Fatal("expected break signaled in the body to be visible on the loop frame")
	}
	if !body.IsStopped() {
		t.Fatal("expected the body's own invocation to also be marked stopped")
	}
}

func TestScope_ContinueDoesNotBreakLoop(t *testing.T) {
	top := NewRootScope()
	frame := top.NewLoopFrame(top)
	body := frame.CreateChild(frame, false)

	body.SignalContinue()
	if frame.ShouldBreakLoop() {
		t.Fatal("continue must not signal the enclosing loop to stop")
	}
	if !body.IsStopped() {
		t.Fatal("continue must still stop the rest of this invocation's jobs")
	}
}

func TestScope_ResetSignalClearsBothFlags(t *testing.T) {
	top := NewRootScope()
	frame := top.NewLoopFrame(top)
	frame.SignalBreak()
	frame.ResetSignal()
	if frame.IsStopped() || frame.ShouldBreakLoop() {
		t.Fatal("ResetSignal must clear both stopped and breakLoop")
	}
}

func TestScope_NewLoopFrameIsIndependentOfCaller(t *testing.T) {
	top := NewRootScope()
	top.SignalContinue() // some unrelated stop state already on top
	frame := top.NewLoopFrame(top)
	if frame.IsStopped() {
		t.Fatal("a fresh loop frame must not inherit its caller's stop state")
	}
}
