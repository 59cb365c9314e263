package builtin

import (
	"fmt"

	"tshell/internal/eval"
)

// Break signals the innermost enclosing loop to stop after this iteration.
// Grounded on closure.rs's cooperative stop-flag design (spec.md §4.C/§4.E),
// adapted to this port's caller-first NearestLoop search.
func Break() *eval.Native {
	return eval.NewNative("break", false, func(ctx *eval.ExecutionContext) error {
		loop := ctx.Env.NearestLoop()
		if loop == nil {
			return fmt.Errorf("%w: break used outside a loop", eval.ErrGeneric)
		}
		loop.SignalBreak()
		return ctx.Output.Send(eval.NewEmpty())
	}, "break", "Stop the innermost enclosing loop", "")
}

// Continue skips the rest of the current loop iteration without stopping
// the loop itself.
func Continue() *eval.Native {
	return eval.NewNative("continue", false, func(ctx *eval.ExecutionContext) error {
		loop := ctx.Env.NearestLoop()
		if loop == nil {
			return fmt.Errorf("%w: continue used outside a loop", eval.ErrGeneric)
		}
		ctx.Env.SignalContinue()
		return ctx.Output.Send(eval.NewEmpty())
	}, "continue", "Skip to the next iteration of the innermost enclosing loop", "")
}

// Loop repeatedly invokes its single Command argument (typically a closure
// literal) in a fresh loop-frame scope until that body signals break. The
// loop-frame's stop signal is reset between iterations so a `continue`
// inside one iteration does not carry into the next.
func Loop() *eval.Native {
	return eval.NewNative("loop", true, func(ctx *eval.ExecutionContext) error {
		if len(ctx.Arguments) != 1 {
			return fmt.Errorf("%w: loop takes exactly one command argument", eval.ErrArgument)
		}
		body, ok := ctx.Arguments[0].Value.AsCommand()
		if !ok {
			return fmt.Errorf("%w: loop requires a command body", eval.ErrArgument)
		}

		frame := ctx.Env.NewLoopFrame(ctx.Env)
		broke := false
		for {
			frame.ResetSignal()
			bodyCtx := &eval.ExecutionContext{
				Env:    frame,
				Input:  eval.EmptyChannel(),
				Output: eval.BlackHole(),
			}
			if err := body.Invoke(bodyCtx); err != nil {
				return err
			}
			if frame.ShouldBreakLoop() {
				broke = true
				break
			}
		}
		if broke {
			// A break cuts the whole statement short, not just this loop's
			// own iteration: the job that invoked `loop` is done, so the
			// jobs still to come in the closure that contains it are
			// skipped too, the same way any other stopped job is.
			ctx.Env.SignalContinue()
		}
		return ctx.Output.Send(eval.NewEmpty())
	}, "loop body", "Invoke body repeatedly until it calls break", "")
}
