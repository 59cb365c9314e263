package eval

import "sync"

// RunJob wires one Job's stages together and runs them: stage i's output
// feeds stage i+1's input via a fresh one-shot ValueChannel, the job's own
// input feeds the first stage, and the job's own output receives the last
// stage's result.
//
// Per spec.md §5, a stage whose resolved command can block (or whose
// arguments require a nested, possibly-blocking invocation to compile) runs
// on its own goroutine so that it can produce output incrementally without
// waiting for, or being waited on by, its neighbors; a stage that is
// neither gets run inline, on the same goroutine that is draining the rest
// of the job, since it is guaranteed to complete without unbounded
// buffering.
func RunJob(env *Scope, job *Job, input ValueReceiver, output ValueSender) error {
	n := len(job.Stages)
	if n == 0 {
		return nil
	}

	ins := make([]ValueReceiver, n)
	outs := make([]ValueSender, n)
	for i := 0; i < n-1; i++ {
		s, r := NewValueChannel()
		outs[i] = s
		ins[i+1] = r
	}
	ins[0] = input
	outs[n-1] = output

	var wg sync.WaitGroup
	errCh := make(chan error, n)

	for i, stage := range job.Stages {
		stageIn, stageOut := ins[i], outs[i]
		if stageNeedsSpawn(env, stage) {
			wg.Add(1)
			go func(st *CommandInvocation, in ValueReceiver, out ValueSender) {
				defer wg.Done()
				runStage(env, st, in, out, errCh)
			}(stage, stageIn, stageOut)
		} else {
			runStage(env, stage, stageIn, stageOut, errCh)
		}
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// runStage resolves and invokes one stage. If it fails, the error is
// reported on errCh and the stage's output is given a best-effort Empty
// value so a downstream stage blocked reading it does not wait forever —
// Send is a no-op if the stage already produced real output before
// failing.
func runStage(env *Scope, stage *CommandInvocation, in ValueReceiver, out ValueSender, errCh chan<- error) {
	if err := Resolve(env, env, stage, in, out); err != nil {
		errCh <- err
		_ = out.Send(NewEmpty())
	}
}

// stageNeedsSpawn decides, without triggering any side effect, whether a
// stage must run on its own goroutine. A non-blocking compile that
// resolves to a Command reveals whether that command itself can block;
// anything else (BlockError from a nested argument call, an unresolved
// name headed for external-command fallback, or a non-Command value) is
// treated conservatively as needing its own goroutine.
func stageNeedsSpawn(env *Scope, stage *CommandInvocation) bool {
	cmdVal, _, _, err := compileNonBlocking(env, stage)
	if err != nil {
		return true
	}
	if cmd, ok := cmdVal.AsCommand(); ok {
		return cmd.CanBlock()
	}
	return false
}
