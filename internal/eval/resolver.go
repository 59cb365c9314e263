package eval

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Resolve is the command-invocation resolver: it turns a CommandInvocation
// AST node into a running stage, wiring input/output, and is grounded
// directly on command_invocation.rs's CommandInvocation::invoke.
//
// It first attempts a non-blocking compile (resolve the command expression
// and every argument without running any nested, possibly-slow invocation).
// If that refuses (BlockError, raised whenever an argument is itself a
// nested command call), the caller is expected to have already arranged for
// Resolve to run on its own goroutine; Resolve then falls back to a full,
// blocking compile. Any other compile failure falls back to an external
// binary lookup when the command position was a bare name (Label);
// otherwise it propagates.
func Resolve(env, caller *Scope, ci *CommandInvocation, input ValueReceiver, output ValueSender) error {
	cmdVal, this, args, err := compileNonBlocking(env, ci)
	if err == nil {
		return invokeValue(env, caller, cmdVal, this, args, input, output)
	}
	if _, ok := asBlockError(err); ok {
		return resolveBlocking(env, caller, ci, input, output)
	}
	if lbl, ok := ci.Command.(Label); ok {
		return tryExternalCommand(env, lbl.Name, ci.Arguments, input, output)
	}
	return err
}

// compileCommandSlot resolves ci's command-position expression to a Value.
// When that position is member access (GetItem, e.g. `receiver:method`),
// it additionally reports the receiver Value so the caller can thread it
// through as ExecutionContext.This — the `this` spec.md §4.F says a
// resolved command carries alongside its Value.
func compileCommandSlot(env *Scope, def ValueDefinition) (Value, *Value, error) {
	if g, ok := def.(GetItem); ok {
		base, err := g.Base.Compile(env)
		if err != nil {
			return Value{}, nil, err
		}
		key, err := g.Key.Compile(env)
		if err != nil {
			return Value{}, nil, err
		}
		v, err := base.Field(key)
		if err != nil {
			return Value{}, nil, err
		}
		return v, &base, nil
	}
	v, err := def.Compile(env)
	return v, nil, err
}

// EvalToValue runs ci to completion and returns the single Value it
// produced, for use where a command invocation appears in value position
// (e.g. as a nested argument). It is what backs Call.Compile.
func EvalToValue(env *Scope, ci *CommandInvocation) (Value, error) {
	sender, receiver := NewValueChannel()
	if err := Resolve(env, env, ci, EmptyChannel(), sender); err != nil {
		return Value{}, err
	}
	return receiver.Recv()
}

// compileNonBlocking resolves ci's command and arguments without invoking
// any nested command, refusing with a BlockError whenever an argument
// itself requires running a nested invocation to find its value.
func compileNonBlocking(env *Scope, ci *CommandInvocation) (Value, *Value, []CallArgument, error) {
	if ci.argCanBlock() {
		return Value{}, nil, nil, newBlockError()
	}
	cmdVal, this, err := compileCommandSlot(env, ci.Command)
	if err != nil {
		return Value{}, nil, nil, err
	}
	args := make([]CallArgument, 0, len(ci.Arguments))
	for _, a := range ci.Arguments {
		v, err := a.Value.Compile(env)
		if err != nil {
			return Value{}, nil, nil, err
		}
		args = append(args, CallArgument{Name: a.Name, Value: v})
	}
	return cmdVal, this, args, nil
}

// resolveBlocking is the full compile: it allows nested invocations to run
// (and thus to block) while resolving the command and its arguments.
func resolveBlocking(env, caller *Scope, ci *CommandInvocation, input ValueReceiver, output ValueSender) error {
	cmdVal, this, err := compileCommandSlot(env, ci.Command)
	if err != nil {
		if lbl, ok := ci.Command.(Label); ok {
			return tryExternalCommand(env, lbl.Name, ci.Arguments, input, output)
		}
		return err
	}
	args := make([]CallArgument, 0, len(ci.Arguments))
	for _, a := range ci.Arguments {
		v, err := a.Value.Compile(env)
		if err != nil {
			return err
		}
		args = append(args, CallArgument{Name: a.Name, Value: v})
	}
	return invokeValue(env, caller, cmdVal, this, args, input, output)
}

// invokeValue dispatches a resolved command-position Value, implementing
// invoke_value's per-Kind rules: a Command runs, carrying this (the
// receiver it was reached through, if any) into its ExecutionContext; a
// directory File changes the working directory when given no arguments,
// otherwise is emitted as a value; a Type with arguments looks up a
// "__call_type__" method in that type's own method table and invokes it
// with this set to the type value itself (this is how `list integer`
// yields `List(Integer)`); anything else is emitted as a value if it was
// called with no arguments, and is otherwise a "not a command" error.
func invokeValue(env, caller *Scope, v Value, this *Value, args []CallArgument, input ValueReceiver, output ValueSender) error {
	switch v.Kind() {
	case KindCommand:
		cmd, _ := v.AsCommand()
		return invokeCommand(env, caller, cmd, this, args, input, output)
	case KindFile:
		path, _ := v.AsFile()
		info, statErr := os.Stat(path)
		isDir := statErr == nil && info.IsDir()
		if len(args) == 0 && isDir {
			return changeDirectory(path, output)
		}
		if len(args) == 0 || isDir {
			return output.Send(v)
		}
		return fmt.Errorf("%w: not a command: %s", ErrGeneric, path)
	case KindType:
		t, _ := v.AsType()
		if len(args) > 0 {
			ctor, ok := t.Fields().Get("__call_type__")
			if ok {
				typeThis := v
				return invokeCommand(env, caller, ctor, &typeThis, args, input, output)
			}
			return fmt.Errorf("%w: %s is not callable", ErrGeneric, t.String())
		}
		return output.Send(v)
	default:
		if len(args) == 0 {
			return output.Send(v)
		}
		return fmt.Errorf("%w: not a command: %s", ErrGeneric, v.String())
	}
}

func invokeCommand(env, caller *Scope, cmd Command, this *Value, args []CallArgument, input ValueReceiver, output ValueSender) error {
	ctx := &ExecutionContext{Env: env, Input: input, Output: output, Arguments: args, This: this}
	return cmd.Invoke(ctx)
}

func changeDirectory(path string, output ValueSender) error {
	if err := os.Chdir(path); err != nil {
		return fmt.Errorf("%w: %v", ErrGeneric, err)
	}
	return output.Send(NewEmpty())
}

// tryExternalCommand scans the "cmd_path" List[File] bound in env for an
// executable named name and, if found, runs it as an external process. It
// is grounded on resolve_external_command/try_external_command
// (command_invocation.rs); the scan is intentionally repeated on every
// call rather than cached, matching the original's documented
// safe-but-O(path) behavior (see DESIGN.md).
func tryExternalCommand(env *Scope, name string, argDefs []Argument, input ValueReceiver, output ValueSender) error {
	cmdPathVal, ok := env.Get("cmd_path")
	if !ok {
		return fmt.Errorf("%w: unknown command name %s", ErrGeneric, name)
	}
	list, ok := cmdPathVal.AsList()
	if !ok {
		return fmt.Errorf("%w: unknown command name %s", ErrGeneric, name)
	}
	for _, dirVal := range list.Items() {
		dir, ok := dirVal.AsFile()
		if !ok {
			continue
		}
		full := filepath.Join(dir, name)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			args := make([]string, 0, len(argDefs))
			for _, a := range argDefs {
				v, err := a.Value.Compile(env)
				if err != nil {
					return err
				}
				args = append(args, v.String())
			}
			return runExternalProcess(full, args, input, output)
		}
	}
	return fmt.Errorf("%w: unknown command name %s", ErrGeneric, name)
}

// execBinaryReader adapts an external process's stdout pipe plus its
// *exec.Cmd into a BinaryReader: Close drains the process's exit status so
// it is never left as a zombie once the consumer is done reading.
type execBinaryReader struct {
	r   io.ReadCloser
	cmd *exec.Cmd
}

func (e *execBinaryReader) Read(p []byte) (int, error) { return e.r.Read(p) }

func (e *execBinaryReader) Close() error {
	_ = e.r.Close()
	return e.cmd.Wait()
}

func runExternalProcess(path string, args []string, input ValueReceiver, output ValueSender) error {
	cmd := exec.Command(path, args...)
	cmd.Stderr = os.Stderr

	if v, err := input.Recv(); err == nil {
		if b, ok := v.AsBinary(); ok {
			cmd.Stdin = bytes.NewReader(b)
		} else if s, ok := v.AsString(); ok {
			cmd.Stdin = bytes.NewReader([]byte(s))
		}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneric, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrGeneric, err)
	}
	return output.Send(NewBinaryStream(&execBinaryReader{r: stdout, cmd: cmd}))
}
