package builtin

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"tshell/internal/eval"
)

// execBinaryReader adapts a child process's stdout pipe plus its *exec.Cmd
// into an eval.BinaryReader: Close drains the process's exit status so it
// is never left as a zombie once the consumer is done reading. Mirrors the
// core's own execBinaryReader (resolver.go), duplicated here because that
// one is unexported and this builtin is an explicit, user-facing process
// launcher rather than the resolver's implicit cmd_path fallback.
type execBinaryReader struct {
	r   io.ReadCloser
	cmd *exec.Cmd
}

func (e *execBinaryReader) Read(p []byte) (int, error) { return e.r.Read(p) }

func (e *execBinaryReader) Close() error {
	_ = e.r.Close()
	return e.cmd.Wait()
}

// ProcessExec runs an external executable named by its first argument,
// passing the remaining arguments as its argv (argument names are not
// looked at), piping
// this stage's input to its stdin if a String or Binary value is available,
// and emitting its stdout as a BinaryStream.
func ProcessExec() *eval.Native {
	return eval.NewNative("process-exec", true, func(ctx *eval.ExecutionContext) error {
		if len(ctx.Arguments) == 0 {
			return fmt.Errorf("%w: process-exec requires a command name", eval.ErrArgument)
		}
		name, ok := ctx.Arguments[0].Value.AsString()
		if !ok {
			if f, ok := ctx.Arguments[0].Value.AsFile(); ok {
				name = f
			} else {
				return fmt.Errorf("%w: process-exec's first argument must name an executable", eval.ErrArgument)
			}
		}
		path, err := exec.LookPath(name)
		if err != nil {
			return fmt.Errorf("%w: %v", eval.ErrGeneric, err)
		}

		args := make([]string, 0, len(ctx.Arguments)-1)
		for _, a := range ctx.Arguments[1:] {
			args = append(args, a.Value.String())
		}

		cmd := exec.Command(path, args...)
		cmd.Stderr = os.Stderr

		if v, err := ctx.Input.Recv(); err == nil {
			if b, ok := v.AsBinary(); ok {
				cmd.Stdin = bytes.NewReader(b)
			} else if s, ok := v.AsString(); ok {
				cmd.Stdin = bytes.NewReader([]byte(s))
			}
		}

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("%w: %v", eval.ErrGeneric, err)
		}
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("%w: %v", eval.ErrGeneric, err)
		}
		return ctx.Output.Send(eval.NewBinaryStream(&execBinaryReader{r: stdout, cmd: cmd}))
	}, "process-exec name arg...", "Run an external executable and emit its stdout as a binary stream", "")
}
