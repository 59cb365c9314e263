package eval

// CallArgument is one argument after its ValueDefinition has been compiled
// to a concrete Value: Name is empty for a positional argument.
type CallArgument struct {
	Name  string
	Value Value
}

// ExecutionContext is everything a Command needs to run one pipeline stage:
// its lexical environment, its input/output ends of the one-shot value
// channel, its already-compiled arguments, and — when the command was
// reached through member access (`receiver:method`) or is a Type's
// `__call_type__` constructor — the receiver Value bound as This.
type ExecutionContext struct {
	Env       *Scope
	Input     ValueReceiver
	Output    ValueSender
	Arguments []CallArgument
	This      *Value
}

// Command is anything invocable as a pipeline stage: a native builtin or a
// user-declared Closure.
type Command interface {
	Help
	// Name is used in error messages and help listings.
	Name() string
	// CanBlock reports whether invoking this command may itself block
	// (read from a socket, wait on another pipeline, loop indefinitely).
	// The executor (stageNeedsSpawn in executor.go) uses it, together with
	// CommandInvocation.argCanBlock, to decide whether a stage can run
	// inline or needs its own goroutine.
	CanBlock() bool
	// Invoke runs the command. It must not panic; all failures are
	// returned as errors.
	Invoke(ctx *ExecutionContext) error
}

// NativeFunc is the Go function backing a Native command.
type NativeFunc func(ctx *ExecutionContext) error

// Native wraps a Go function as a Command, mirroring the teacher's pattern
// of registering a plain function plus metadata (see traversal/mod.rs's
// env.declare(name, Value::Command(CrushCommand::command(fn, can_block,
// signature, short_help, long_help))), adapted to Go's lack of a
// CrushCommand::command free function by making Native itself the
// registration unit.
type Native struct {
	name      string
	canBlock  bool
	fn        NativeFunc
	signature string
	shortHelp string
	longHelp  string
}

// NewNative constructs a Native command. canBlock should be true for any
// command that reads input, waits on a subprocess, or otherwise may not
// return promptly.
func NewNative(name string, canBlock bool, fn NativeFunc, signature, shortHelp, longHelp string) *Native {
	return &Native{
		name:      name,
		canBlock:  canBlock,
		fn:        fn,
		signature: signature,
		shortHelp: shortHelp,
		longHelp:  longHelp,
	}
}

func (n *Native) Name() string       { return n.name }
func (n *Native) CanBlock() bool     { return n.canBlock }
func (n *Native) Signature() string  { return n.signature }
func (n *Native) ShortHelp() string  { return n.shortHelp }
func (n *Native) LongHelp() string   { return n.longHelp }
func (n *Native) Invoke(ctx *ExecutionContext) error { return n.fn(ctx) }
