package eval

// Closure is a user-defined command: a captured lexical scope plus a
// sequence of Jobs run in order against one fresh invocation scope. It is
// grounded directly on the original's Closure::new/invoke/
// push_arguments_to_env (closure.rs).
type Closure struct {
	name     string
	captured *Scope
	params   []Parameter
	jobs     []*Job
	short    string
	long     string
}

// NewClosure builds a Closure capturing scope. Leading jobs that consist of
// a single bare string-literal stage are consumed as short/long help text,
// the same way Closure::new calls extract_help twice before keeping the
// rest as the closure's body.
func NewClosure(name string, scope *Scope, params []Parameter, jobs []*Job) *Closure {
	jobs, short := extractHelp(jobs)
	jobs, long := extractHelp(jobs)
	return &Closure{name: name, captured: scope, params: params, jobs: jobs, short: short, long: long}
}

// extractHelp removes and returns the leading bare-string-literal job, if
// jobs starts with one.
func extractHelp(jobs []*Job) ([]*Job, string) {
	if len(jobs) == 0 {
		return jobs, ""
	}
	first := jobs[0]
	if len(first.Stages) != 1 {
		return jobs, ""
	}
	stage := first.Stages[0]
	if len(stage.Arguments) != 0 {
		return jobs, ""
	}
	lit, ok := stage.Command.(LiteralValue)
	if !ok {
		return jobs, ""
	}
	s, ok := lit.V.AsString()
	if !ok {
		return jobs, ""
	}
	return jobs[1:], s
}

func (c *Closure) Name() string      { return c.name }
func (c *Closure) CanBlock() bool    { return true }
func (c *Closure) Signature() string { return c.name + "(...)" }
func (c *Closure) ShortHelp() string { return c.short }
func (c *Closure) LongHelp() string  { return c.long }

// Invoke runs the closure: a fresh invocation scope is created under the
// captured scope, arguments are bound into it, and the body's jobs run in
// order using that one scope throughout, stopping early if a job triggers a
// break or continue that marks the scope stopped.
func (c *Closure) Invoke(ctx *ExecutionContext) error {
	env := c.captured.CreateChild(ctx.Env, false)
	if ctx.This != nil {
		if err := env.Redeclare("this", *ctx.This); err != nil {
			return err
		}
	}
	if err := BindArguments(env, c.params, ctx.Arguments); err != nil {
		return err
	}

	for i, job := range c.jobs {
		input := ValueReceiver(EmptyChannel())
		if i == 0 {
			input = ctx.Input
		}
		output := ValueSender(BlackHole())
		if i == len(c.jobs)-1 {
			output = ctx.Output
		}

		if err := RunJob(env, job, input, output); err != nil {
			return err
		}
		if env.IsStopped() {
			return nil
		}
	}
	return nil
}
