package eval

import (
	"fmt"
	"sync"
)

// Scope is a lexical environment: a name-to-Value map with a parent
// (lexical enclosing scope), a caller (the invocation site, searched for
// names the parent chain lacks), a set of "used" namespaces, and a cooperative
// stop/cancellation flag for break/continue.
//
// Each Scope holds its own RWMutex, per spec.md §5's "single internal lock
// per Scope/container"; no lock is ever held across a channel send/receive.
type Scope struct {
	mu       sync.RWMutex
	vars     map[string]Value
	parent   *Scope
	caller   *Scope
	used     []*Scope
	readonly bool
	isLoop   bool
	stop     *stopCell
}

// stopCell is the cooperative-cancellation flag that break/continue flip.
// A scope shares its stop cell with whichever scope dynamically invoked it
// (its caller), not with its lexical parent: that is what lets a `break`
// run from inside a closure passed as a loop body become visible both to
// the loop construct that keeps reinvoking that body (it shares the loop
// frame's cell as the body's caller) and to the rest of that same body
// invocation's remaining jobs (Closure.Invoke checks its own env's cell,
// which is that same shared cell). A plain parent-pointer walk could never
// carry this signal, since parent links run the wrong way (child to lexical
// ancestor, never ancestor to dynamically-invoked child).
//
// The cell carries two independent bits, so `continue` and `break` can be
// told apart: `stopped` ("skip the rest of this invocation's jobs", set by
// both) and `breakLoop` ("the enclosing loop construct should stop
// iterating too", set only by break). The `loop` built-in resets the cell
// between iterations so a `continue` in one iteration doesn't carry into
// the next.
type stopCell struct {
	mu        sync.Mutex
	stopped   bool
	breakLoop bool
}

func (c *stopCell) signalStopped() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

func (c *stopCell) signalBreak() {
	c.mu.Lock()
	c.stopped = true
	c.breakLoop = true
	c.mu.Unlock()
}

func (c *stopCell) reset() {
	c.mu.Lock()
	c.stopped = false
	c.breakLoop = false
	c.mu.Unlock()
}

func (c *stopCell) getStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *stopCell) getBreak() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.breakLoop
}

// NewRootScope creates a fresh top-level scope with no parent or caller.
func NewRootScope() *Scope {
	return &Scope{vars: map[string]Value{}, stop: &stopCell{}}
}

// CreateChild returns a new scope whose lexical parent is s and whose
// caller is the given scope (the dynamic invocation site). isLoop marks the
// new scope as a loop frame, letting break/continue locate it by walking up
// from inside the loop body. The child shares caller's stop cell when a
// caller is given (the common case: a loop body or closure invoked from
// some dynamic site shares that site's cancellation domain), falling back
// to s's cell for a plain lexical child created with no caller.
func (s *Scope) CreateChild(caller *Scope, isLoop bool) *Scope {
	cell := s.stop
	if caller != nil {
		cell = caller.stop
	}
	return &Scope{
		vars:   map[string]Value{},
		parent: s,
		caller: caller,
		isLoop: isLoop,
		stop:   cell,
	}
}

// Declare binds name to v in s's local frame. It fails if name is already
// locally bound or if s is readonly.
func (s *Scope) Declare(name string, v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readonly {
		return fmt.Errorf("%w: scope is readonly", ErrGeneric)
	}
	if _, exists := s.vars[name]; exists {
		return fmt.Errorf("%w: variable %q already exists in this scope", ErrGeneric, name)
	}
	s.vars[name] = v
	return nil
}

// Redeclare binds name to v in s's local frame whether or not it already
// exists there, failing only if s is readonly. It does not search parents:
// redeclaring always shadows at the local level.
func (s *Scope) Redeclare(name string, v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readonly {
		return fmt.Errorf("%w: scope is readonly", ErrGeneric)
	}
	s.vars[name] = v
	return nil
}

// Get resolves name via local vars, then used namespaces, then the lexical
// parent chain, then the caller chain — matching spec.md §4.C's lookup
// order.
func (s *Scope) Get(name string) (Value, bool) {
	return s.get(name, map[*Scope]bool{})
}

func (s *Scope) get(name string, seen map[*Scope]bool) (Value, bool) {
	if s == nil || seen[s] {
		return Value{}, false
	}
	seen[s] = true

	s.mu.RLock()
	v, ok := s.vars[name]
	used := append([]*Scope(nil), s.used...)
	parent := s.parent
	caller := s.caller
	s.mu.RUnlock()

	if ok {
		return v, true
	}
	for _, u := range used {
		if v, ok := u.get(name, seen); ok {
			return v, true
		}
	}
	if v, ok := parent.get(name, seen); ok {
		return v, true
	}
	return caller.get(name, seen)
}

// Use adds other as a namespace searched (after local vars, before parent)
// during Get.
func (s *Scope) Use(other *Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = append(s.used, other)
}

// LocalNames returns the names bound directly in s's own frame, in no
// particular order — used by cmd/tshell's "list" command to enumerate
// the bootstrapped built-ins.
func (s *Scope) LocalNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	return names
}

// ReadOnly seals s so further Declare/Redeclare calls fail, the
// teacher-derived idiom of declaring built-ins then calling
// env.readonly(). cmd/tshell's bootstrap does not call it, so the root
// scope stays writable.
func (s *Scope) ReadOnly() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readonly = true
}

// SignalContinue marks s's stop cell so the current closure invocation
// skips its remaining jobs, without telling an enclosing loop to stop
// iterating.
func (s *Scope) SignalContinue() { s.stop.signalStopped() }

// SignalBreak marks s's stop cell so both the current closure invocation's
// remaining jobs are skipped and the nearest enclosing loop stops
// iterating.
func (s *Scope) SignalBreak() { s.stop.signalBreak() }

// ResetSignal clears s's stop cell. The loop built-in calls this between
// iterations so a continue in one iteration does not carry into the next.
func (s *Scope) ResetSignal() { s.stop.reset() }

// IsStopped reports whether s or a scope sharing its cell has signaled
// continue or break — Closure.Invoke checks this after every job.
func (s *Scope) IsStopped() bool { return s.stop.getStopped() }

// ShouldBreakLoop reports whether a scope sharing s's cell has signaled
// break — the loop built-in checks this on its own loop-frame scope after
// each iteration.
func (s *Scope) ShouldBreakLoop() bool { return s.stop.getBreak() }

// NewLoopFrame returns a new loop-frame scope under s, with its own stop
// cell independent of the caller's: a loop construct's break/continue
// handling must not be confused with, or leak into, whatever cancellation
// state already existed in the scope the loop itself runs in.
func (s *Scope) NewLoopFrame(caller *Scope) *Scope {
	frame := s.CreateChild(caller, true)
	frame.stop = &stopCell{}
	return frame
}

// NearestLoop finds the innermost enclosing loop frame, for break/continue
// to target. It searches the dynamic caller chain before the lexical parent
// chain at each step, since a loop body is usually a closure invoked from
// the loop frame (a caller relationship) rather than lexically nested
// inside it.
func (s *Scope) NearestLoop() *Scope {
	for cur := s; cur != nil; {
		if cur.isLoop {
			return cur
		}
		if cur.caller != nil {
			cur = cur.caller
			continue
		}
		cur = cur.parent
	}
	return nil
}
