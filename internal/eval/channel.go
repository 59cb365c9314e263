package eval

import (
	"io"
	"sync"
)

// BinaryReader is the payload of a BinaryStream Value: a single-consumer
// byte stream, closed by the producer once exhausted.
type BinaryReader interface {
	io.ReadCloser
}

// RowSender is the producer-side handle onto a row stream, returned by
// ValueSender.Initialize. Multiple goroutines may hold a RowSender for the
// same stream (component B's "multi-producer" requirement); each must call
// Close exactly once when it is done sending.
type RowSender interface {
	Send(row Row) error
	Close()
}

// RowReceiver is the single-consumer side of a row stream, carried inside a
// TableStream Value.
type RowReceiver interface {
	Recv() (Row, error)
	Columns() []ColumnType
}

// ErrEndOfStream is returned by Recv once a stream is exhausted. It is a
// control-flow signal, not a failure, and callers must distinguish it from
// any other error (spec.md §4.B).
var ErrEndOfStream = io.EOF

type rowStreamCore struct {
	columns []ColumnType
	ch      chan Row
	wg      sync.WaitGroup
	once    sync.Once
}

type rowSender struct{ core *rowStreamCore }

func (s *rowSender) Send(row Row) error {
	s.core.ch <- row
	return nil
}

func (s *rowSender) Close() {
	s.core.wg.Done()
	s.core.once.Do(func() {
		go func() {
			s.core.wg.Wait()
			close(s.core.ch)
		}()
	})
}

type rowReceiver struct{ core *rowStreamCore }

func (r *rowReceiver) Recv() (Row, error) {
	row, ok := <-r.core.ch
	if !ok {
		return nil, ErrEndOfStream
	}
	return row, nil
}

func (r *rowReceiver) Columns() []ColumnType { return r.core.columns }

// NewRowStream creates a row stream with a single initial producer. Call
// AddSender for each additional concurrent producer before it starts
// sending, so Close's reference count reaches zero only once every producer
// has finished.
func NewRowStream(columns []ColumnType) (RowSender, RowReceiver) {
	core := &rowStreamCore{columns: columns, ch: make(chan Row, 64)}
	core.wg.Add(1)
	return &rowSender{core: core}, &rowReceiver{core: core}
}

// AddSender registers another concurrent producer on the same stream,
// returning its private RowSender handle. The stream closes only once every
// handle, including the one returned by NewRowStream, has called Close.
func AddSender(s RowSender) RowSender {
	rs := s.(*rowSender)
	rs.core.wg.Add(1)
	return &rowSender{core: rs.core}
}

type emptyRowReceiver struct{ columns []ColumnType }

func (e *emptyRowReceiver) Recv() (Row, error)       { return nil, ErrEndOfStream }
func (e *emptyRowReceiver) Columns() []ColumnType    { return e.columns }

// EmptyRowReceiver returns a receiver that is immediately at end-of-stream.
func EmptyRowReceiver(columns []ColumnType) RowReceiver {
	return &emptyRowReceiver{columns: columns}
}

type blackHoleRowSender struct{}

func (blackHoleRowSender) Send(Row) error { return nil }
func (blackHoleRowSender) Close()         {}

// BlackHoleRowSender discards every row sent to it without blocking,
// matching spec.md §4.B's "output discarded, never blocks" black hole.
func BlackHoleRowSender() RowSender { return blackHoleRowSender{} }

// ValueSender is the producer side of the one-shot channel connecting two
// pipeline stages. A stage sends exactly one Value: either a scalar result
// via Send, or a row stream via Initialize (which sends a TableStream Value
// carrying the returned RowSender's counterpart receiver, then hands the
// caller the RowSender so it can push rows as they are produced — this is
// what lets stages run concurrently instead of waiting for full
// materialization).
type ValueSender interface {
	Send(v Value) error
	Initialize(columns []ColumnType) (RowSender, error)
}

// ValueReceiver is the single-consumer side of that channel.
type ValueReceiver interface {
	Recv() (Value, error)
}

type valuePipe struct {
	ch   chan Value
	mu   sync.Mutex
	sent bool
}

type valueSenderImpl struct{ p *valuePipe }

func (s *valueSenderImpl) Send(v Value) error {
	s.p.mu.Lock()
	if s.p.sent {
		s.p.mu.Unlock()
		return ErrAlreadySent
	}
	s.p.sent = true
	s.p.mu.Unlock()
	s.p.ch <- v
	close(s.p.ch)
	return nil
}

func (s *valueSenderImpl) Initialize(columns []ColumnType) (RowSender, error) {
	sender, receiver := NewRowStream(columns)
	if err := s.Send(NewTableStream(receiver)); err != nil {
		return nil, err
	}
	return sender, nil
}

type valueReceiverImpl struct{ p *valuePipe }

func (r *valueReceiverImpl) Recv() (Value, error) {
	v, ok := <-r.p.ch
	if !ok {
		return Value{}, ErrEndOfStream
	}
	return v, nil
}

// ErrAlreadySent marks a second Send/Initialize on a one-shot ValueSender.
var ErrAlreadySent = io.ErrClosedPipe

// NewValueChannel creates the one-shot Value channel connecting one pipeline
// stage's output to the next stage's input.
func NewValueChannel() (ValueSender, ValueReceiver) {
	p := &valuePipe{ch: make(chan Value, 1)}
	return &valueSenderImpl{p: p}, &valueReceiverImpl{p: p}
}

type emptyValueReceiver struct{}

func (emptyValueReceiver) Recv() (Value, error) { return Value{}, ErrEndOfStream }

// EmptyChannel returns a ValueReceiver that is immediately at end-of-stream,
// used as the input to the first job in a pipeline.
func EmptyChannel() ValueReceiver { return emptyValueReceiver{} }

type blackHoleValueSender struct{}

func (blackHoleValueSender) Send(Value) error { return nil }
func (blackHoleValueSender) Initialize(columns []ColumnType) (RowSender, error) {
	return BlackHoleRowSender(), nil
}

// BlackHole returns a ValueSender that discards whatever is sent to it,
// used as the output of the last job in a pipeline when the caller does not
// want the result.
func BlackHole() ValueSender { return blackHoleValueSender{} }
