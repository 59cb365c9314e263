package builtin

import (
	"fmt"
	"sort"

	"tshell/internal/eval"
)

// rowsOf accepts either a Table or a TableStream input value and returns its
// columns plus a function that yields rows one at a time, unifying the two
// container kinds the way the teacher's table built-ins iterate either
// shape through a single TableReader-like abstraction.
func rowsOf(v eval.Value) ([]eval.ColumnType, func() (eval.Row, error), error) {
	if t, ok := v.AsTable(); ok {
		rows := t.Rows
		i := 0
		return t.Columns, func() (eval.Row, error) {
			if i >= len(rows) {
				return nil, eval.ErrEndOfStream
			}
			r := rows[i]
			i++
			return r, nil
		}, nil
	}
	if r, ok := v.AsTableStream(); ok {
		return r.Columns(), r.Recv, nil
	}
	return nil, nil, fmt.Errorf("%w: expected a table or table stream", eval.ErrArgument)
}

// rowScope binds one row's columns as named values in a child of env, so a
// predicate/body closure invoked per row can refer to them by name.
func rowScope(env *eval.Scope, columns []eval.ColumnType, row eval.Row) *eval.Scope {
	child := env.CreateChild(env, false)
	for i, col := range columns {
		if i < len(row) {
			child.Declare(col.Name, row[i])
		}
	}
	return child
}

// Where streams its Table/TableStream input through a Command predicate,
// invoked once per row in a scope that has the row's columns bound by name,
// and re-emits (via ValueSender.Initialize, the incremental producer
// pattern) only the rows for which the predicate yields a true Bool.
// Grounded on lib/input/lines.rs's context.output.initialize(...) streaming
// shape, adapted to a row-filter rather than a line-source.
func Where() *eval.Native {
	return eval.NewNative("where", true, func(ctx *eval.ExecutionContext) error {
		if len(ctx.Arguments) != 1 {
			return fmt.Errorf("%w: where takes exactly one predicate argument", eval.ErrArgument)
		}
		pred, ok := ctx.Arguments[0].Value.AsCommand()
		if !ok {
			return fmt.Errorf("%w: where requires a command predicate", eval.ErrArgument)
		}

		in, err := ctx.Input.Recv()
		if err != nil {
			return err
		}
		columns, next, err := rowsOf(in)
		if err != nil {
			return err
		}

		sender, err := ctx.Output.Initialize(columns)
		if err != nil {
			return err
		}
		defer sender.Close()

		for {
			row, err := next()
			if err == eval.ErrEndOfStream {
				return nil
			}
			if err != nil {
				return err
			}

			scope := rowScope(ctx.Env, columns, row)
			out, in := eval.NewValueChannel()
			predCtx := &eval.ExecutionContext{
				Env:    scope,
				Input:  eval.EmptyChannel(),
				Output: out,
			}
			if err := pred.Invoke(predCtx); err != nil {
				return err
			}
			result, err := in.Recv()
			if err != nil {
				return err
			}
			keep, ok := result.AsBool()
			if !ok {
				return fmt.Errorf("%w: where predicate must yield a bool", eval.ErrInvalidData)
			}
			if keep {
				if err := sender.Send(row); err != nil {
					return err
				}
			}
		}
	}, "where predicate", "Keep only the rows for which predicate is true", "")
}

// Sort materializes its Table/TableStream input, orders the rows by the
// named column (or the first column if none is given) using Value.Less, and
// re-emits the sorted rows through the same incremental-producer pattern as
// Where.
func Sort() *eval.Native {
	return eval.NewNative("sort", true, func(ctx *eval.ExecutionContext) error {
		column := ""
		for _, a := range ctx.Arguments {
			if a.Name == "" {
				s, ok := a.Value.AsString()
				if !ok {
					return fmt.Errorf("%w: sort's column argument must be a string", eval.ErrArgument)
				}
				column = s
			}
		}

		in, err := ctx.Input.Recv()
		if err != nil {
			return err
		}
		in, err = in.Materialize()
		if err != nil {
			return err
		}
		columns, next, err := rowsOf(in)
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			return fmt.Errorf("%w: sort requires at least one column", eval.ErrInvalidData)
		}

		idx := 0
		if column != "" {
			idx = -1
			for i, c := range columns {
				if c.Name == column {
					idx = i
					break
				}
			}
			if idx == -1 {
				return fmt.Errorf("%w: no such column %q", eval.ErrArgument, column)
			}
		}

		var rows []eval.Row
		for {
			row, err := next()
			if err == eval.ErrEndOfStream {
				break
			}
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}

		var sortErr error
		sort.SliceStable(rows, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			less, err := rows[i][idx].Less(rows[j][idx])
			if err != nil {
				sortErr = err
				return false
			}
			return less
		})
		if sortErr != nil {
			return sortErr
		}

		sender, err := ctx.Output.Initialize(columns)
		if err != nil {
			return err
		}
		defer sender.Close()
		for _, row := range rows {
			if err := sender.Send(row); err != nil {
				return err
			}
		}
		return nil
	}, "sort [column]", "Sort rows by column, defaulting to the first column", "")
}
