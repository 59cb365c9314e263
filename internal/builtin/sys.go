package builtin

import (
	"fmt"
	"math/big"

	"github.com/shirou/gopsutil/v4/process"

	"tshell/internal/eval"
)

// SysPs lists running processes as a Table with pid, name, status, and
// memory-percent columns, each row built from a *process.Process the way
// cmd/tcpo's killProcess resolves one PID via gopsutil/v4/process — here
// enumerating every process instead of a single known PID.
func SysPs() *eval.Native {
	return eval.NewNative("sys:ps", true, func(ctx *eval.ExecutionContext) error {
		procs, err := process.Processes()
		if err != nil {
			return fmt.Errorf("%w: %v", eval.ErrGeneric, err)
		}

		columns := []eval.ColumnType{
			{Name: "pid", Type: eval.TInteger},
			{Name: "name", Type: eval.TString},
			{Name: "status", Type: eval.TString},
			{Name: "memory_percent", Type: eval.TFloat},
		}

		rows := make([]eval.Row, 0, len(procs))
		for _, p := range procs {
			name, err := p.Name()
			if err != nil {
				name = "?"
			}
			statuses, err := p.Status()
			status := "?"
			if err == nil && len(statuses) > 0 {
				status = statuses[0]
			}
			memPercent, err := p.MemoryPercent()
			if err != nil {
				memPercent = 0
			}
			rows = append(rows, eval.Row{
				eval.NewInteger(big.NewInt(int64(p.Pid))),
				eval.NewString(name),
				eval.NewString(status),
				eval.NewFloat(float64(memPercent)),
			})
		}

		return ctx.Output.Send(eval.NewTable(eval.NewTableData(columns, rows)))
	}, "sys:ps", "List running processes as a table", "")
}
