package main

import (
	"io"
	"strings"

	"github.com/chzyer/readline"

	"tshell/internal/eval"
	"tshell/internal/printer"
)

// runREPL drives an interactive readline loop against env, printing each
// job's result and continuing past errors instead of exiting — the
// interactive counterpart of rond's localREPL, generalized from
// minicli.ProcessString to this core's RunJob/parseLine.
func runREPL(env *eval.Scope, p *printer.Printer) error {
	rl, err := readline.New(appName + "> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := runLine(env, p, line); err != nil {
			p.Error(err)
		}
	}
}

// runLine parses and runs a single line to completion, printing its value.
func runLine(env *eval.Scope, p *printer.Printer, line string) error {
	job := parseLine(line)
	if len(job.Stages) == 0 {
		return nil
	}
	sender, receiver := eval.NewValueChannel()
	if err := eval.RunJob(env, job, eval.EmptyChannel(), sender); err != nil {
		return err
	}
	v, err := receiver.Recv()
	if err != nil && err != eval.ErrEndOfStream {
		return err
	}
	if err == nil {
		return p.Value(v)
	}
	return nil
}
