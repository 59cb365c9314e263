package main

import (
	"strconv"
	"strings"

	"tshell/internal/eval"
)

// parseLine turns one REPL/pipeline-runner line into a Job tree using
// eval.Ast's builder helpers. There is no real parser in this repository
// (eval.ast.go's doc comment is explicit about that); this is deliberately
// the simplest thing that lets interactive use exercise the core: stages
// separated by "|", a command name, and whitespace-separated arguments
// that are quoted strings, integers, floats, true/false, bare words
// (Label, so "cmd_path"-style variable references and the column names
// that where binds for each row resolve), or "name=value" named arguments.
func parseLine(line string) *eval.Job {
	var stages []*eval.CommandInvocation
	for _, stagePart := range strings.Split(line, "|") {
		fields := strings.Fields(stagePart)
		if len(fields) == 0 {
			continue
		}
		var args []eval.Argument
		for _, f := range fields[1:] {
			args = append(args, parseArgument(f))
		}
		stages = append(stages, eval.Invoke(eval.Ident(fields[0]), args...))
	}
	return eval.NewJob(stages...)
}

func parseArgument(field string) eval.Argument {
	if name, value, ok := strings.Cut(field, "="); ok && isValidName(name) {
		return eval.Named(name, literalOrLabel(value))
	}
	return eval.Pos(literalOrLabel(field))
}

// literalOrLabel treats a quoted or numeric token as a literal Value, and
// anything else as a variable reference — so plain words resolve through
// the scope the way a command name or a bound row-column does.
func literalOrLabel(tok string) eval.ValueDefinition {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return eval.Lit(eval.NewString(tok[1 : len(tok)-1]))
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return eval.Lit(eval.NewIntegerFromInt64(i))
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return eval.Lit(eval.NewFloat(f))
	}
	if tok == "true" || tok == "false" {
		return eval.Lit(eval.NewBool(tok == "true"))
	}
	return eval.Ident(tok)
}

func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
