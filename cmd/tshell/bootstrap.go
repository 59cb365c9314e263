package main

import (
	"os"

	"tshell/internal/builtin"
	"tshell/internal/eval"
)

// bootstrap builds the root scope every pipeline in this process runs
// against. Built-ins are declared directly under their full name — plain
// names for value/control-flow commands, colon-namespaced names (list:of,
// sys:ps) for the rest — mirroring the teacher's env.declare(name,
// Value::Command(...)) registration idiom without introducing a separate
// sub-scope per namespace, since a colon is just another legal scope key.
func bootstrap(cfg fileConfig) *eval.Scope {
	builtin.RegisterTypeMethods()

	root := eval.NewRootScope()

	declare(root, "echo", builtin.Echo(os.Stdout))
	declare(root, "val", builtin.Val())
	declare(root, "where", builtin.Where())
	declare(root, "sort", builtin.Sort())
	declare(root, "loop", builtin.Loop())
	declare(root, "break", builtin.Break())
	declare(root, "continue", builtin.Continue())
	declare(root, "process-exec", builtin.ProcessExec())
	declare(root, "list:of", builtin.ListOf())
	declare(root, "list:len", builtin.ListLen())
	declare(root, "sys:ps", builtin.SysPs())

	declareType(root, "any", eval.TAny)
	declareType(root, "string", eval.TString)
	declareType(root, "integer", eval.TInteger)
	declareType(root, "float", eval.TFloat)
	declareType(root, "bool", eval.TBool)
	declareType(root, "time", eval.TTime)
	declareType(root, "duration", eval.TDuration)
	declareType(root, "file", eval.TFile)
	declareType(root, "binary", eval.TBinary)
	declareType(root, "list", eval.ListType(eval.TAny))
	declareType(root, "dict", eval.DictType(eval.TAny, eval.TAny))

	cmdPath := make([]eval.Value, len(cfg.CmdPath))
	for i, dir := range cfg.CmdPath {
		cmdPath[i] = eval.NewFile(dir)
	}
	root.Redeclare("cmd_path", eval.NewList(eval.NewListData(eval.TFile, cmdPath)))

	return root
}

func declare(scope *eval.Scope, name string, cmd eval.Command) {
	_ = scope.Declare(name, eval.NewCommand(cmd))
}

// declareType binds name to t itself as a Type value, the way the teacher
// binds its built-in commands — this is what lets `list integer` resolve
// "list" to a Type whose "__call_type__" method is then invoked with
// "integer" (itself resolved the same way) as its argument.
func declareType(scope *eval.Scope, name string, t *eval.Type) {
	_ = scope.Declare(name, eval.NewType(t))
}
