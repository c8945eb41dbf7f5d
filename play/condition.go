package play

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition is a named predicate compiled to expr bytecode against Env.
// Source is kept so conditions can be logged and overridden from config.
type Condition struct {
	Name    string
	Source  string
	program *vm.Program
}

func NewCondition(name, src string) (*Condition, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", name, err)
	}
	return &Condition{Name: name, Source: src, program: prog}, nil
}

// Eval never fails: a runtime error is logged and treated as false.
func (c *Condition) Eval(env Env) bool {
	result, err := vm.Run(c.program, env)
	if err != nil {
		slog.Warn("condition error", "condition", c.Name, "error", err)
		return false
	}
	match, ok := result.(bool)
	return ok && match
}
