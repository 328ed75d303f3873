package config

import (
	"runtime"
	"strings"

	"github.com/expr-lang/expr"
	"go.trai.ch/cmk/internal/core/domain"
	"go.trai.ch/zerr"
)

// conditionEnv builds the variables visible to if/unless expressions.
func conditionEnv(environ []string, props map[string]string) map[string]any {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	if props == nil {
		props = map[string]string{}
	}

	return map[string]any{
		"os":    runtime.GOOS,
		"arch":  runtime.GOARCH,
		"env":   env,
		"props": props,
	}
}

// evaluate resolves c, returning fallback when the condition is absent.
func (c *Condition) evaluate(vars map[string]any, fallback bool) (bool, error) {
	if c == nil {
		return fallback, nil
	}
	if c.Literal != nil {
		return *c.Literal, nil
	}

	program, err := expr.Compile(c.Expr, expr.Env(vars), expr.AsBool())
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrInvalidCondition.Error()), "expression", c.Expr)
	}

	out, err := expr.Run(program, vars)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrInvalidCondition.Error()), "expression", c.Expr)
	}

	b, _ := out.(bool)
	return b, nil
}
