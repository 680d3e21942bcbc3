package filter

import (
	"maps"
	"net/url"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/dnburn/urlrecord"
)

// Filter is a compiled boolean expression over a URL record
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile parses and type checks an expression such as
//
//	HasPriority && Priority <= 2 && host(URL) == "example.org"
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(urlrecord.New(""))),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the trimmed expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a record
func (f *Filter) Match(r *urlrecord.Record) (bool, error) {
	result, err := expr.Run(f.program, environment(r))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, URL: r.URL(), Err: err}
	}
	// AsBool guarantees the type
	return result.(bool), nil
}

// Apply returns the records matching f, in order
func Apply(f *Filter, records []*urlrecord.Record) ([]*urlrecord.Record, error) {
	matched := make([]*urlrecord.Record, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// environment exposes a record and the helper functions to expressions
func environment(r *urlrecord.Record) map[string]any {
	priority, hasPriority := r.Priority()

	env := map[string]any{
		"URL":          r.URL(),
		"URN":          r.URN(),
		"Owner":        r.Owner(),
		"Created":      r.Created(),
		"LastModified": r.LastModified(),
		"Self":         r.Self(),
		"Priority":     priority,
		"HasPriority":  hasPriority,
	}
	maps.Copy(env, helpers)
	return env
}

var helpers = map[string]any{
	"contains": func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	},
	"startsWith": func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	},
	"endsWith": func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	},
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"host": func(address string) string {
		u, err := url.Parse(address)
		if err != nil {
			return ""
		}
		return u.Hostname()
	},
	// daysSince returns -1 for timestamps that are missing or unparseable
	"daysSince": func(timestamp string) int {
		t, err := time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return -1
		}
		return int(time.Since(t).Hours() / 24)
	},
}
