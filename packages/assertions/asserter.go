package assertions

import (
	"github.com/stretchr/testify/assert"

	"github.com/jsonspec/jsonspec/packages/query"
	"github.com/jsonspec/jsonspec/packages/schema"
)

// Asserter bundles the schema resolver and expression evaluator behind
// the assertion entry points. The package-level functions use a default
// Asserter; construct your own to substitute either engine.
type Asserter struct {
	resolver  *schema.Resolver
	evaluator query.Evaluator
}

// Option is a functional option for configuring an Asserter.
type Option func(*Asserter)

// WithResolver replaces the schema resolver.
func WithResolver(r *schema.Resolver) Option {
	return func(a *Asserter) {
		a.resolver = r
	}
}

// WithEvaluator replaces the expression evaluator.
func WithEvaluator(e query.Evaluator) Option {
	return func(a *Asserter) {
		a.evaluator = e
	}
}

func New(opts ...Option) *Asserter {
	a := &Asserter{
		resolver:  schema.NewResolver(),
		evaluator: query.NewJMESPath(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAsserter = New()

type tHelper interface {
	Helper()
}

type failNower interface {
	FailNow()
}

// fatal reports a resource error: the test is misconfigured rather than
// its subject failing. Halts the test when the target supports FailNow.
func fatal(t assert.TestingT, message string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	assert.Fail(t, message)
	if f, ok := t.(failNower); ok {
		f.FailNow()
	}
	return false
}
