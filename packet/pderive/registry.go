// Package pderive post-processes decoded fields whose value is not raw
// payload data but is calculated from other fields. Rules are registered
// per logcode id; adding a derived field means adding a rule, never touching
// the decode pipeline.
package pderive

import (
	"github.com/tmultani945/log-parser-project/packet/pfield"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

type (
	// Rule rewrites decoded fields in place. Fields keep their positions;
	// only values change.
	Rule     func(fields []pfield.DecodedField)
	Registry struct {
		rules map[string]Rule
	}
)

// NewRegistry returns a registry preloaded with the built-in rules.
func NewRegistry() *Registry {
	registry := Registry{rules: map[string]Rule{}}
	registry.Register("0xB888", BlerRule)
	return &registry
}

func (r *Registry) Register(logcodeID string, rule Rule) {
	r.rules[pmeta.NormalizeLogcodeID(logcodeID)] = rule
}

// Apply runs the rule registered for the logcode, if any.
func (r *Registry) Apply(logcodeID string, fields []pfield.DecodedField) {
	rule, ok := r.rules[pmeta.NormalizeLogcodeID(logcodeID)]
	if !ok {
		return
	}
	rule(fields)
}
