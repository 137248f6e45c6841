// Package registry holds the table of named operations exposed by the
// service surface.
//
// The table is built once at startup and is immutable afterwards: lookups
// are safe for concurrent use without locking, and there is no way to add
// or replace an operation on a constructed Registry.
package registry

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/molviz/molrender/pkg/errors"
)

// Handler executes an operation on a JSON request body and returns a
// JSON-serializable result.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

// Operation is a named, dispatchable unit of work.
type Operation struct {
	Name        string
	Description string
	Handler     Handler
}

// Registry is an immutable name → Operation table.
type Registry struct {
	ops   map[string]Operation
	names []string
}

// New builds a Registry from the given operations. Duplicate or empty names
// and nil handlers are construction bugs and fail immediately.
func New(ops ...Operation) (*Registry, error) {
	table := make(map[string]Operation, len(ops))
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		if op.Name == "" {
			return nil, errors.New(errors.ErrCodeInternal, "operation with empty name")
		}
		if op.Handler == nil {
			return nil, errors.New(errors.ErrCodeInternal, "operation %q has no handler", op.Name)
		}
		if _, exists := table[op.Name]; exists {
			return nil, errors.New(errors.ErrCodeInternal, "duplicate operation %q", op.Name)
		}
		table[op.Name] = op
		names = append(names, op.Name)
	}
	sort.Strings(names)
	return &Registry{ops: table, names: names}, nil
}

// Get returns the operation registered under name.
func (r *Registry) Get(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names returns the registered operation names in sorted order. The returned
// slice is a copy.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.ops)
}
