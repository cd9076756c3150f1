// File: facade/options.go
// Package facade defines functional options for the Core facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import "github.com/momentics/hioload-mem/batch"

// Option customizes Core initialization after component construction.
type Option func(*Core)

// WithHandler registers a batch handler on the facade's engine.
func WithHandler(kind batch.Kind, h batch.Handler) Option {
	return func(c *Core) {
		c.engine.Register(kind, h)
	}
}
