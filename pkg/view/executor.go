package view

import "io"

// Executor interprets one resolved template file against a Handle.
// Output is written to the handle; context changes (a parent layout,
// blocks, data) are made through it as side effects.
type Executor interface {
	// Name identifies the executor in configuration and logs.
	Name() string
	// Extension is the file extension used when the view sets none.
	Extension() string
	// Execute runs the template stored at path.
	Execute(h Handle, path string) error
}

// Handle is the surface a template sees while it executes.
type Handle interface {
	io.Writer

	Get(key string) any
	Lookup(key string) (Value, bool)
	Has(key string) bool
	Set(key string, value any)
	Data() map[string]any
	Call(name string, args ...any) (any, error)
	Closures() []string

	Content() string
	Current() string

	SetParent(name string) error
	HasParent() bool
	Parent() string

	BeginBlock(name string)
	EndBlock() error
	HasBlock(name string) bool
	Block(name string) string

	Partial(name, dir string, data map[string]any) (string, error)
}
