package view

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	// KindScalar covers strings, booleans and numbers.
	KindScalar Kind = iota
	// KindStructured covers maps, slices, structs and pointers.
	KindStructured
	// KindCallable marks a closure registered on the context.
	KindCallable
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindStructured:
		return "structured"
	case KindCallable:
		return "callable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Closure is a helper function bound to the context it was registered on.
type Closure func(ctx *Context, args ...any) (any, error)

// Value is a single context entry.
type Value struct {
	kind Kind
	val  any
	fn   Closure
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Interface returns the stored value, or the closure for callables.
func (v Value) Interface() any {
	if v.kind == KindCallable {
		return v.fn
	}
	return v.val
}

// Context is the mutable data a template executes against.
type Context struct {
	values   map[string]Value
	closures map[string]Closure
	current  string
	parent   string
	// content is the output of the previous template in the chain. It is
	// kept apart from values so user data under any key survives a render.
	content string
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		values:   make(map[string]Value),
		closures: make(map[string]Closure),
	}
}

// Set stores value under key. Callables are registered as closures under the
// lower-cased key instead of being stored as data.
func (c *Context) Set(key string, value any) {
	if fn, ok := bindClosure(value); ok {
		c.closures[strings.ToLower(key)] = fn
		return
	}
	c.values[key] = Value{kind: classify(value), val: value}
}

// Populate sets every entry of data.
func (c *Context) Populate(data map[string]any) {
	for k, v := range data {
		c.Set(k, v)
	}
}

// Get returns the data stored under key. Unset keys yield nil and false.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	if !ok {
		return nil, false
	}
	return v.val, true
}

// Has reports whether a data value is stored under key.
func (c *Context) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Lookup returns the tagged value for key, falling back to a closure
// registered under the lower-cased key.
func (c *Context) Lookup(key string) (Value, bool) {
	if v, ok := c.values[key]; ok {
		return v, true
	}
	if fn, ok := c.closures[strings.ToLower(key)]; ok {
		return Value{kind: KindCallable, fn: fn}, true
	}
	return Value{}, false
}

// Delete removes the data value stored under key.
func (c *Context) Delete(key string) {
	delete(c.values, key)
}

// Data returns a snapshot of all non-callable values.
func (c *Context) Data() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v.val
	}
	return out
}

// Closures returns the registered closure names, lower-cased.
func (c *Context) Closures() []string {
	out := make([]string, 0, len(c.closures))
	for name := range c.closures {
		out = append(out, name)
	}
	return out
}

// Call invokes the closure registered under the lower-cased name.
func (c *Context) Call(name string, args ...any) (any, error) {
	fn, ok := c.closures[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownMemberError{Member: name, Type: fmt.Sprintf("%T", c)}
	}
	return fn(c, args...)
}

func classify(value any) Kind {
	if value == nil {
		return KindScalar
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return KindScalar
	default:
		return KindStructured
	}
}

var (
	contextType = reflect.TypeOf((*Context)(nil))
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// bindClosure adapts a Go function into a Closure. Functions whose first
// parameter is *Context receive the context they are called on.
func bindClosure(value any) (Closure, bool) {
	switch fn := value.(type) {
	case nil:
		return nil, false
	case Closure:
		return fn, fn != nil
	case func(*Context, ...any) (any, error):
		return Closure(fn), fn != nil
	case func(...any) (any, error):
		if fn == nil {
			return nil, false
		}
		return func(_ *Context, args ...any) (any, error) { return fn(args...) }, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	return reflectClosure(rv), true
}

func reflectClosure(fn reflect.Value) Closure {
	typ := fn.Type()
	return func(ctx *Context, args ...any) (any, error) {
		in := make([]reflect.Value, 0, len(args)+1)
		offset := 0
		if typ.NumIn() > 0 && typ.In(0) == contextType {
			in = append(in, reflect.ValueOf(ctx))
			offset = 1
		}

		fixed := typ.NumIn() - offset
		if typ.IsVariadic() {
			fixed--
			if len(args) < fixed {
				return nil, fmt.Errorf("wrong number of arguments: want at least %d, got %d", fixed, len(args))
			}
		} else if len(args) != fixed {
			return nil, fmt.Errorf("wrong number of arguments: want %d, got %d", fixed, len(args))
		}

		for i, arg := range args {
			var pt reflect.Type
			if i < fixed {
				pt = typ.In(i + offset)
			} else {
				pt = typ.In(typ.NumIn() - 1).Elem()
			}
			av, err := convertArg(arg, pt)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, av)
		}

		return unpackResults(fn.Call(in))
	}
}

func convertArg(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(pt), nil
	}
	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(pt) {
		return av, nil
	}
	if isNumeric(av.Kind()) && isNumeric(pt.Kind()) {
		return av.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, pt)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func unpackResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type().Implements(errorType) {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	case 2:
		if !out[1].Type().Implements(errorType) {
			return nil, errors.New("second result is not an error")
		}
		return out[0].Interface(), asError(out[1])
	default:
		return nil, fmt.Errorf("closure returns %d values, want at most 2", len(out))
	}
}

func asError(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	err, _ := v.Interface().(error)
	return err
}
