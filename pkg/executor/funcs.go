package executor

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/isholao/viewctl/pkg/view"
)

// buildFuncMap constructs the helpers shared by the Go template executors.
// wrap converts captured markup into the type the executor prints unescaped.
func buildFuncMap(h view.Handle, cfg *config, wrap func(string) any) map[string]any {
	funcs := TextFuncs()

	// layout
	funcs["extends"] = funcExtends(h)
	funcs["content"] = func() any { return wrap(h.Content()) }
	funcs["hasParent"] = h.HasParent

	// blocks
	funcs["beginBlock"] = funcBeginBlock(h)
	funcs["endBlock"] = funcEndBlock(h)
	funcs["getBlock"] = func(name string) any { return wrap(h.Block(name)) }
	funcs["hasBlock"] = h.HasBlock

	// partials and data
	funcs["partial"] = funcPartial(h, wrap)
	funcs["get"] = funcGet(h)
	funcs["has"] = h.Has
	funcs["set"] = funcSet(h)
	funcs["call"] = h.Call
	funcs["debug"] = funcDebug(h, cfg)

	for name, fn := range cfg.funcs {
		funcs[name] = fn
	}

	// Closures registered on the context are callable by name unless a
	// helper already uses it.
	for _, name := range h.Closures() {
		if _, taken := funcs[name]; taken || !isIdentifier(name) {
			continue
		}
		funcs[name] = funcClosure(h, name)
	}
	return funcs
}

func funcExtends(h view.Handle) func(string) (string, error) {
	return func(name string) (string, error) {
		return "", h.SetParent(name)
	}
}

func funcBeginBlock(h view.Handle) func(string) string {
	return func(name string) string {
		h.BeginBlock(name)
		return ""
	}
}

func funcEndBlock(h view.Handle) func() (string, error) {
	return func() (string, error) {
		return "", h.EndBlock()
	}
}

func funcGet(h view.Handle) func(string) (any, error) {
	return func(key string) (any, error) {
		return lookup(h, key)
	}
}

// lookup returns stored data as is and calls a registered closure with no
// arguments. Unset keys yield nil.
func lookup(h view.Handle, key string) (any, error) {
	val, ok := h.Lookup(key)
	if !ok {
		return nil, nil
	}
	if val.Kind() == view.KindCallable {
		return h.Call(key)
	}
	return val.Interface(), nil
}

func funcSet(h view.Handle) func(string, any) string {
	return func(key string, value any) string {
		h.Set(key, value)
		return ""
	}
}

// funcPartial renders another template in isolation. Arguments after the
// name are an optional directory (string) and optional data (map).
func funcPartial(h view.Handle, wrap func(string) any) func(string, ...any) (any, error) {
	return func(name string, args ...any) (any, error) {
		dir, data, err := partialArgs(args)
		if err != nil {
			return nil, fmt.Errorf("partial %q: %w", name, err)
		}
		out, err := h.Partial(name, dir, data)
		if err != nil {
			return nil, err
		}
		return wrap(out), nil
	}
}

func partialArgs(args []any) (string, map[string]any, error) {
	var (
		dir  string
		data map[string]any
	)
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			if dir != "" {
				return "", nil, fmt.Errorf("more than one directory given")
			}
			dir = v
		case map[string]any:
			if data != nil {
				return "", nil, fmt.Errorf("more than one data map given")
			}
			data = v
		case nil:
		default:
			return "", nil, fmt.Errorf("unsupported argument of type %T", arg)
		}
	}
	return dir, data, nil
}

func funcDebug(h view.Handle, cfg *config) func(...any) string {
	return func(args ...any) string {
		if cfg.debug != nil {
			_, _ = fmt.Fprintf(cfg.debug, "%s: %s", h.Current(), fmt.Sprint(args...))
		}
		return ""
	}
}

func funcClosure(h view.Handle, name string) func(...any) (any, error) {
	return func(args ...any) (any, error) {
		return h.Call(name, args...)
	}
}

// TextFuncs returns the string helpers available to every Go template
// viewctl renders, project files included. Callers may replace entries.
func TextFuncs() map[string]any {
	return map[string]any{
		"default":    funcDef,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
		"slug":       funcSlug,
		"join":       strings.Join,
		"trimPrefix": strings.TrimPrefix,
		"ternary":    funcTernary,
		"envOr":      funcEnvOr,
		"now":        time.Now,
	}
}

// funcDef returns def when value is empty or whitespace, otherwise value.
func funcDef(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// funcSlug normalizes a value into a lower-case dash-separated slug.
func funcSlug(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, " ", "-")
	v = strings.ReplaceAll(v, "_", "-")
	return v
}

// funcEnvOr looks up an environment variable and falls back to def.
func funcEnvOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func funcTernary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
