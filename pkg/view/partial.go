package view

import "fmt"

// Partial renders name in a fresh view that shares only the executor and
// options of v. The optional dir is registered before name is resolved and
// data seeds the new context. Blocks and layouts of the partial stay inside it.
func (v *View) Partial(name, dir string, data map[string]any) (string, error) {
	p := &View{
		resolver: NewResolver(v.resolver.Extension()),
		ctx:      NewContext(),
		exec:     v.exec,
		opts:     v.opts,
		logger:   v.logger.With("partial", name),
		blocks:   make(map[string]string),
	}

	if dir != "" {
		if err := p.AddDirectory(dir); err != nil {
			return "", fmt.Errorf("partial %q: %w", name, err)
		}
	}
	if v.opts.inheritDirs {
		if err := p.AddDirectories(v.resolver.Directories()); err != nil {
			return "", fmt.Errorf("partial %q: %w", name, err)
		}
	}
	if err := p.SetEntry(name); err != nil {
		return "", fmt.Errorf("partial %q: %w", name, err)
	}
	p.Populate(data)

	out, err := p.Render()
	if err != nil {
		return "", fmt.Errorf("partial %q: %w", name, err)
	}
	return out, nil
}
