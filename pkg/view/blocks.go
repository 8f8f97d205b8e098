package view

// BeginBlock starts capturing output for the named block. Captures nest;
// everything written until the matching EndBlock goes to this block.
func (v *View) BeginBlock(name string) {
	v.captures.openBlock(name)
}

// EndBlock closes the innermost block and appends what it captured to any
// content the block already holds, so every level of a layout chain
// contributes to a shared block.
func (v *View) EndBlock() error {
	name, body, err := v.captures.closeBlock()
	if err != nil {
		return err
	}
	v.blocks[name] += body
	return nil
}

// HasBlock reports whether the named block was captured.
func (v *View) HasBlock(name string) bool {
	_, ok := v.blocks[name]
	return ok
}

// Block returns the named block, or "" when it was never captured.
func (v *View) Block(name string) string {
	return v.blocks[name]
}

// Blocks returns a copy of every captured block.
func (v *View) Blocks() map[string]string {
	out := make(map[string]string, len(v.blocks))
	for k, b := range v.blocks {
		out[k] = b
	}
	return out
}
