/*
Package view renders file templates through layout chains and collects named
blocks along the way.

A View resolves an entry name against its search directories, executes it
with an Executor and inspects the result. When the template requested a
parent layout (Handle.SetParent), its output becomes the layout's Content and
the layout runs next; this repeats until a template requests no parent, and
that template's output is the result of Render.

Templates capture named fragments with BeginBlock and EndBlock. Captures of
the same name anywhere in the chain accumulate in capture order, so a child
and its layouts can all contribute to a "scripts" block.

The package defines no template syntax: the Executor does. See package
executor for text/template, html/template and handlebars implementations.
*/
package view
