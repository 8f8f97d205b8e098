// Package executor provides view.Executor implementations backed by
// text/template, html/template and the raymond handlebars engine.
//
// The Go template executors expose the view operations as functions:
//
//	{{extends "layout"}}
//	{{beginBlock "scripts"}}<script src="app.js"></script>{{endBlock}}
//	{{content}} {{getBlock "scripts"}} {{partial "nav" "dir" .}}
//
// Closures stored in the view data are callable by their lower-cased name
// or through {{call "Name" args...}}.
package executor
