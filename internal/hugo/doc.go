// Package hugo translates a composed docs configuration into a Hugo project
// (hugo.yaml, module go.mod, render hooks) and drives the hugo binary.
//
// Mode mapping:
//
//	export  static bundle, relative URLs, images passed through
//	hybrid  static bundle with absolute URLs, servable by a preview server
//	server  no bundle; `hugo server` renders on request
package hugo
