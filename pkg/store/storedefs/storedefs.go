// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// NoBlacklist is an empty blacklist, to be used in Dirs.
var NoBlacklist = map[string]struct{}{}

// ErrNoBookmark is returned by Bookmark when there is no such bookmark.
var ErrNoBookmark = errors.New("no such bookmark")

// Store is an interface satisfied by the storage service.
type Store interface {
	PutBinding(b Binding) error
	DelBinding(scope, keys string) error
	Bindings() ([]Binding, error)

	SetAbbr(abbr, full string) error
	DelAbbr(abbr string) error
	Abbrs() (map[string]string, error)

	AddDir(dir string, incFactor float64) error
	DelDir(dir string) error
	Dirs(blacklist map[string]struct{}) ([]Dir, error)

	SetBookmark(name, dir string) error
	DelBookmark(name string) error
	Bookmark(name string) (string, error)
	Bookmarks() (map[string]string, error)

	Close() error
}

// Binding is a user-defined key binding. Exactly one of Inject, Lua and
// Builtin is meaningful.
type Binding struct {
	Keys    string `yaml:"keys"`
	Scope   string `yaml:"scope"`
	Inject  string `yaml:"inject,omitempty"`
	Lua     string `yaml:"lua,omitempty"`
	Builtin string `yaml:"builtin,omitempty"`
	Arg     string `yaml:"arg,omitempty"`
}

// Dir is an entry in the directory history.
type Dir struct {
	Path  string
	Score float64
}
