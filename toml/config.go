// Package toml loads command-line defaults from TOML configuration files.
package toml

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// Ensure Loader satisfies kong.ConfigurationLoader at compile time.
var _ kong.ConfigurationLoader = Loader

// Loader is a kong.ConfigurationLoader that resolves flag values from a
// TOML document.
//
// A flag named "log-level" is looked up as "log-level", then "log_level",
// and finally as a dotted path into tables, so both of these set the
// serve command's --addr flag:
//
//	addr = ":8080"
//
//	[serve]
//	addr = ":8080"
func Loader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, err
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		if v, ok := lookup(values, strings.ReplaceAll(flag.Name, "-", "_")); ok {
			return v, nil
		}
		if parent != nil && parent.Command != nil {
			if v, ok := lookup(values, parent.Command.Name+"."+flag.Name); ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f, nil
}

// lookup resolves key directly or as a dotted path into nested tables.
func lookup(values map[string]any, key string) (any, bool) {
	if v, ok := values[key]; ok {
		return v, true
	}
	var cur any = values
	for part := range strings.SplitSeq(key, ".") {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = table[part]; !ok {
			return nil, false
		}
	}
	if _, ok := cur.(map[string]any); ok {
		return nil, false
	}
	return cur, true
}
