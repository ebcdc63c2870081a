package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Parser parses bank export files into a list of transactions
type Parser interface {
	Parse(path string) ([]Transaction, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]Transaction, error)

func (f ParserFunc) Parse(path string) ([]Transaction, error) {
	return f(path)
}

// registeredParser is a parser plus the file extensions it claims.
type registeredParser struct {
	parser     Parser
	extensions []string
}

var parsers = map[string]registeredParser{}

// RegisterParser registers p under name. Files with one of the given extensions
// (".json", ".xlsx") use it when no format is named explicitly.
func RegisterParser(name string, p Parser, extensions ...string) {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, strings.ToLower(ext))
	}
	parsers[name] = registeredParser{parser: p, extensions: exts}
}

// GetParser returns the parser registered under source.
func GetParser(source string) (Parser, error) {
	r, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return r.parser, nil
}

// AvailableSources returns the registered source types, sorted.
func AvailableSources() []string {
	sources := make([]string, 0, len(parsers))
	for name := range parsers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// sourceForExtension returns the first source, in name order, claiming the
// extension of path.
func sourceForExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	for _, name := range AvailableSources() {
		for _, e := range parsers[name].extensions {
			if e == ext {
				return name
			}
		}
	}
	return ""
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "simple-json:data.json" → ("simple-json", "data.json")
// Example: "C:\path\file.xlsx" → ("", "C:\path\file.xlsx")
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg // Not a known parser, treat whole thing as path
}

// ParserForFile picks a parser from an explicit format, a "format:" prefix on
// the argument, or the file extension, in that order.
func ParserForFile(format, arg string) (Parser, string, error) {
	prefixFormat, path := ParseFileArg(arg)
	if format == "" {
		format = prefixFormat
	}
	if format == "" {
		format = sourceForExtension(path)
	}
	if format == "" {
		return nil, path, fmt.Errorf("cannot tell the format of %s; use --source or a format: prefix (available: %v)", path, AvailableSources())
	}
	p, err := GetParser(format)
	if err != nil {
		return nil, path, err
	}
	return p, path, nil
}

func init() {
	// Register built-in parsers
	RegisterParser("xlsx", ParserFunc(ParseTransactionsXLSX), ".xlsx")
}
