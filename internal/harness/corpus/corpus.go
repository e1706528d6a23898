// Package corpus provides the ordered snippet sequence a run executes.
package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	appErr "skharness/pkg/errors"
)

// Source yields snippets in execution order.
type Source interface {
	Snippets() []string
}

// List is a fixed, ordered corpus.
type List []string

// Snippets returns a copy so callers cannot reorder the corpus.
func (l List) Snippets() []string {
	return append([]string(nil), l...)
}

var binaryOps = []string{"*", "-", "/", "*", "%", "<", ">", "<=", ">="}

// Default returns the built-in regression corpus.
func Default() List {
	out := make(List, 0, len(binaryOps)+2)
	for _, op := range binaryOps {
		out = append(out, fmt.Sprintf("print(2 %s 2)", op))
	}
	return append(out, "print(2 == 2)", "print(2 != 2)")
}

type file struct {
	Snippets []string `yaml:"snippets"`
}

// Load reads a YAML corpus file of the form `snippets: [...]`.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.ConfigInvalid, "read corpus file failed: %v", err).
			WithDetail("path", path)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidFormat, "parse corpus file failed: %v", err).
			WithDetail("path", path)
	}
	if len(f.Snippets) == 0 {
		return nil, appErr.ValidationError("snippets", "at least one snippet is required")
	}
	return List(f.Snippets), nil
}
