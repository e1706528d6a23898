package engine

import (
	"strings"

	"github.com/google/shlex"

	appErr "skharness/pkg/errors"
)

const (
	// FlagsPlaceholder expands to zero or more separate arguments.
	FlagsPlaceholder = "{flags}"
	// SourcePlaceholder is replaced in place by the C source path.
	SourcePlaceholder = "{src}"
)

// SplitCommand splits a configured command line into an argv.
func SplitCommand(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return nil, appErr.New(appErr.InvalidParams).WithMessage("command is required")
	}
	fields, err := shlex.Split(line)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidFormat, "parse command %q failed", line)
	}
	if len(fields) == 0 {
		return nil, appErr.New(appErr.InvalidParams).WithMessage("command is empty after parsing")
	}
	return fields, nil
}

// Template is a pre-split command line with placeholders.
// Splitting happens before substitution, so substituted values are never
// re-tokenised and need no quoting.
type Template struct {
	fields []string
}

// ParseTemplate splits tpl once; Expand can be called per test case.
func ParseTemplate(tpl string) (Template, error) {
	fields, err := SplitCommand(tpl)
	if err != nil {
		return Template{}, appErr.Wrap(err, appErr.ToolchainCommandInvalid)
	}
	if fields[0] == FlagsPlaceholder || strings.Contains(fields[0], SourcePlaceholder) {
		return Template{}, appErr.Newf(appErr.ToolchainCommandInvalid, "command template %q must start with a program name", tpl)
	}
	return Template{fields: fields}, nil
}

// Expand builds the argv for one invocation.
func (t Template) Expand(src string, flags []string) []string {
	cmd := make([]string, 0, len(t.fields)+len(flags))
	for _, field := range t.fields {
		if field == FlagsPlaceholder {
			for _, f := range flags {
				if f != "" {
					cmd = append(cmd, f)
				}
			}
			continue
		}
		cmd = append(cmd, strings.ReplaceAll(field, SourcePlaceholder, src))
	}
	return cmd
}

// Empty reports whether the template was never parsed.
func (t Template) Empty() bool {
	return len(t.fields) == 0
}
