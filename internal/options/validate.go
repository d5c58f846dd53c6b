// Package options provides input-source validation shared by the packages
// that accept a corpus through functional options.
package options

import (
	"fmt"
	"strings"
)

// Source pairs an input option's exported name with whether it was set.
// The name appears in error messages, so callers pass the option function
// name (for example "WithDir").
type Source struct {
	Name string
	Set  bool
}

// RequireExactlyOne checks that exactly one of the given input sources is
// set. pkg prefixes the error message. The no-source message lists every
// accepted option; the multi-source message names the ones that conflict.
func RequireExactlyOne(pkg string, sources ...Source) error {
	all := make([]string, len(sources))
	var set []string
	for i, s := range sources {
		all[i] = s.Name
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%s: must specify an input source (use %s)", pkg, orList(all))
	default:
		return fmt.Errorf("%s: must specify exactly one input source (%s conflict)", pkg, strings.Join(set, " and "))
	}
}

// orList renders names as "A, B, or C" for the no-source message.
func orList(names []string) string {
	if len(names) <= 1 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
