package cmd

import (
	"fmt"
	"strings"
)

// flagValue reports whether args[*i] is the flag name, given either as
// "--name value" or "--name=value". When the value is a separate argument
// *i is advanced past it.
func flagValue(args []string, i *int, name string) (string, bool, error) {
	arg := args[*i]
	if arg == name {
		if *i+1 >= len(args) {
			return "", true, fmt.Errorf("%s requires a value", name)
		}
		*i++
		return args[*i], true, nil
	}
	if v, ok := strings.CutPrefix(arg, name+"="); ok {
		return v, true, nil
	}
	return "", false, nil
}
