// Package flagx lets several flag.FlagSets share os.Args: each one parses
// only the flags it knows about.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// Spec names the flags of one FlagSet, without dashes. Value flags may take
// their value from the next argument; Bool flags never do.
type Spec struct {
	Value []string
	Bool  []string
}

// FilterArgs keeps the arguments that belong to flags in s, in order.
// "-name", "--name", "-name=v" and "-name v" (value flags only) are
// recognised; everything else is dropped.
func FilterArgs(args []string, s Spec) []string {
	kinds := make(map[string]bool, len(s.Value)+len(s.Bool))
	for _, n := range s.Value {
		kinds[n] = true
	}
	for _, n := range s.Bool {
		kinds[n] = false
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		takesValue, ok := kinds[name]
		if !ok {
			continue
		}
		out = append(out, arg)
		if hasValue || !takesValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigFileFlag returns the -c / -config path from os.Args, or "".
func ConfigFileFlag() string {
	return configFileFlag(os.Args[1:])
}

func configFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to a .json, .yaml or .yml config file")
	fs.StringVar(&path, "c", "", "shorthand for -config")
	_ = fs.Parse(FilterArgs(args, Spec{Value: []string{"c", "config"}}))

	return path
}
