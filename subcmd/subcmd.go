// Package subcmd wraps a flag.FlagSet with the usage text of one lyrics
// subcommand.
package subcmd

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func New(name, doc string) *Subcommand {
	sc := &Subcommand{
		FlagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		output:  os.Stderr,
	}
	sc.FlagSet.SetOutput(sc.output)
	sc.FlagSet.Usage = func() {
		argSuffix := ""
		if sc.arg != nil {
			argSuffix = fmt.Sprintf(" <%s>", sc.arg.name)
		}
		fmt.Fprintf(sc.output, "\n%s\n\n", doc)
		fmt.Fprintf(sc.output, "  lyrics %s [flags]%s\n\n", name, argSuffix)
		fmt.Fprintf(sc.output, "flags:\n")
		sc.FlagSet.PrintDefaults()
		if sc.arg != nil {
			fmt.Fprintf(sc.output, "  <%s> %s\n", sc.arg.name, sc.arg.typename)
			fmt.Fprintf(sc.output, "  \t%s\n", sc.arg.usage)
		}
	}
	return sc
}

type Subcommand struct {
	*flag.FlagSet
	arg    *arg
	output io.Writer
}

type arg struct {
	name     string
	typename string
	usage    string
}

func (sc *Subcommand) SetArg(name, typname, usage string) *Subcommand {
	sc.arg = &arg{name, typname, usage}
	return sc
}

// SetOutput redirects usage and flag errors.
func (sc *Subcommand) SetOutput(w io.Writer) {
	sc.output = w
	sc.FlagSet.SetOutput(w)
}

// Arg returns the positional argument, or "" when it was omitted.
func (sc *Subcommand) Arg() string {
	if sc.NArg() == 0 {
		return ""
	}
	return sc.FlagSet.Arg(0)
}
