package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrMissingCommand is returned by Execute for an empty argument list.
var ErrMissingCommand = errors.New("missing command")

// Command is a console command. Build defines its flags on a fresh FlagSet (defaults taken from
// live state) and returns the function to run after the flags are parsed.
type Command struct {
	Name  string
	Usage string
	Build func(fs *flag.FlagSet) func() error
}

// Registry holds commands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
	out  io.Writer
}

// NewRegistry returns an empty command registry. Flag errors and usage text go to out
// (nil discards them).
func NewRegistry(out io.Writer) *Registry {
	if out == nil {
		out = io.Discard
	}
	return &Registry{cmds: make(map[string]*Command), out: out}
}

// Register adds a command; a later registration under the same name replaces it.
func (r *Registry) Register(name, usage string, build func(fs *flag.FlagSet) func() error) {
	r.cmds[name] = &Command{Name: name, Usage: usage, Build: build}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Usage returns the one-line usage of a command.
func (r *Registry) Usage(name string) (string, bool) {
	c, ok := r.cmds[name]
	if !ok {
		return "", false
	}
	return c.Usage, true
}

// Parse splits a console line into arguments. Blank lines return ok false.
func Parse(line string) (args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

// Execute runs the command in args[0] with args[1:] as its flags.
// Returns an error for unknown command, parse error, or from the command itself.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return ErrMissingCommand
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.out)
	run := cmd.Build(fs)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments %q", name, fs.Args())
	}
	return run()
}
