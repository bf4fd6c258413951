// Package command declares command schemas and the tree of named commands
// they are attached to.
package command

import (
	"errors"
	"fmt"
	"sort"
	"unicode"

	"github.com/steinsut/comad/pkg/value"
)

// Option declares a named switch that carries a typed value.
type Option struct {
	Constraint value.Constraint
	// Short is the single-character short form; zero means none.
	Short    rune
	Required bool
}

// NewOption returns an optional Option with no short form.
func NewOption(c value.Constraint) Option {
	return Option{Constraint: c}
}

// WithShort returns a copy of o with the given short form.
func (o Option) WithShort(r rune) Option {
	o.Short = r
	return o
}

// AsRequired returns a copy of o marked required.
func (o Option) AsRequired() Option {
	o.Required = true
	return o
}

// Type returns the value type the option carries.
func (o Option) Type() value.Type {
	return o.Constraint.Type()
}

// NamedOption pairs an Option with its long name for fluent declarations.
type NamedOption struct {
	Name   string
	Option Option
}

// Opt starts a NamedOption declaration.
func Opt(name string, c value.Constraint) NamedOption {
	return NamedOption{Name: name, Option: NewOption(c)}
}

// Short sets the short form.
func (o NamedOption) Short(r rune) NamedOption {
	o.Option.Short = r
	return o
}

// Required marks the option required.
func (o NamedOption) Required() NamedOption {
	o.Option.Required = true
	return o
}

// Argument is a positional argument. Its position within Template.Args is
// the order in which tokens fill it.
type Argument struct {
	Name string
	Type value.Type
}

// Arg declares a positional argument.
func Arg(name string, t value.Type) Argument {
	return Argument{Name: name, Type: t}
}

// Template is the schema of a single command.
type Template struct {
	Aliases     []string
	Flags       []string
	Options     map[string]Option
	Args        []Argument
	Description string
}

// Clone returns a deep copy of t with aliases and flags de-duplicated and sorted.
func (t Template) Clone() Template {
	out := Template{
		Aliases:     uniqueSorted(t.Aliases),
		Flags:       uniqueSorted(t.Flags),
		Options:     make(map[string]Option, len(t.Options)),
		Args:        append([]Argument(nil), t.Args...),
		Description: t.Description,
	}
	for name, opt := range t.Options {
		out.Options[name] = opt
	}
	return out
}

// HasAlias reports whether alias is declared.
func (t Template) HasAlias(alias string) bool {
	return contains(t.Aliases, alias)
}

// HasFlag reports whether flag is declared.
func (t Template) HasFlag(flag string) bool {
	return contains(t.Flags, flag)
}

// OptionNames returns the option names in sorted order.
func (t Template) OptionNames() []string {
	names := make([]string, 0, len(t.Options))
	for name := range t.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiredOptionCount counts the options marked required.
func (t Template) RequiredOptionCount() int {
	n := 0
	for _, opt := range t.Options {
		if opt.Required {
			n++
		}
	}
	return n
}

// Validate reports every malformed name in the template, and names that are
// declared in more than one of flags, options and arguments.
func (t Template) Validate() error {
	var errs []error
	seen := make(map[string]string)
	claim := func(kind, name string) {
		if err := ValidateName(kind, name); err != nil {
			errs = append(errs, err)
			return
		}
		if prev, ok := seen[name]; ok && prev != kind {
			errs = append(errs, &StructuralError{Kind: kind, Name: name, Reason: "already declared as " + prev})
			return
		}
		seen[name] = kind
	}

	for _, alias := range t.Aliases {
		if err := ValidateName("alias", alias); err != nil {
			errs = append(errs, err)
		}
	}
	for _, flag := range t.Flags {
		claim("flag", flag)
	}
	for _, name := range t.OptionNames() {
		claim("option", name)
		opt := t.Options[name]
		if !opt.Type().Valid() {
			errs = append(errs, fmt.Errorf("option %q: %w", name, value.ErrUnknownType))
		}
		if opt.Short != 0 && (unicode.IsSpace(opt.Short) || !unicode.IsPrint(opt.Short)) {
			errs = append(errs, &StructuralError{Kind: "short option", Name: string(opt.Short), Reason: "must be a printable character"})
		}
	}
	argNames := make(map[string]bool)
	for _, arg := range t.Args {
		if argNames[arg.Name] {
			errs = append(errs, &StructuralError{Kind: "argument", Name: arg.Name, Reason: "declared twice"})
			continue
		}
		argNames[arg.Name] = true
		claim("argument", arg.Name)
		if !arg.Type.Valid() {
			errs = append(errs, fmt.Errorf("argument %q: %w", arg.Name, value.ErrUnknownType))
		}
	}
	return errors.Join(errs...)
}

func uniqueSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := set[s]; ok {
			continue
		}
		set[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, item := range list {
		if item != s {
			out = append(out, item)
		}
	}
	return out
}
