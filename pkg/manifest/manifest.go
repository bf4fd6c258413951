// Package manifest loads declarative command trees from YAML files.
//
// A manifest describes every command the way it would be declared in code:
// aliases, flags, positional arguments and typed options with their
// constraints. Commands may carry a "run" expression that yields the exit
// status and an "echo" template printed when the command executes.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/steinsut/comad/pkg/command"
	"github.com/steinsut/comad/pkg/value"
)

// DefaultFileName is the manifest looked up in the working directory.
const DefaultFileName = "comad.yaml"

// ErrNoManifest is returned by Locate when no manifest file exists.
var ErrNoManifest = errors.New("no manifest found")

// Manifest is the root of a manifest file.
type Manifest struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Commands    map[string]*Command `yaml:"commands"`
}

// Command declares one node of the command tree.
type Command struct {
	Description string              `yaml:"description,omitempty"`
	Aliases     []string            `yaml:"aliases,omitempty"`
	Flags       []string            `yaml:"flags,omitempty"`
	Args        []Argument          `yaml:"args,omitempty"`
	Options     map[string]*Option  `yaml:"options,omitempty"`
	Run         string              `yaml:"run,omitempty"`
	Echo        string              `yaml:"echo,omitempty"`
	Commands    map[string]*Command `yaml:"commands,omitempty"`
}

// Argument declares a positional argument.
type Argument struct {
	Name string     `yaml:"name"`
	Type value.Type `yaml:"type"`
}

// Option declares a named option. Min and Max must be given together and
// cannot be combined with Enum.
type Option struct {
	Type     value.Type `yaml:"type"`
	Short    string     `yaml:"short,omitempty"`
	Required bool       `yaml:"required,omitempty"`
	Min      any        `yaml:"min,omitempty"`
	Max      any        `yaml:"max,omitempty"`
	Enum     []any      `yaml:"enum,omitempty"`
}

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Locate returns the manifest path to use. An explicit path must exist.
// Otherwise ./comad.yaml is tried, then manifest.yaml under dataDir.
func Locate(explicit, dataDir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("manifest %s: %w", explicit, err)
		}
		return explicit, nil
	}

	candidates := []string{DefaultFileName}
	if dataDir != "" {
		candidates = append(candidates, filepath.Join(dataDir, "manifest.yaml"))
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNoManifest
}

// CommandNames returns the top-level command names in sorted order.
func (m *Manifest) CommandNames() []string {
	return sortedNames(m.Commands)
}

// Validate checks every command in the manifest and reports all problems
// at once.
func (m *Manifest) Validate() error {
	if len(m.Commands) == 0 {
		return errors.New("manifest declares no commands")
	}
	var errs []error
	for _, name := range m.CommandNames() {
		errs = append(errs, m.Commands[name].validate(name, name))
	}
	return errors.Join(errs...)
}

// CommandNames returns the names of the nested commands in sorted order.
func (c *Command) CommandNames() []string {
	return sortedNames(c.Commands)
}

func (c *Command) validate(path, name string) error {
	var errs []error
	if err := command.ValidateName("command", name); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", path, err))
	}
	if c == nil {
		return errors.Join(append(errs, fmt.Errorf("%s: empty command", path))...)
	}

	if _, err := c.Template(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", path, err))
	}
	for _, child := range c.CommandNames() {
		errs = append(errs, c.Commands[child].validate(path+" "+child, child))
	}
	return errors.Join(errs...)
}

// Template converts the declaration into a command template and validates it.
func (c *Command) Template() (command.Template, error) {
	tmpl := command.Template{
		Aliases:     append([]string(nil), c.Aliases...),
		Flags:       append([]string(nil), c.Flags...),
		Options:     make(map[string]command.Option, len(c.Options)),
		Description: c.Description,
	}
	for _, arg := range c.Args {
		tmpl.Args = append(tmpl.Args, command.Arg(arg.Name, arg.Type))
	}

	var errs []error
	for _, name := range sortedNames(c.Options) {
		opt := c.Options[name]
		if opt == nil {
			errs = append(errs, fmt.Errorf("option %q: missing declaration", name))
			continue
		}
		built, err := opt.Option()
		if err != nil {
			errs = append(errs, fmt.Errorf("option %q: %w", name, err))
			continue
		}
		tmpl.Options[name] = built
	}
	if err := errors.Join(errs...); err != nil {
		return command.Template{}, err
	}

	if err := tmpl.Validate(); err != nil {
		return command.Template{}, err
	}
	return tmpl, nil
}

// Option builds the typed option.
func (o *Option) Option() (command.Option, error) {
	c, err := o.Constraint()
	if err != nil {
		return command.Option{}, err
	}
	opt := command.NewOption(c)
	if o.Short != "" {
		if utf8.RuneCountInString(o.Short) != 1 {
			return command.Option{}, fmt.Errorf("short %q must be a single character", o.Short)
		}
		r, _ := utf8.DecodeRuneInString(o.Short)
		opt = opt.WithShort(r)
	}
	if o.Required {
		opt = opt.AsRequired()
	}
	return opt, nil
}

// Constraint builds the value constraint. Bound and enum entries are read
// with the same conversion rules used for command-line tokens.
func (o *Option) Constraint() (value.Constraint, error) {
	if !o.Type.Valid() {
		return value.Constraint{}, fmt.Errorf("%w: %q", value.ErrUnknownType, o.Type.String())
	}

	bounded := o.Min != nil || o.Max != nil
	switch {
	case bounded && len(o.Enum) > 0:
		return value.Constraint{}, errors.New("min/max and enum are mutually exclusive")

	case bounded:
		if o.Min == nil || o.Max == nil {
			return value.Constraint{}, errors.New("min and max must be given together")
		}
		lo, err := o.coerce(o.Min)
		if err != nil {
			return value.Constraint{}, fmt.Errorf("min: %w", err)
		}
		hi, err := o.coerce(o.Max)
		if err != nil {
			return value.Constraint{}, fmt.Errorf("max: %w", err)
		}
		b, err := value.NewBounds(lo, hi)
		if err != nil {
			return value.Constraint{}, err
		}
		return value.Within(b), nil

	case len(o.Enum) > 0:
		members := make([]value.Value, 0, len(o.Enum))
		for i, raw := range o.Enum {
			v, err := o.coerce(raw)
			if err != nil {
				return value.Constraint{}, fmt.Errorf("enum[%d]: %w", i, err)
			}
			members = append(members, v)
		}
		return value.Enum(members...)
	}

	return value.Any(o.Type), nil
}

func (o *Option) coerce(raw any) (value.Value, error) {
	return value.Parse(o.Type, fmt.Sprint(raw))
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
