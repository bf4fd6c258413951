// Package engine resolves a token sequence against a command tree, converts
// the remaining tokens into an ExecutionContext and dispatches the resolved
// command's executor.
package engine

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/steinsut/comad/pkg/command"
	"github.com/steinsut/comad/pkg/logging"
	"github.com/steinsut/comad/pkg/value"
)

// Parser applies one Config to any number of invocations. It holds no
// per-invocation state.
type Parser struct {
	cfg Config
	log logging.Logger
}

// New creates a Parser. A nil cfg means DefaultConfig, empty prefixes fall
// back to their defaults, and a nil logger discards diagnostics.
func New(cfg *Config, log logging.Logger) *Parser {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	defaults := DefaultConfig()
	if c.LongPrefix == "" {
		c.LongPrefix = defaults.LongPrefix
	}
	if c.ShortPrefix == "" {
		c.ShortPrefix = defaults.ShortPrefix
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Parser{cfg: c, log: log}
}

// Config returns a copy of the parser's configuration.
func (p *Parser) Config() Config { return p.cfg }

func (p *Parser) trace(format string, args ...any) {
	if p.cfg.Verbose {
		p.log.Debug(format, args...)
	}
}

// Resolve walks from root along tokens, consuming each token that names a
// child or a child alias of the current node. It returns the node reached,
// the canonical names consumed and the unconsumed tokens.
func (p *Parser) Resolve(root *command.Node, tokens []string) (*command.Node, []string, []string) {
	node := root
	var path []string
	i := 0
	for ; i < len(tokens) && len(node.Children()) > 0; i++ {
		name := tokens[i]
		if !node.HasChild(name) {
			canonical, err := node.ChildNameFromAlias(name)
			if err != nil {
				break
			}
			p.trace("alias %q resolves to %q", name, canonical)
			name = canonical
		}
		child, err := node.GetChild(name)
		if err != nil {
			break
		}
		node = child
		path = append(path, name)
	}
	p.trace("resolved command %q with %d remaining tokens", strings.Join(path, " "), len(tokens)-i)
	return node, path, tokens[i:]
}

// Parse converts tokens into an ExecutionContext for node. On failure the
// partially filled context is returned together with a *ParseError.
func (p *Parser) Parse(node *command.Node, tokens []string) (*command.ExecutionContext, error) {
	tmpl := node.Template()
	ctx := command.NewExecutionContext()
	for _, flag := range tmpl.Flags {
		ctx.Flags[flag] = false
	}

	nextArg := 0
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if name, ok := p.optionName(node, tok); ok {
			raw, hasValue := "", i+1 < len(tokens)
			if hasValue {
				i++
				raw = tokens[i]
			}
			if err := p.parseOption(node, ctx, name, raw, hasValue); err != nil {
				return ctx, err
			}
			continue
		}

		if flag, ok := p.flagName(tmpl, tok); ok {
			p.trace("flag %q set", flag)
			ctx.Flags[flag] = true
			continue
		}

		if name, ok := p.unknownOptionName(tok); ok {
			// Unregistered options consume their value token like registered ones.
			raw, hasValue := "", i+1 < len(tokens)
			if hasValue {
				i++
				raw = tokens[i]
			}
			if err := p.parseOption(node, ctx, name, raw, hasValue); err != nil {
				return ctx, err
			}
			continue
		}

		if nextArg < len(tmpl.Args) {
			arg := tmpl.Args[nextArg]
			v, err := value.Parse(arg.Type, tok)
			if err != nil {
				return ctx, p.fail(newParseError(ErrInvalidValueParse, node.Path(), fmt.Sprintf("argument %q", arg.Name), err))
			}
			p.trace("argument %q = %v", arg.Name, v)
			ctx.Args[arg.Name] = v
			nextArg++
			continue
		}

		p.trace("extra token %q", tok)
		ctx.ExtraArgs = append(ctx.ExtraArgs, tok)
	}

	if ctx.RequiredOptionCount < node.RequiredOptionCount() {
		return ctx, p.fail(newParseError(ErrMissingRequiredOptions, node.Path(),
			strings.Join(missingRequired(tmpl, ctx), ", "), nil))
	}
	return ctx, nil
}

// Prepare resolves tokens against root and parses the remainder. The
// returned context has Path filled in.
func (p *Parser) Prepare(root *command.Node, tokens []string) (*command.Node, *command.ExecutionContext, error) {
	node, path, rest := p.Resolve(root, tokens)
	ctx, err := p.Parse(node, rest)
	ctx.Path = path
	return node, ctx, err
}

// Run resolves, parses and dispatches one invocation. It returns the
// executor's result, or a reserved negative status when parsing or dispatch fails.
func (p *Parser) Run(root *command.Node, tokens []string) int {
	node, ctx, err := p.Prepare(root, tokens)
	if err != nil {
		return StatusOf(err)
	}
	executor := node.Executor()
	if executor == nil {
		return StatusOf(p.fail(newParseError(ErrDispatch, node.Path(), "", nil)))
	}
	status := executor.Execute(ctx)
	p.trace("command %q returned %d", node.Path(), status)
	return status
}

// optionName recognises a token naming one of node's registered options,
// either by long prefix or by a mapped short character.
func (p *Parser) optionName(node *command.Node, tok string) (string, bool) {
	if name, ok := strings.CutPrefix(tok, p.cfg.LongPrefix); ok && name != "" {
		return name, node.HasOption(name)
	}
	if r, ok := p.shortRune(tok); ok && node.HasShortOption(r) {
		name, _ := node.ShortOptionName(r)
		p.trace("short option -%c is %q", r, name)
		return name, true
	}
	return "", false
}

// unknownOptionName recognises option-shaped tokens that name nothing: a
// long-prefixed name, or a short-prefixed single letter. Negative numbers
// are not option-shaped.
func (p *Parser) unknownOptionName(tok string) (string, bool) {
	if name, ok := strings.CutPrefix(tok, p.cfg.LongPrefix); ok && name != "" {
		return name, true
	}
	if r, ok := p.shortRune(tok); ok && unicode.IsLetter(r) {
		return string(r), true
	}
	return "", false
}

func (p *Parser) shortRune(tok string) (rune, bool) {
	if strings.HasPrefix(tok, p.cfg.LongPrefix) {
		return 0, false
	}
	rest, ok := strings.CutPrefix(tok, p.cfg.ShortPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(rest)
	if size != len(rest) {
		return 0, false
	}
	return r, true
}

func (p *Parser) flagName(tmpl command.Template, tok string) (string, bool) {
	name := tok
	if p.cfg.FlagPrefix != "" {
		var ok bool
		if name, ok = strings.CutPrefix(tok, p.cfg.FlagPrefix); !ok {
			return "", false
		}
	}
	return name, tmpl.HasFlag(name)
}

func (p *Parser) parseOption(node *command.Node, ctx *command.ExecutionContext, name, raw string, hasValue bool) error {
	opt, err := node.GetOption(name)
	if err != nil {
		if p.cfg.SkipUnknownOption {
			p.trace("skipping unknown option %q", name)
			return nil
		}
		return p.fail(newParseError(ErrUnknownOption, node.Path(), name, nil))
	}

	if _, seen := ctx.Options[name]; seen {
		if p.cfg.SkipDuplicateOption {
			p.trace("skipping repeated option %q", name)
			return nil
		}
		return p.fail(newParseError(ErrDuplicateOption, node.Path(), name, nil))
	}

	var v value.Value
	if hasValue {
		v, err = value.Parse(opt.Type(), raw)
	} else {
		err = fmt.Errorf("%w: option %q has no value", value.ErrParse, name)
	}
	if err != nil {
		if p.cfg.SkipInvalidValueParse {
			p.trace("skipping option %q: %v", name, err)
			return nil
		}
		return p.fail(newParseError(ErrInvalidValueParse, node.Path(), fmt.Sprintf("option %q", name), err))
	}

	if opt.Constraint.IsValid(v) {
		p.trace("option %q = %v", name, v)
		ctx.Options[name] = v
		if opt.Required {
			ctx.RequiredOptionCount++
		}
		return nil
	}
	if opt.Required {
		return p.fail(newParseError(ErrInvalidOptionValue, node.Path(),
			fmt.Sprintf("%q for option %q, expected %s", raw, name, opt.Constraint), nil))
	}
	p.trace("option %q: %q is outside %s, ignored", name, raw, opt.Constraint)
	return nil
}

func (p *Parser) fail(err *ParseError) error {
	p.log.Error("%v", err)
	return err
}

func missingRequired(tmpl command.Template, ctx *command.ExecutionContext) []string {
	var missing []string
	for _, name := range tmpl.OptionNames() {
		if !tmpl.Options[name].Required {
			continue
		}
		if _, ok := ctx.Options[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
