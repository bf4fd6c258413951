package command

// The methods below make up the declaration grammar. Each returns the node it
// mutated, so a command is declared in one left-to-right expression:
//
//	root.Command("greet").
//		Alias("g").
//		Options(command.Opt("name", value.Any(value.TypeString)).Short('n').Required()).
//		Do(greet)
//
// Declaration errors are programming errors: they panic with a *StructuralError.

// Command returns the child called name, creating it first if needed.
func (n *Node) Command(name string) *Node {
	mustValidName("command", name)
	if !n.HasChild(name) {
		n.children[name] = newNode(n, name)
	}
	return n.children[name]
}

// Alias adds alternate names for n and registers them with n's parent.
func (n *Node) Alias(aliases ...string) *Node {
	for _, alias := range aliases {
		mustValidName("alias", alias)
		n.logger().Debug("adding alias %q for %q", alias, n.name)
		if !n.tmpl.HasAlias(alias) {
			n.tmpl.Aliases = append(n.tmpl.Aliases, alias)
		}
	}
	if n.parent != nil {
		n.parent.childUpdated(n.name)
	}
	return n
}

// Flags declares presence-only flags on n.
func (n *Node) Flags(names ...string) *Node {
	tmpl := n.tmpl.Clone()
	for _, name := range names {
		mustValidName("flag", name)
		tmpl.Flags = append(tmpl.Flags, name)
	}
	n.SetTemplate(tmpl)
	return n
}

// Args appends positional arguments to n, in order.
func (n *Node) Args(args ...Argument) *Node {
	tmpl := n.tmpl.Clone()
	for _, arg := range args {
		mustValidName("argument", arg.Name)
		tmpl.Args = append(tmpl.Args, arg)
	}
	n.SetTemplate(tmpl)
	return n
}

// Options declares options on n. A later declaration with the same name
// replaces the earlier one.
func (n *Node) Options(opts ...NamedOption) *Node {
	tmpl := n.tmpl.Clone()
	for _, opt := range opts {
		mustValidName("option", opt.Name)
		tmpl.Options[opt.Name] = opt.Option
	}
	n.SetTemplate(tmpl)
	return n
}

// Describe sets n's description.
func (n *Node) Describe(text string) *Node {
	n.tmpl.Description = text
	return n
}

// WithExecutor attaches e to n.
func (n *Node) WithExecutor(e Executor) *Node {
	n.executor = e
	return n
}

// Do attaches fn as n's executor.
func (n *Node) Do(fn func(ctx *ExecutionContext) int) *Node {
	return n.WithExecutor(ExecutorFunc(fn))
}
