package command

import (
	"sort"
	"strings"

	"github.com/steinsut/comad/pkg/logging"
)

// Node is one command in the tree. A node owns its children; each child keeps
// a pointer to its parent so that schema changes can be propagated upwards.
//
// Nodes are not safe for concurrent use. The tree must not be mutated while
// an invocation is traversing it.
type Node struct {
	name     string
	parent   *Node
	children map[string]*Node

	// aliasToName maps each child alias to the child's canonical name.
	aliasToName map[string]string
	// shortToLong maps the short form of this node's own options to their long names.
	shortToLong map[rune]string

	tmpl     Template
	executor Executor
	required int

	log logging.Logger
}

// NewRoot creates an unnamed root node.
func NewRoot() *Node {
	return newNode(nil, "")
}

// NewNode creates a detached node configured with a template and executor.
func NewNode(tmpl Template, executor Executor) *Node {
	n := newNode(nil, "")
	n.SetTemplate(tmpl)
	n.executor = executor
	return n
}

func newNode(parent *Node, name string) *Node {
	return &Node{
		name:        name,
		parent:      parent,
		children:    make(map[string]*Node),
		aliasToName: make(map[string]string),
		shortToLong: make(map[rune]string),
	}
}

// SetLogger installs the logger used for tree diagnostics. Children without
// their own logger use the nearest ancestor's.
func (n *Node) SetLogger(l logging.Logger) {
	n.log = l
}

func (n *Node) logger() logging.Logger {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.log != nil {
			return cur.log
		}
	}
	return logging.Nop()
}

// Name returns the canonical name the parent knows this node by. The root's name is empty.
func (n *Node) Name() string { return n.name }

// Path returns the names from the root down to n, separated by spaces.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

// HasParent reports whether n is attached to a parent.
func (n *Node) HasParent() bool { return n.parent != nil }

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// AddNode creates an empty child. It returns false without changing anything
// if a child with that exact name already exists.
func (n *Node) AddNode(name string) (bool, error) {
	if err := ValidateName("command", name); err != nil {
		return false, err
	}
	if n.HasChild(name) {
		return false, nil
	}
	n.children[name] = newNode(n, name)
	return true, nil
}

// AddCommand creates a child and configures it with tmpl and executor.
func (n *Node) AddCommand(name string, tmpl Template, executor Executor) (bool, error) {
	if err := tmpl.Validate(); err != nil {
		return false, err
	}
	added, err := n.AddNode(name)
	if !added {
		return false, err
	}
	n.children[name].SetCommand(tmpl, executor)
	return true, nil
}

// HasChild reports whether a child with exactly this canonical name exists.
// Aliases are not consulted.
func (n *Node) HasChild(name string) bool {
	_, ok := n.children[name]
	return ok
}

// GetChild returns the child with this canonical name.
func (n *Node) GetChild(name string) (*Node, error) {
	child, ok := n.children[name]
	if !ok {
		return nil, &LookupError{Kind: "command", Name: name}
	}
	return child, nil
}

// Children returns the canonical child names in sorted order.
func (n *Node) Children() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasChildAlias reports whether alias is registered for one of n's children.
func (n *Node) HasChildAlias(alias string) bool {
	_, ok := n.aliasToName[alias]
	return ok
}

// ChildNameFromAlias resolves a child alias to the child's canonical name.
func (n *Node) ChildNameFromAlias(alias string) (string, error) {
	name, ok := n.aliasToName[alias]
	if !ok {
		return "", &LookupError{Kind: "alias", Name: alias}
	}
	return name, nil
}

// AliasMapping returns a copy of the alias index.
func (n *Node) AliasMapping() map[string]string {
	out := make(map[string]string, len(n.aliasToName))
	for alias, name := range n.aliasToName {
		out[alias] = name
	}
	return out
}

// HasOption reports whether n declares an option with this long name.
func (n *Node) HasOption(name string) bool {
	_, ok := n.tmpl.Options[name]
	return ok
}

// GetOption returns the option declared under this long name.
func (n *Node) GetOption(name string) (Option, error) {
	opt, ok := n.tmpl.Options[name]
	if !ok {
		return Option{}, &LookupError{Kind: "option", Name: name}
	}
	return opt, nil
}

// HasShortOption reports whether one of n's options uses r as its short form.
func (n *Node) HasShortOption(r rune) bool {
	_, ok := n.shortToLong[r]
	return ok
}

// ShortOptionName returns the long name of the option whose short form is r.
func (n *Node) ShortOptionName(r rune) (string, error) {
	name, ok := n.shortToLong[r]
	if !ok {
		return "", &LookupError{Kind: "short option", Name: string(r)}
	}
	return name, nil
}

// ShortOptionMapping returns a copy of the short option index.
func (n *Node) ShortOptionMapping() map[rune]string {
	out := make(map[rune]string, len(n.shortToLong))
	for r, name := range n.shortToLong {
		out[r] = name
	}
	return out
}

// RequiredOptionCount returns how many of n's options are required.
func (n *Node) RequiredOptionCount() int { return n.required }

// Template returns a copy of n's schema.
func (n *Node) Template() Template { return n.tmpl.Clone() }

// SetTemplate replaces n's schema. The parent's alias index and n's own short
// option index and required count are rebuilt from the new schema.
func (n *Node) SetTemplate(tmpl Template) {
	n.tmpl = tmpl.Clone()
	if n.parent != nil {
		n.parent.childUpdated(n.name)
	}
	n.rebuildOptionIndex()
}

func (n *Node) rebuildOptionIndex() {
	n.shortToLong = make(map[rune]string)
	n.required = 0
	for _, name := range n.tmpl.OptionNames() {
		opt := n.tmpl.Options[name]
		if opt.Short != 0 {
			if _, taken := n.shortToLong[opt.Short]; taken {
				n.logger().Debug("short option -%c of %q already maps to %q", opt.Short, name, n.shortToLong[opt.Short])
			} else {
				n.shortToLong[opt.Short] = name
			}
		}
		if opt.Required {
			n.required++
		}
	}
}

// Executor returns the attached executor, or nil.
func (n *Node) Executor() Executor { return n.executor }

// SetExecutor attaches an executor. A nil executor detaches it.
func (n *Node) SetExecutor(e Executor) { n.executor = e }

// SetCommand sets both the schema and the executor.
func (n *Node) SetCommand(tmpl Template, e Executor) {
	n.SetTemplate(tmpl)
	n.SetExecutor(e)
}

// Remove deletes a child given its canonical name or one of its aliases,
// along with every alias that points at it. It reports whether a child was removed.
func (n *Node) Remove(nameOrAlias string) bool {
	name := nameOrAlias
	if canonical, ok := n.aliasToName[nameOrAlias]; ok {
		name = canonical
	}
	child, ok := n.children[name]
	if !ok {
		return false
	}
	for alias, owner := range n.aliasToName {
		if owner == name {
			delete(n.aliasToName, alias)
		}
	}
	delete(n.children, name)
	child.parent = nil
	return true
}

// Walk calls fn for n and every descendant, depth first, children in sorted
// order. Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, name := range n.Children() {
		n.children[name].Walk(fn)
	}
}

// childUpdated re-synchronises the alias index after the named child's alias
// set changed. Aliases the child no longer declares are dropped. An alias
// that already points at a different child is removed from this child's
// declared set, but the index entry is overwritten to point at this child.
func (n *Node) childUpdated(childName string) {
	child, ok := n.children[childName]
	if !ok {
		return
	}

	for alias, owner := range n.aliasToName {
		if owner == childName && !child.tmpl.HasAlias(alias) {
			delete(n.aliasToName, alias)
		}
	}

	for _, alias := range append([]string(nil), child.tmpl.Aliases...) {
		owner, taken := n.aliasToName[alias]
		switch {
		case !taken:
			n.aliasToName[alias] = childName
		case owner != childName:
			n.logger().Debug("alias %q of %q already belongs to %q", alias, childName, owner)
			child.tmpl.Aliases = remove(child.tmpl.Aliases, alias)
			n.aliasToName[alias] = childName
		}
	}
}
