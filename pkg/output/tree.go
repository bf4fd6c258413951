package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/steinsut/comad/pkg/command"
)

// RenderTree writes the command tree under root as an indented pterm tree.
// Each line shows the command name, its aliases and its schema.
func RenderTree(w io.Writer, root *command.Node, title string) error {
	tree := pterm.TreeNode{Text: title, Children: treeChildren(root)}
	rendered, err := pterm.DefaultTree.WithRoot(tree).Srender()
	if err != nil {
		return fmt.Errorf("failed to render tree: %w", err)
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}

func treeChildren(n *command.Node) []pterm.TreeNode {
	var nodes []pterm.TreeNode
	for _, name := range n.Children() {
		child, err := n.GetChild(name)
		if err != nil {
			continue
		}
		nodes = append(nodes, pterm.TreeNode{
			Text:     describeNode(child),
			Children: treeChildren(child),
		})
	}
	return nodes
}

// describeNode summarises a node on one line, e.g.
// "greet (g) --name <string>! -c/--count <int in [0, 100]> [loud] <target:string>".
func describeNode(n *command.Node) string {
	tmpl := n.Template()
	parts := []string{n.Name()}
	if len(tmpl.Aliases) > 0 {
		parts = append(parts, "("+strings.Join(tmpl.Aliases, ", ")+")")
	}

	shorts := make(map[string]rune)
	for r, long := range n.ShortOptionMapping() {
		shorts[long] = r
	}
	for _, name := range tmpl.OptionNames() {
		opt := tmpl.Options[name]
		label := "--" + name
		if r, ok := shorts[name]; ok {
			label = fmt.Sprintf("-%c/--%s", r, name)
		}
		label += " <" + opt.Constraint.String() + ">"
		if opt.Required {
			label += "!"
		}
		parts = append(parts, label)
	}

	flags := append([]string(nil), tmpl.Flags...)
	sort.Strings(flags)
	for _, flag := range flags {
		parts = append(parts, "["+flag+"]")
	}
	for _, arg := range tmpl.Args {
		parts = append(parts, fmt.Sprintf("<%s:%s>", arg.Name, arg.Type))
	}
	if n.Executor() == nil {
		parts = append(parts, "(no executor)")
	}
	if tmpl.Description != "" {
		parts = append(parts, "- "+tmpl.Description)
	}
	return strings.Join(parts, " ")
}
