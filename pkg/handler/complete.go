package handler

import (
	"sort"
	"strings"
)

// Complete suggests tokens that may follow tokens and start with partial.
// Subcommand names and aliases are offered until a token fails to resolve.
// The resolved command's flags and long options are offered unless they
// already appear among the remaining tokens.
func (h *Handler) Complete(tokens []string, partial string) []string {
	cfg := h.parser.Config()
	node, _, rest := h.parser.Resolve(h.root, tokens)

	used := make(map[string]bool, len(rest))
	for _, tok := range rest {
		used[tok] = true
	}

	var candidates []string
	if len(rest) == 0 {
		candidates = append(candidates, node.Children()...)
		for alias := range node.AliasMapping() {
			candidates = append(candidates, alias)
		}
	}
	tmpl := node.Template()
	for _, flag := range tmpl.Flags {
		candidates = append(candidates, cfg.FlagPrefix+flag)
	}
	for _, name := range tmpl.OptionNames() {
		candidates = append(candidates, cfg.LongPrefix+name)
	}

	var out []string
	for _, c := range candidates {
		if used[c] || !strings.HasPrefix(c, partial) {
			continue
		}
		used[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
