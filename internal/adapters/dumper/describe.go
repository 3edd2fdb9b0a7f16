package dumper

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"go.trai.ch/ormwire/internal/core/domain"
)

const none = "-"

// Describe renders the definition id resolves to as an aligned table. When id is an
// alias, the alias chain is listed first.
func (d *YAML) Describe(c *domain.Container, id string) (string, error) {
	target, err := c.Resolve(id)
	if err != nil {
		return "", err
	}
	def, _ := c.Definition(target)

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 8, 2, ' ', 0)
	row := func(label, value string) {
		fmt.Fprintf(w, "%s\t%s\n", label, value)
	}
	rows := func(label string, values []string) {
		if len(values) == 0 {
			row(label, none)
			return
		}
		for i, v := range values {
			if i > 0 {
				label = ""
			}
			row(label, v)
		}
	}

	row("Service ID", target)
	if target != id {
		row("Alias Chain", strings.Join(aliasChain(c, id), " -> "))
	}
	row("Class", cmp.Or(def.Class, none))
	row("Public", yesNo(def.Public))
	row("Lazy", yesNo(def.Lazy))
	row("Synthetic", yesNo(def.Synthetic))
	row("Factory", callable(def.Factory))
	row("Configurator", callable(def.Configurator))

	tags := make([]string, 0, len(def.Tags))
	for _, t := range def.Tags {
		if len(t.Attributes) == 0 {
			tags = append(tags, t.Name)
			continue
		}
		tags = append(tags, t.Name+" "+inline(map[string]any(t.Attributes)))
	}
	rows("Tags", tags)

	calls := make([]string, 0, len(def.Calls))
	for _, call := range def.Calls {
		calls = append(calls, call.Method+"("+joinValues(call.Args)+")")
	}
	rows("Calls", calls)

	args := make([]string, 0, len(def.Arguments))
	for i, arg := range def.Arguments {
		args = append(args, fmt.Sprintf("#%d %s", i, inline(arg)))
	}
	rows("Arguments", args)

	if err := w.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func aliasChain(c *domain.Container, id string) []string {
	chain := []string{id}
	for {
		alias, ok := c.Alias(chain[len(chain)-1])
		if !ok {
			return chain
		}
		chain = append(chain, alias.Target)
	}
}

func callable(c *domain.Callable) string {
	if c == nil {
		return none
	}
	if c.Service != nil {
		return c.Service.String() + "::" + c.Method
	}
	return c.Class + "::" + c.Method
}

// inline renders a value on a single line using the config file notation.
func inline(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case domain.Reference:
		return val.String()
	case *domain.Reference:
		if val == nil {
			return "null"
		}
		return val.String()
	case domain.Parameter:
		return val.String()
	case domain.TaggedIterator:
		return tagIterator + " " + val.Tag
	case domain.ServiceLocator:
		entries := make([]string, len(val.Entries))
		for i, e := range val.Entries {
			entries[i] = e.Key + ": " + e.Ref.String()
		}
		return tagLocator + " {" + strings.Join(entries, ", ") + "}"
	case *domain.ServiceLocator:
		if val == nil {
			return "null"
		}
		return inline(*val)
	case []any:
		return "[" + joinValues(val) + "]"
	case map[string]any:
		entries := make([]string, 0, len(val))
		for _, key := range slices.Sorted(maps.Keys(val)) {
			entries = append(entries, key+": "+inline(val[key]))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case domain.Attributes:
		return inline(map[string]any(val))
	default:
		return fmt.Sprint(val)
	}
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = inline(v)
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
