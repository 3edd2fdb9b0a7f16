// Package schemafilter evaluates the compiled schema asset filters of a connection the
// way the runtime filter manager would.
package schemafilter

import (
	"slices"

	"github.com/dlclark/regexp2"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

// Predicate decides whether an asset name survives a filter.
type Predicate func(asset string) (bool, error)

// Evaluator interprets the filter chain installed on each connection configuration.
type Evaluator struct {
	graph  *domain.Container
	chains map[string][]Predicate
}

// New creates an Evaluator for graph.
func New(graph *domain.Container) *Evaluator {
	return &Evaluator{
		graph:  graph,
		chains: make(map[string][]Predicate),
	}
}

// Accepts reports whether every filter of connection keeps asset. A connection without
// a filter manager keeps everything.
func (e *Evaluator) Accepts(connection, asset string) (bool, error) {
	chain, err := e.chain(connection)
	if err != nil {
		return false, err
	}
	for _, keep := range chain {
		ok, err := keep(asset)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Filter returns the assets connection keeps, in input order.
func (e *Evaluator) Filter(connection string, assets []string) ([]string, error) {
	kept := make([]string, 0, len(assets))
	for _, asset := range assets {
		ok, err := e.Accepts(connection, asset)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, asset)
		}
	}
	return kept, nil
}

// Filters returns the ids of the filters installed on connection, in evaluation order.
func (e *Evaluator) Filters(connection string) ([]string, error) {
	refs, err := e.filterRefs(connection)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (e *Evaluator) chain(connection string) ([]Predicate, error) {
	if chain, ok := e.chains[connection]; ok {
		return chain, nil
	}

	refs, err := e.filterRefs(connection)
	if err != nil {
		return nil, err
	}
	chain := make([]Predicate, 0, len(refs))
	for _, ref := range refs {
		keep, err := e.predicate(ref.ID)
		if err != nil {
			return nil, zerr.With(err, "connection", connection)
		}
		chain = append(chain, keep)
	}
	e.chains[connection] = chain
	return chain, nil
}

// filterRefs reads the filter references of the manager installed on connection.
func (e *Evaluator) filterRefs(connection string) ([]domain.Reference, error) {
	config, err := e.graph.FindDefinition(domain.ConnectionConfigurationID(connection))
	if err != nil {
		return nil, zerr.With(err, "connection", connection)
	}
	calls := config.MethodCalls("setSchemaAssetsFilter")
	if len(calls) == 0 {
		return nil, nil
	}

	managerRef, ok := calls[len(calls)-1].Args[0].(domain.Reference)
	if !ok {
		return nil, nil
	}
	manager, err := e.graph.FindDefinition(managerRef.ID)
	if err != nil {
		return nil, err
	}
	arg, _ := manager.Argument(0)
	return slices.Collect(domain.References(arg)), nil
}

func (e *Evaluator) predicate(id string) (Predicate, error) {
	def, err := e.graph.FindDefinition(id)
	if err != nil {
		return nil, err
	}
	class, err := e.graph.ResolveClass(id)
	if err != nil {
		return nil, err
	}

	switch class {
	case domain.RegexSchemaAssetFilterClass:
		arg, _ := def.Argument(0)
		pattern, _ := arg.(string)
		pattern, err = e.graph.ResolveString(pattern)
		if err != nil {
			return nil, err
		}
		return Regex(pattern)

	case domain.BlacklistSchemaAssetFilterClass:
		arg, _ := def.Argument(0)
		list, _ := arg.([]any)
		return Blacklist(list), nil

	default:
		err := zerr.With(domain.ErrUnsupportedFilter, "service_id", id)
		return nil, zerr.With(err, "class", class)
	}
}

// Regex keeps the assets matching a delimited pattern such as "~^(?!t_)~i".
func Regex(pattern string) (Predicate, error) {
	body, flags, ok := domain.SplitPattern(pattern)
	if !ok {
		return nil, zerr.With(domain.ErrUnsupportedFilter, "pattern", pattern)
	}

	var opts regexp2.RegexOptions
	for _, flag := range flags {
		switch flag {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		case 'u', 'D':
		default:
			err := zerr.With(domain.ErrUnsupportedFilter, "pattern", pattern)
			return nil, zerr.With(err, "flag", string(flag))
		}
	}

	re, err := regexp2.Compile(body, opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrUnsupportedFilter.Error()), "pattern", pattern)
	}
	return func(asset string) (bool, error) {
		return re.MatchString(asset)
	}, nil
}

// Blacklist keeps every asset not named in list.
func Blacklist(list []any) Predicate {
	names := make(map[string]bool, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			names[s] = true
		}
	}
	return func(asset string) (bool, error) {
		return !names[asset], nil
	}
}
