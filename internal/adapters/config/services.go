package config

import (
	"strings"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	taggedIteratorTag = "!tagged_iterator"
	serviceLocatorTag = "!service_locator"
)

func convertServices(entries Ordered[yaml.Node]) ([]domain.ServiceConfig, error) {
	services := make([]domain.ServiceConfig, 0, len(entries))
	for _, e := range entries {
		svc, err := convertService(e.Key, &e.Value)
		if err != nil {
			return nil, zerr.With(err, "service_id", e.Key)
		}
		services = append(services, svc)
	}
	return services, nil
}

func convertService(id string, node *yaml.Node) (domain.ServiceConfig, error) {
	svc := domain.ServiceConfig{ID: id}

	if node.Kind == yaml.ScalarNode {
		switch {
		case isNull(node):
			svc.Class = id
		case strings.HasPrefix(node.Value, "@"):
			svc.Alias = strings.TrimPrefix(node.Value, "@")
		default:
			return svc, zerr.With(domain.ErrInvalidConfiguration, "field", "services."+id)
		}
		return svc, nil
	}

	var dto serviceDTO
	if err := decodeStrict(node, &dto); err != nil {
		return svc, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	svc.Alias = strings.TrimPrefix(dto.Alias, "@")
	svc.Class = dto.Class
	svc.Parent = dto.Parent
	svc.Abstract = dto.Abstract
	svc.Public = dto.Public
	svc.Lazy = dto.Lazy
	svc.Synthetic = dto.Synthetic
	if svc.Class == "" && svc.Parent == "" && svc.Alias == "" && !svc.Synthetic {
		svc.Class = id
	}

	if len(dto.Factory) > 0 {
		factory, err := convertFactory(dto.Factory)
		if err != nil {
			return svc, err
		}
		svc.Factory = factory
	}

	args, err := nodeValues(dto.Arguments)
	if err != nil {
		return svc, err
	}
	svc.Arguments = args

	for _, call := range dto.Calls {
		callArgs, err := nodeValues(call.Arguments)
		if err != nil {
			return svc, zerr.With(err, "method", call.Method)
		}
		if callArgs == nil {
			callArgs = []any{}
		}
		svc.Calls = append(svc.Calls, domain.MethodCall{Method: call.Method, Args: callArgs})
	}

	for i := range dto.Tags {
		tag, err := convertTag(&dto.Tags[i])
		if err != nil {
			return svc, err
		}
		svc.Tags = append(svc.Tags, tag)
	}

	return svc, nil
}

func convertFactory(parts []string) (*domain.Callable, error) {
	if len(parts) != 2 || parts[1] == "" {
		return nil, zerr.With(domain.ErrInvalidConfiguration, "field", "factory")
	}

	target, err := parseArgument(parts[0])
	if err != nil {
		return nil, err
	}
	if ref, ok := target.(domain.Reference); ok {
		return &domain.Callable{Service: &ref, Method: parts[1]}, nil
	}
	return &domain.Callable{Class: parts[0], Method: parts[1]}, nil
}

func convertTag(node *yaml.Node) (domain.Tag, error) {
	if node.Kind == yaml.ScalarNode {
		return domain.Tag{Name: node.Value, Attributes: domain.Attributes{}}, nil
	}

	var attrs map[string]any
	if err := node.Decode(&attrs); err != nil {
		return domain.Tag{}, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	name, _ := attrs["name"].(string)
	if name == "" {
		return domain.Tag{}, zerr.With(domain.ErrInvalidConfiguration, "field", "tags.name")
	}
	delete(attrs, "name")
	return domain.Tag{Name: name, Attributes: domain.Attributes(attrs)}, nil
}

func nodeValues(nodes []yaml.Node) ([]any, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]any, len(nodes))
	for i := range nodes {
		v, err := nodeValue(&nodes[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// nodeValue converts an argument node into a domain value, parsing string expressions.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)

	case yaml.ScalarNode:
		switch {
		case n.Tag == taggedIteratorTag:
			return domain.TaggedIterator{Tag: n.Value}, nil
		case n.Tag == "!!str" || n.Tag == "":
			return parseArgument(n.Value)
		default:
			var v any
			if err := n.Decode(&v); err != nil {
				return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
			}
			return v, nil
		}

	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, item := range n.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case yaml.MappingNode:
		if n.Tag == serviceLocatorTag {
			return serviceLocator(n)
		}
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil

	default:
		return nil, nil
	}
}

func serviceLocator(n *yaml.Node) (domain.ServiceLocator, error) {
	var loc domain.ServiceLocator
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		v, err := parseArgument(value.Value)
		if err != nil {
			return loc, err
		}
		ref, ok := v.(domain.Reference)
		if value.Kind != yaml.ScalarNode || !ok {
			return loc, zerr.With(domain.ErrInvalidArgumentExpression, "locator_key", key)
		}
		loc.Set(key, ref)
	}
	return loc, nil
}
