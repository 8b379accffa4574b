package mapping

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a single string, a comma-separated string or a
// sequence of strings. Blank entries are dropped and duplicates keep their
// first position.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	var raw []string

	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		raw = strings.Split(str, ",")
	case yaml.SequenceNode:
		if err := node.Decode(&raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: expected string or array", node.Line)
	}

	out := StringOrArray{}

	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}

	*s = out

	return nil
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// UnmarshalYAML implements custom YAML unmarshaling for MatcherList.
// Accepts:
//   - Mapping: {dog: Dog, cat: Cat} (order preserved)
//   - Sequence: [{tag: dog, type: Dog}]
func (m *MatcherList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(MatcherList, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: matcher must map a tag to a type name", key.Line)
			}

			out = append(out, Matcher{Tag: key.Value, Type: val.Value})
		}

		*m = out

		return nil

	case yaml.SequenceNode:
		var arr []Matcher

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*m = arr

		return nil

	default:
		return fmt.Errorf("expected mapping or array of matchers, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for MatcherList.
// Outputs a mapping node so that declaration order survives a round trip.
func (m MatcherList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, mt := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: mt.Tag},
			&yaml.Node{Kind: yaml.ScalarNode, Value: mt.Type},
		)
	}

	return node, nil
}
