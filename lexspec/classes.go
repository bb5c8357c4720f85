package lexspec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/willieowens/lexgen/charset"
	"github.com/willieowens/lexgen/regex"
)

// LoadClasses populates the collection from a YAML mapping of class name to
// set pattern:
//
//	digit: "[0-9]"
//	hex:   "[0-9a-fA-F]"
//	consonant: "[^aeiou] in [a-z]"
//
// Patterns start with '[', so they must be quoted to keep YAML from reading
// them as flow sequences.
//
// Entries are processed in document order (via the yaml node tree, since a
// decoded Go map would lose it), so a pattern may reference classes defined
// above it.
func LoadClasses(data []byte, into *charset.Collection) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("classes file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("classes file: top level must be a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("class %s: pattern must be a string", key.Value)
		}
		node, err := regex.Parse(val.Value, into, key.Line)
		if err != nil {
			return fmt.Errorf("class %s: %w", key.Value, err)
		}
		set, ok := node.CharSet()
		if !ok {
			return fmt.Errorf("class %s: pattern %q does not define a character set", key.Value, val.Value)
		}
		into.Define(key.Value, set)
	}
	return nil
}
