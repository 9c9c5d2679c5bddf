//go:build !fixtures_noyaml

package io

import (
	"fmt"

	ghyaml "github.com/ghodss/yaml"
	"gopkg.in/yaml.v3"

	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// YAMLSupported reports whether YAML support is compiled in.
const YAMLSupported = true

// DecodeYAML parses a single YAML document. Empty input decodes to nil.
func DecodeYAML(data []byte) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return v, nil
}

// DecodeYAMLInto decodes a YAML document into v through its JSON struct tags.
func DecodeYAMLInto(data []byte, v interface{}) error {
	if err := ghyaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode YAML: %w", err)
	}
	return nil
}

// YAMLRecordReader reads a YAML sequence of mappings, keeping key order.
type YAMLRecordReader struct {
	Encoding string
}

// Read implements RecordReader. An empty document gives no records.
func (yr *YAMLRecordReader) Read(path string) ([]Record, error) {
	logging.Logf(logging.Debug, "YAMLRecordReader reading file: %s", path)
	data, err := readDecoded(path, yr.Encoding)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML in '%s': %w", path, err)
	}
	records := make([]Record, 0)
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return records, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return records, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, dataErr(path, -1, "YAML data must be a list of mappings")
	}

	for index, item := range root.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			return nil, dataErr(path, index, "expected a mapping, found %s", item.ShortTag())
		}
		rec, err := mappingRecord(path, index, item, 0)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	logging.Logf(logging.Debug, "YAMLRecordReader loaded %d records from %s", len(records), path)
	return records, nil
}

// maxMergeDepth bounds nested << merges, which anchors can make cyclic.
const maxMergeDepth = 32

// mappingRecord turns a mapping node into a record. Fields brought in by <<
// merge keys come first; local fields override them, and among several
// merged mappings the earlier one wins.
func mappingRecord(path string, index int, node *yaml.Node, depth int) (Record, error) {
	if depth > maxMergeDepth {
		return Record{}, dataErr(path, index, "merge keys nested deeper than %d levels (line %d)", maxMergeDepth, node.Line)
	}
	rec := newRecord(len(node.Content) / 2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveAlias(node.Content[i])
		if !isMergeKey(keyNode) {
			continue
		}
		sources, err := mergeSources(path, index, node.Content[i+1])
		if err != nil {
			return Record{}, err
		}
		for _, src := range sources {
			merged, err := mappingRecord(path, index, src, depth+1)
			if err != nil {
				return Record{}, err
			}
			for _, key := range merged.Keys {
				if !rec.Has(key) {
					rec.set(key, merged.Values[key])
				}
			}
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := resolveAlias(node.Content[i]), node.Content[i+1]
		if isMergeKey(keyNode) {
			continue
		}
		if keyNode.Kind != yaml.ScalarNode {
			return Record{}, dataErr(path, index, "mapping keys must be scalars (line %d)", keyNode.Line)
		}
		var value interface{}
		if err := valueNode.Decode(&value); err != nil {
			return Record{}, fmt.Errorf("failed to decode YAML in '%s' at line %d: %w", path, valueNode.Line, err)
		}
		rec.set(keyNode.Value, value)
	}
	return rec, nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

// mergeSources returns the mappings named by the value of a << key: a
// mapping or a sequence of mappings.
func mergeSources(path string, index int, value *yaml.Node) ([]*yaml.Node, error) {
	value = resolveAlias(value)
	switch value.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{value}, nil
	case yaml.SequenceNode:
		sources := make([]*yaml.Node, 0, len(value.Content))
		for _, elem := range value.Content {
			elem = resolveAlias(elem)
			if elem.Kind != yaml.MappingNode {
				return nil, dataErr(path, index, "merge key at line %d must reference mappings, found %s", value.Line, elem.ShortTag())
			}
			sources = append(sources, elem)
		}
		return sources, nil
	}
	return nil, dataErr(path, index, "merge key at line %d must reference a mapping, found %s", value.Line, value.ShortTag())
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
