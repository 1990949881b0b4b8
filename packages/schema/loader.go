package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// nodeDoc is the serialized authoring form of a Node.
type nodeDoc struct {
	Type       string              `json:"type" yaml:"type"`
	Required   []string            `json:"required" yaml:"required"`
	Properties map[string]*nodeDoc `json:"properties" yaml:"properties"`
	Format     string              `json:"format" yaml:"format"`
	Items      *nodeDoc            `json:"items" yaml:"items"`
}

func (d *nodeDoc) toNode() *Node {
	if d == nil {
		return nil
	}
	n := &Node{
		Type:     Type(d.Type),
		Required: d.Required,
		Format:   d.Format,
		Items:    d.Items.toNode(),
	}
	if len(d.Properties) > 0 {
		n.Properties = make(map[string]*Node, len(d.Properties))
		for k, v := range d.Properties {
			n.Properties[k] = v.toNode()
		}
	}
	return n
}

// ParseJSON decodes a schema authored as JSON.
func ParseJSON(data []byte) (*Node, error) {
	var doc nodeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema JSON: %w", err)
	}
	return doc.toNode(), nil
}

// ParseYAML decodes a schema authored as YAML.
func ParseYAML(data []byte) (*Node, error) {
	var doc nodeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema YAML: %w", err)
	}
	return doc.toNode(), nil
}
