package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yuanlott/protograph/classify"
	"github.com/yuanlott/protograph/tree"
)

// Doc is the serializable form of one built tree.
type Doc struct {
	Message string    `json:"message" yaml:"message"`
	Fields  []NodeDoc `json:"fields" yaml:"fields"`
}

// NodeDoc mirrors tree.Node without descriptor handles, so the tree can be
// encoded as JSON or YAML.
type NodeDoc struct {
	Name      string    `json:"name" yaml:"name"`
	Kind      string    `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type      string    `json:"type,omitempty" yaml:"type,omitempty"`
	Oneof     string    `json:"oneof,omitempty" yaml:"oneof,omitempty"`
	KeyType   string    `json:"key_type,omitempty" yaml:"key_type,omitempty"`
	ValueType string    `json:"value_type,omitempty" yaml:"value_type,omitempty"`
	Group     bool      `json:"group,omitempty" yaml:"group,omitempty"`
	Recursive bool      `json:"recursive,omitempty" yaml:"recursive,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	Fields    []NodeDoc `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// ToDoc converts a built tree into its serializable form.
func ToDoc(title string, nodes []*tree.Node) Doc {
	return Doc{Message: title, Fields: nodeDocs(nodes)}
}

func nodeDocs(nodes []*tree.Node) []NodeDoc {
	out := make([]NodeDoc, 0, len(nodes))
	for _, n := range nodes {
		d := NodeDoc{
			Name:      n.Name,
			Oneof:     n.OneofGroup,
			Type:      n.Type,
			Recursive: n.Truncated,
			Fields:    nodeDocs(n.Children),
		}
		if n.IsGroup() {
			d.Group = true
			d.Kind = "oneof"
		} else {
			d.Kind = n.Kind.String()
		}
		if n.MapKey != nil {
			d.KeyType = classify.TypeName(n.MapKey)
		}
		if n.MapValue != nil {
			d.ValueType = classify.TypeName(n.MapValue)
		}
		if n.Err != nil {
			d.Error = n.Err.Error()
		}
		out = append(out, d)
	}
	return out
}

// JSON writes the tree as indented JSON.
func JSON(w io.Writer, title string, nodes []*tree.Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDoc(title, nodes)); err != nil {
		return fmt.Errorf("encoding tree as JSON: %w", err)
	}
	return nil
}

// YAML writes the tree as YAML.
func YAML(w io.Writer, title string, nodes []*tree.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToDoc(title, nodes)); err != nil {
		return fmt.Errorf("encoding tree as YAML: %w", err)
	}
	return enc.Close()
}
