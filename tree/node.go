package tree

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/yuanlott/protograph/classify"
)

// Node is one row in the rendered hierarchy: a single field, a named oneof
// group, or a marker for a truncated or broken branch. Nodes are immutable
// once Build returns; consumers that need a modified shape (search
// filtering, for instance) copy rather than mutate.
type Node struct {
	// Name is the field name, or the oneof name for group nodes.
	Name string

	// Kind is the classified field kind. Group nodes have KindUnknown;
	// use IsGroup to tell them apart.
	Kind classify.Kind

	// Type is the display type label: upper-case scalar name, message or
	// enum full name, or map<K, V>. Empty for group nodes.
	Type string

	// OneofGroup names the oneof this field belongs to. Empty for plain
	// fields and for the group node itself.
	OneofGroup string

	// MapKey and MapValue are the entry-type sides of a map field. Set
	// only when Kind is KindMap.
	MapKey   protoreflect.FieldDescriptor
	MapValue protoreflect.FieldDescriptor

	// Children holds the expanded nested fields, in declaration order
	// with oneof groups last. Empty unless the kind implies containment
	// of a message type.
	Children []*Node

	// Truncated marks a kind-preserving terminal produced when the
	// field's message type was already on the active expansion path.
	Truncated bool

	// Err carries a schema error for this branch. The node is still
	// rendered; the error never aborts the rest of the build.
	Err error

	group bool
}

// IsGroup reports whether the node is a synthetic oneof group header.
func (n *Node) IsGroup() bool { return n.group }

// SchemaError is a dangling or malformed descriptor reference discovered
// during tree construction. It is fatal for the affected branch only.
type SchemaError struct {
	Field string
	Type  protoreflect.FullName
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("field %s references unresolved type %s", e.Field, e.Type)
	}
	return fmt.Sprintf("field %s references an unresolved type", e.Field)
}
