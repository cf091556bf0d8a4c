// Package tree builds a navigable, cycle-safe hierarchy of Node records
// from a compiled message descriptor.
//
// Traversal is depth-first in field declaration order, which is user
// visible and therefore never reordered. Nested message expansion is
// guarded by a visited set scoped to the active path: a message type may
// appear at most once on any root-to-leaf path, so recursive and mutually
// recursive schemas terminate, while a type referenced from two sibling
// branches still expands fully in both. The builder does no I/O; descriptor
// access is in-memory metadata lookup, and every Build call is independent,
// so concurrent builds over different roots are safe.
package tree

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/yuanlott/protograph/classify"
	"github.com/yuanlott/protograph/oneof"
)

var (
	// ErrNilRoot is returned when Build is called without a descriptor.
	ErrNilRoot = errors.New("nil message descriptor")

	// ErrMapEntryRoot is returned when Build is called on a synthetic
	// map entry type. Entry types are only ever consumed as the value
	// side of a map field.
	ErrMapEntryRoot = errors.New("map entry types cannot be expanded directly")
)

// Build returns one node per top-level entry of root: plain fields in
// declaration order, followed by one group node per genuine oneof. The
// returned nodes are fresh and independent; callers may cache them keyed by
// the root's full name.
func Build(root protoreflect.MessageDescriptor) ([]*Node, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if root.IsMapEntry() {
		return nil, fmt.Errorf("%s: %w", root.FullName(), ErrMapEntryRoot)
	}
	b := &builder{path: make(map[protoreflect.FullName]bool)}
	b.path[root.FullName()] = true
	return b.message(root), nil
}

type builder struct {
	// path holds the message types on the active expansion path.
	path map[protoreflect.FullName]bool
}

func (b *builder) message(md protoreflect.MessageDescriptor) []*Node {
	parts := oneof.Partition(md.Fields())
	nodes := make([]*Node, 0, len(parts.Plain)+len(parts.Groups))
	for _, fd := range parts.Plain {
		nodes = append(nodes, b.field(fd, ""))
	}
	for _, grp := range parts.Groups {
		gn := &Node{Name: grp.Name, group: true}
		for _, fd := range grp.Fields {
			gn.Children = append(gn.Children, b.field(fd, grp.Name))
		}
		nodes = append(nodes, gn)
	}
	return nodes
}

func (b *builder) field(fd protoreflect.FieldDescriptor, group string) *Node {
	kind := classify.Field(fd)
	n := &Node{
		Name:       string(fd.Name()),
		Kind:       kind,
		Type:       classify.TypeName(fd),
		OneofGroup: group,
	}

	switch kind {
	case classify.KindMap:
		n.MapKey = classify.MapKey(fd)
		n.MapValue = classify.MapValue(fd)
		if n.MapValue != nil && n.MapValue.Message() != nil {
			b.expand(n, n.MapValue.Message())
		}
	case classify.KindMessage, classify.KindRepeatedMessage:
		b.expand(n, fd.Message())
	case classify.KindOneofMember:
		// Message-typed alternatives expand like plain message fields.
		if md := fd.Message(); md != nil {
			b.expand(n, md)
		}
	}

	// Enum references dangle the same way message references do, on any
	// path: singular, repeated, inside a oneof, or as a map value.
	if n.Err == nil {
		ed := fd.Enum()
		if ed == nil && n.MapValue != nil {
			ed = n.MapValue.Enum()
		}
		if ed != nil && ed.IsPlaceholder() {
			n.Err = &SchemaError{Field: n.Name, Type: ed.FullName()}
		}
	}
	return n
}

// expand fills n.Children from md's fields, truncating on recursion and
// surfacing unresolved references as error nodes.
func (b *builder) expand(n *Node, md protoreflect.MessageDescriptor) {
	if md == nil || md.IsPlaceholder() {
		err := &SchemaError{Field: n.Name}
		if md != nil {
			err.Type = md.FullName()
		}
		n.Err = err
		return
	}
	name := md.FullName()
	if b.path[name] {
		n.Truncated = true
		n.Children = nil
		return
	}
	b.path[name] = true
	n.Children = b.message(md)
	delete(b.path, name)
}
