// Package oneof partitions a message's fields into plain fields and named
// oneof alternative groups, so a presenter can nest alternatives under one
// group header instead of flattening them among ordinary fields.
package oneof

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Group is one oneof declaration and its member fields in declaration order.
type Group struct {
	Name   string
	Fields []protoreflect.FieldDescriptor
}

// Grouping is the result of partitioning a field list. Every field appears
// in exactly one partition, and relative declaration order is preserved
// within each.
type Grouping struct {
	Plain  []protoreflect.FieldDescriptor
	Groups []Group
}

// Partition walks fields once in declaration order. Fields with a genuine
// oneof back-reference join that oneof's group; everything else, including
// members of synthetic proto3-optional wrappers, is plain. Groups appear in
// order of their first member, and a oneof with no members never surfaces.
func Partition(fields protoreflect.FieldDescriptors) Grouping {
	var g Grouping
	index := make(map[protoreflect.Name]int)
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		od := fd.ContainingOneof()
		if od == nil || od.IsSynthetic() {
			g.Plain = append(g.Plain, fd)
			continue
		}
		at, ok := index[od.Name()]
		if !ok {
			at = len(g.Groups)
			index[od.Name()] = at
			g.Groups = append(g.Groups, Group{Name: string(od.Name())})
		}
		g.Groups[at].Fields = append(g.Groups[at].Fields, fd)
	}
	return g
}
