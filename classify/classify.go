// Package classify resolves the concrete kind of a protobuf field from its
// compiled descriptor.
//
// Compiled descriptors do not expose map<K,V> or oneof membership as
// first-class field kinds. A map field arrives as an ordinary repeated field
// whose message type is a synthetic two-field entry type, and oneof
// membership is a back-reference into the parent message's oneof table.
// proto3 optional scalars additionally compile down to single-member
// synthetic oneofs. Classification therefore pattern-matches these
// conventions in a fixed precedence order instead of trusting any single
// descriptor attribute.
package classify

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// Kind identifies how a field should be presented in a schema hierarchy.
type Kind int

const (
	// KindUnknown is the zero value; it is never produced for a valid
	// field descriptor.
	KindUnknown Kind = iota

	// KindScalar is a singular scalar field (string, int32, bytes, ...).
	KindScalar

	// KindEnum is a singular enum field.
	KindEnum

	// KindMessage is a singular embedded message field.
	KindMessage

	// KindRepeatedScalar is a repeated scalar or enum field.
	KindRepeatedScalar

	// KindRepeatedMessage is a repeated embedded message field.
	KindRepeatedMessage

	// KindMap is a map<K,V> field, compiled as a repeated synthetic
	// entry message.
	KindMap

	// KindOneofMember is a member of a genuine (multi-alternative) oneof
	// declaration. Synthetic proto3-optional wrappers never produce this
	// kind.
	KindOneofMember
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindScalar:          "scalar",
	KindEnum:            "enum",
	KindMessage:         "message",
	KindRepeatedScalar:  "repeated scalar",
	KindRepeatedMessage: "repeated message",
	KindMap:             "map",
	KindOneofMember:     "oneof member",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field classifies fd. The precedence order matters: a map field is also
// repeated, and a oneof member may carry any underlying kind, so rules are
// checked from most to least specific. A message flagged map-entry whose
// shape does not actually parse as key/value degrades to the next rule
// rather than failing.
func Field(fd protoreflect.FieldDescriptor) Kind {
	if fd == nil {
		return KindUnknown
	}
	if fd.Cardinality() == protoreflect.Repeated {
		if md := fd.Message(); md != nil {
			if md.IsMapEntry() && entryShape(md) {
				return KindMap
			}
			return KindRepeatedMessage
		}
		return KindRepeatedScalar
	}
	if od := fd.ContainingOneof(); od != nil && !od.IsSynthetic() {
		return KindOneofMember
	}
	switch {
	case fd.Message() != nil:
		return KindMessage
	case fd.Enum() != nil:
		return KindEnum
	}
	return KindScalar
}

// entryShape reports whether md has the key/value field pair a map entry
// type must carry.
func entryShape(md protoreflect.MessageDescriptor) bool {
	fields := md.Fields()
	return fields.Len() == 2 &&
		fields.ByName("key") != nil &&
		fields.ByName("value") != nil
}

// MapKey returns the key field of a map field's entry type, or nil when fd
// is not a map field.
func MapKey(fd protoreflect.FieldDescriptor) protoreflect.FieldDescriptor {
	if Field(fd) != KindMap {
		return nil
	}
	return fd.Message().Fields().ByName("key")
}

// MapValue returns the value field of a map field's entry type, or nil when
// fd is not a map field.
func MapValue(fd protoreflect.FieldDescriptor) protoreflect.FieldDescriptor {
	if Field(fd) != KindMap {
		return nil
	}
	return fd.Message().Fields().ByName("value")
}

// ScalarName returns the display name of a scalar protobuf kind, matching
// the descriptor.proto TYPE_* spelling: STRING, BOOL, SFIXED32, and so on.
func ScalarName(k protoreflect.Kind) string {
	return strings.ToUpper(k.String())
}

// TypeName returns a human-readable type label for fd: the upper-case
// scalar kind name, the full name for message and enum fields, or
// "map<K, V>" for map fields. Message-valued map values are labeled with
// the value type's full name.
func TypeName(fd protoreflect.FieldDescriptor) string {
	if fd == nil {
		return ""
	}
	if Field(fd) == KindMap {
		return fmt.Sprintf("map<%s, %s>", TypeName(MapKey(fd)), TypeName(MapValue(fd)))
	}
	if md := fd.Message(); md != nil {
		return string(md.FullName())
	}
	if ed := fd.Enum(); ed != nil {
		return string(ed.FullName())
	}
	return ScalarName(fd.Kind())
}
