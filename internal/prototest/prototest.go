// Package prototest constructs in-memory file descriptors for tests, so no
// protoc invocation is needed at test time.
package prototest

import (
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// FileProto returns the descriptor proto of the shared fixture file
// explorer/v1/explorer.proto. The file exercises every classification the
// explorer has to handle: plain scalars, maps with scalar and message
// values, nested messages, a genuine oneof, a synthetic proto3 optional,
// repeated scalars and messages, an enum, and direct plus mutual recursion.
func FileProto() *descriptorpb.FileDescriptorProto {
	body := &descriptorpb.DescriptorProto{
		Name: proto.String("Body"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("note", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("count", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
		},
	}

	envelope := &descriptorpb.DescriptorProto{
		Name: proto.String("Envelope"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			repeatedMessageField("labels", 2, ".explorer.v1.Envelope.LabelsEntry"),
			messageField("payload", 3, ".explorer.v1.Body"),
			oneofField(scalarField("text", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING), 0),
			oneofField(scalarField("binary", 5, descriptorpb.FieldDescriptorProto_TYPE_BYTES), 0),
			optionalField(scalarField("note", 6, descriptorpb.FieldDescriptorProto_TYPE_STRING), 1),
			repeatedScalarField("numbers", 7, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			repeatedMessageField("attachments", 8, ".explorer.v1.Body"),
			enumField("color", 9, ".explorer.v1.Color"),
			repeatedMessageField("parts", 10, ".explorer.v1.Envelope.PartsEntry"),
		},
		NestedType: []*descriptorpb.DescriptorProto{
			mapEntry("LabelsEntry",
				scalarField("value", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
			mapEntry("PartsEntry",
				messageField("value", 2, ".explorer.v1.Body")),
		},
		OneofDecl: []*descriptorpb.OneofDescriptorProto{
			{Name: proto.String("content")},
			{Name: proto.String("_note")},
		},
	}

	node := &descriptorpb.DescriptorProto{
		Name: proto.String("Node"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			repeatedMessageField("children", 2, ".explorer.v1.Node"),
		},
	}

	ping := &descriptorpb.DescriptorProto{
		Name: proto.String("Ping"),
		Field: []*descriptorpb.FieldDescriptorProto{
			messageField("pong", 1, ".explorer.v1.Pong"),
		},
	}
	pong := &descriptorpb.DescriptorProto{
		Name: proto.String("Pong"),
		Field: []*descriptorpb.FieldDescriptorProto{
			messageField("ping", 1, ".explorer.v1.Ping"),
		},
	}

	color := &descriptorpb.EnumDescriptorProto{
		Name: proto.String("Color"),
		Value: []*descriptorpb.EnumValueDescriptorProto{
			{Name: proto.String("COLOR_UNSPECIFIED"), Number: proto.Int32(0)},
			{Name: proto.String("COLOR_RED"), Number: proto.Int32(1)},
		},
	}

	return &descriptorpb.FileDescriptorProto{
		Name:        proto.String("explorer/v1/explorer.proto"),
		Package:     proto.String("explorer.v1"),
		Syntax:      proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{body, envelope, node, ping, pong},
		EnumType:    []*descriptorpb.EnumDescriptorProto{color},
	}
}

// EnumOnlyFileProto returns a file that defines an enum but no messages.
func EnumOnlyFileProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("explorer/v1/units.proto"),
		Package: proto.String("explorer.units"),
		Syntax:  proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Unit"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("UNIT_UNSPECIFIED"), Number: proto.Int32(0)},
			},
		}},
	}
}

// File builds the fixture file descriptor, failing the test on error.
func File(t testing.TB) protoreflect.FileDescriptor {
	t.Helper()
	fd, err := protodesc.NewFile(FileProto(), nil)
	if err != nil {
		t.Fatalf("building fixture descriptor: %v", err)
	}
	return fd
}

// Message returns a top-level fixture message by short name.
func Message(t testing.TB, name string) protoreflect.MessageDescriptor {
	t.Helper()
	md := File(t).Messages().ByName(protoreflect.Name(name))
	if md == nil {
		t.Fatalf("fixture message %q not found", name)
	}
	return md
}

// FieldByName returns a named field of a top-level fixture message.
func FieldByName(t testing.TB, message, field string) protoreflect.FieldDescriptor {
	t.Helper()
	fd := Message(t, message).Fields().ByName(protoreflect.Name(field))
	if fd == nil {
		t.Fatalf("fixture field %s.%s not found", message, field)
	}
	return fd
}

func scalarField(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func repeatedScalarField(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, num, typ)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func messageField(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, num, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = proto.String(typeName)
	return f
}

func repeatedMessageField(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := messageField(name, num, typeName)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func enumField(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, num, descriptorpb.FieldDescriptorProto_TYPE_ENUM)
	f.TypeName = proto.String(typeName)
	return f
}

func oneofField(f *descriptorpb.FieldDescriptorProto, oneofIndex int32) *descriptorpb.FieldDescriptorProto {
	f.OneofIndex = proto.Int32(oneofIndex)
	return f
}

func optionalField(f *descriptorpb.FieldDescriptorProto, oneofIndex int32) *descriptorpb.FieldDescriptorProto {
	f.OneofIndex = proto.Int32(oneofIndex)
	f.Proto3Optional = proto.Bool(true)
	return f
}

func mapEntry(name string, value *descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String(name),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			value,
		},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
}
