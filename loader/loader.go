// Package loader resolves module identifiers to compiled message
// descriptors.
//
// A module identifier may be a file path as registered with protoc
// ("explorer/v1/explorer.proto"), a protobuf package ("explorer.v1"), or a
// message full name ("explorer.v1.Envelope"). Three backends are provided:
// Registry looks descriptors up in an in-process registry (the statically
// linked analogue of importing a compiled module), DescriptorSet reads a
// serialized FileDescriptorSet from disk, and Reflection pulls descriptors
// from a running gRPC server. Whichever backend runs, the rest of the
// system only ever sees plain protoreflect handles.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

var (
	// ErrModuleNotFound indicates the module identifier matched no file,
	// package, or message.
	ErrModuleNotFound = errors.New("module not found")

	// ErrNoMessages indicates the module resolved but defines no message
	// descriptors at top level.
	ErrNoMessages = errors.New("module contains no message descriptors")
)

// Resolver resolves a module identifier to the message descriptors defined
// at its top level.
type Resolver interface {
	Resolve(ctx context.Context, module string) ([]protoreflect.MessageDescriptor, error)
}

// messagesIn resolves module within files, trying file path, then message
// full name, then package name. Package lookups are sorted by full name for
// a stable listing; single-file lookups keep declaration order.
func messagesIn(files *protoregistry.Files, module string) ([]protoreflect.MessageDescriptor, error) {
	if fd, err := files.FindFileByPath(module); err == nil {
		return topLevel(fd, module)
	}

	if d, err := files.FindDescriptorByName(protoreflect.FullName(module)); err == nil {
		if md, ok := d.(protoreflect.MessageDescriptor); ok {
			return []protoreflect.MessageDescriptor{md}, nil
		}
	}

	var out []protoreflect.MessageDescriptor
	found := false
	files.RangeFilesByPackage(protoreflect.FullName(module), func(fd protoreflect.FileDescriptor) bool {
		found = true
		msgs := fd.Messages()
		for i := 0; i < msgs.Len(); i++ {
			out = append(out, msgs.Get(i))
		}
		return true
	})
	if !found {
		return nil, fmt.Errorf("%q: %w", module, ErrModuleNotFound)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%q: %w", module, ErrNoMessages)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out, nil
}

func topLevel(fd protoreflect.FileDescriptor, module string) ([]protoreflect.MessageDescriptor, error) {
	msgs := fd.Messages()
	if msgs.Len() == 0 {
		return nil, fmt.Errorf("%q: %w", module, ErrNoMessages)
	}
	out := make([]protoreflect.MessageDescriptor, msgs.Len())
	for i := 0; i < msgs.Len(); i++ {
		out[i] = msgs.Get(i)
	}
	return out, nil
}
