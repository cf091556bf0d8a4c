package loader

import (
	"context"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// Registry resolves modules against an in-process descriptor registry.
// Descriptors for every statically linked generated package are available
// through the global registry, so a zero-value Registry covers the common
// case of exploring types the binary already links.
type Registry struct {
	// Files is the registry to search. Nil means protoregistry.GlobalFiles.
	Files *protoregistry.Files
}

// NewRegistry returns a Registry over the global descriptor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Resolve(_ context.Context, module string) ([]protoreflect.MessageDescriptor, error) {
	files := r.Files
	if files == nil {
		files = protoregistry.GlobalFiles
	}
	return messagesIn(files, module)
}
