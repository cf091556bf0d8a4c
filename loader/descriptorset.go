package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// DescriptorSet resolves modules against a serialized FileDescriptorSet,
// the output of protoc --descriptor_set_out (conventionally a .binpb or
// .pb file).
type DescriptorSet struct {
	files *protoregistry.Files
}

// NewDescriptorSet reads and indexes a descriptor set file. A relative path
// is additionally tried under searchPath when it does not resolve on its
// own; searchPath may be empty.
func NewDescriptorSet(path, searchPath string) (*DescriptorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil && searchPath != "" && !filepath.IsAbs(path) {
		var joinedErr error
		data, joinedErr = os.ReadFile(filepath.Join(searchPath, path))
		if joinedErr == nil {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("reading descriptor set: %w", err)
	}

	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing descriptor set %s: %w", path, err)
	}

	files, err := protodesc.NewFiles(&set)
	if err != nil {
		return nil, fmt.Errorf("building descriptors from %s: %w", path, err)
	}
	slog.Debug("descriptor set loaded", "path", path, "files", files.NumFiles())
	return &DescriptorSet{files: files}, nil
}

func (d *DescriptorSet) Resolve(_ context.Context, module string) ([]protoreflect.MessageDescriptor, error) {
	return messagesIn(d.files, module)
}
