package loader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	reflectpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Reflection resolves modules against a gRPC server exposing server
// reflection v1. The module identifier must be a symbol full name or a
// registered .proto file path; bare package names cannot be enumerated over
// the reflection protocol.
type Reflection struct {
	conn *grpc.ClientConn
}

// DialReflection connects to a reflection-enabled gRPC server. Callers own
// the connection lifetime via Close.
func DialReflection(target string, opts ...grpc.DialOption) (*Reflection, error) {
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", target, err)
	}
	return &Reflection{conn: conn}, nil
}

// Close releases the underlying connection.
func (r *Reflection) Close() error {
	return r.conn.Close()
}

func (r *Reflection) Resolve(ctx context.Context, module string) ([]protoreflect.MessageDescriptor, error) {
	stream, err := reflectpb.NewServerReflectionClient(r.conn).ServerReflectionInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening reflection stream: %w", err)
	}
	defer stream.CloseSend()

	var req *reflectpb.ServerReflectionRequest
	if strings.HasSuffix(module, ".proto") {
		req = fileByFilename(module)
	} else {
		req = fileContainingSymbol(module)
	}
	raw, err := fetch(stream, req)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", module, err)
	}

	// Servers send transitive dependencies along with the requested file,
	// but that is not guaranteed; chase any imports still missing.
	protos := make(map[string]*descriptorpb.FileDescriptorProto)
	if err := addRaw(protos, raw); err != nil {
		return nil, err
	}
	for {
		missing := missingDeps(protos)
		if len(missing) == 0 {
			break
		}
		progressed := false
		for _, dep := range missing {
			raw, err := fetch(stream, fileByFilename(dep))
			if err != nil {
				return nil, fmt.Errorf("resolving import %q: %w", dep, err)
			}
			if err := addRaw(protos, raw); err != nil {
				return nil, err
			}
			if _, ok := protos[dep]; ok {
				progressed = true
			}
		}
		if !progressed {
			return nil, fmt.Errorf("server did not supply imports %v for %q", missing, module)
		}
	}

	set := &descriptorpb.FileDescriptorSet{}
	for _, fdp := range protos {
		set.File = append(set.File, fdp)
	}
	files, err := protodesc.NewFiles(set)
	if err != nil {
		return nil, fmt.Errorf("building descriptors for %q: %w", module, err)
	}
	slog.Debug("descriptors fetched over reflection", "module", module, "files", files.NumFiles())
	return messagesIn(files, module)
}

func fetch(stream reflectpb.ServerReflection_ServerReflectionInfoClient, req *reflectpb.ServerReflectionRequest) ([][]byte, error) {
	if err := stream.Send(req); err != nil {
		return nil, fmt.Errorf("reflection request: %w", err)
	}
	resp, err := stream.Recv()
	if err != nil {
		return nil, fmt.Errorf("reflection response: %w", err)
	}
	if er := resp.GetErrorResponse(); er != nil {
		return nil, fmt.Errorf("%s: %w", er.GetErrorMessage(), ErrModuleNotFound)
	}
	return resp.GetFileDescriptorResponse().GetFileDescriptorProto(), nil
}

func addRaw(protos map[string]*descriptorpb.FileDescriptorProto, raw [][]byte) error {
	for _, b := range raw {
		fdp := &descriptorpb.FileDescriptorProto{}
		if err := proto.Unmarshal(b, fdp); err != nil {
			return fmt.Errorf("parsing reflected descriptor: %w", err)
		}
		if _, ok := protos[fdp.GetName()]; !ok {
			protos[fdp.GetName()] = fdp
		}
	}
	return nil
}

func missingDeps(protos map[string]*descriptorpb.FileDescriptorProto) []string {
	var missing []string
	for _, fdp := range protos {
		for _, dep := range fdp.GetDependency() {
			if _, ok := protos[dep]; !ok {
				missing = append(missing, dep)
			}
		}
	}
	return missing
}

func fileByFilename(name string) *reflectpb.ServerReflectionRequest {
	return &reflectpb.ServerReflectionRequest{
		MessageRequest: &reflectpb.ServerReflectionRequest_FileByFilename{FileByFilename: name},
	}
}

func fileContainingSymbol(symbol string) *reflectpb.ServerReflectionRequest {
	return &reflectpb.ServerReflectionRequest{
		MessageRequest: &reflectpb.ServerReflectionRequest_FileContainingSymbol{FileContainingSymbol: symbol},
	}
}
