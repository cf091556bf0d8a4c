// Package protograph renders the structural hierarchy of compiled protobuf
// message definitions without access to the original .proto source.
//
// Everything works off descriptor metadata: given a resolved message
// descriptor, protograph builds a cycle-safe tree of its fields, nested
// messages, maps, and oneof groups, classifying each field even where the
// compiled representation is ambiguous (maps arrive as synthetic entry
// message types, oneof membership is a back-reference, and proto3 optional
// scalars hide inside single-member synthetic oneofs).
//
// # Packages
//
//   - classify: resolves a field descriptor to its presentation kind
//   - oneof: partitions a field list into plain fields and oneof groups
//   - tree: builds the navigable, cycle-guarded hierarchy
//   - loader: resolves module identifiers to descriptors (in-process
//     registry, descriptor set files, or gRPC server reflection)
//   - search: regex matching and branch filtering over built trees
//   - render: text, JSON, and YAML presentation
//   - protopath: infers the import root of a .proto file
//
// # Usage
//
// The Explore entry point ties the pieces together:
//
//	ds, err := loader.NewDescriptorSet("api.binpb", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = protograph.Explore(ctx, protograph.Options{
//		Resolver: ds,
//		Module:   "shop.v1",
//		Message:  "shop.v1.Order",
//		Out:      os.Stdout,
//	})
//
// Each Build call is independent and the inputs are treated as immutable,
// so concurrent exploration of different root messages is safe.
package protograph
