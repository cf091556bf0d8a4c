package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuanlott/protograph/protopath"
)

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "root <file.proto>",
		Short: "Infer the proto import root for a .proto file",
		Long: `Root inspects the import statements of a .proto file and walks its
ancestor directories to find the one suitable as a protoc --proto_path
argument.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := protopath.FindRoot(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		},
	}
}
