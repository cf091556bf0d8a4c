package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"

	"github.com/yuanlott/protograph"
	"github.com/yuanlott/protograph/loader"
)

// showConfig holds the settings a config file may provide. Flags given on
// the command line win over the file.
type showConfig struct {
	Set        string `yaml:"set"`
	SearchPath string `yaml:"search_path"`
	Addr       string `yaml:"addr"`
	Format     string `yaml:"format"`
	NoColor    bool   `yaml:"no_color"`
}

func newShowCommand() *cobra.Command {
	var (
		cfgFile    string
		set        string
		searchPath string
		addr       string
		module     string
		message    string
		searchExpr string
		filter     bool
		format     string
		noColor    bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the field hierarchy of a module's messages",
		Long: `Show resolves a module identifier (a registered .proto file path, a
protobuf package, or a message full name) and renders the hierarchy of
each resolved message.

Descriptors come from one of three sources: a descriptor set file
(protoc --descriptor_set_out) via --set, a reflection-enabled gRPC
server via --addr, or the descriptors statically linked into this
binary when neither is given.`,
		Example: `  protograph show --set api.binpb -m shop.v1
  protograph show --set api.binpb -m shop.v1.Order --format yaml
  protograph show --addr localhost:50051 -m shop.v1.Order --search price --filter`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := showConfig{Format: "text"}
			if cfgFile != "" {
				data, err := os.ReadFile(cfgFile)
				if err != nil {
					return fmt.Errorf("reading config: %w", err)
				}
				if err := yaml.Unmarshal(data, &cfg); err != nil {
					return fmt.Errorf("parsing config %s: %w", cfgFile, err)
				}
			}
			flags := cmd.Flags()
			if flags.Changed("set") {
				cfg.Set = set
			}
			if flags.Changed("search-path") {
				cfg.SearchPath = searchPath
			}
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("no-color") {
				cfg.NoColor = noColor
			}

			if cfg.NoColor {
				color.NoColor = true
			}
			fm, err := protograph.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			resolver, cleanup, err := buildResolver(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			return protograph.Explore(ctx, protograph.Options{
				Resolver:      resolver,
				Module:        module,
				Message:       message,
				Search:        searchExpr,
				FilterMatches: filter,
				Format:        fm,
				Out:           cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&set, "set", "s", "", "descriptor set file (protoc --descriptor_set_out)")
	cmd.Flags().StringVar(&searchPath, "search-path", "", "directory to resolve a relative --set path under")
	cmd.Flags().StringVar(&addr, "addr", "", "address of a reflection-enabled gRPC server")
	cmd.Flags().StringVarP(&module, "module", "m", "", "module identifier: file path, package, or message full name")
	cmd.Flags().StringVar(&message, "message", "", "restrict output to one message")
	cmd.Flags().StringVar(&searchExpr, "search", "", "regular expression to match against the descriptor graph")
	cmd.Flags().BoolVar(&filter, "filter", false, "show only matching branches (requires --search)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, or yaml")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "resolution timeout")
	_ = cmd.MarkFlagRequired("module")

	return cmd
}

func buildResolver(cfg showConfig) (loader.Resolver, func(), error) {
	switch {
	case cfg.Set != "":
		ds, err := loader.NewDescriptorSet(cfg.Set, cfg.SearchPath)
		if err != nil {
			return nil, nil, err
		}
		return ds, func() {}, nil
	case cfg.Addr != "":
		r, err := loader.DialReflection(cfg.Addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	default:
		return loader.NewRegistry(), func() {}, nil
	}
}
