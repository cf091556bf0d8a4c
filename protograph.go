package protograph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/yuanlott/protograph/loader"
	"github.com/yuanlott/protograph/render"
	"github.com/yuanlott/protograph/search"
	"github.com/yuanlott/protograph/tree"
)

// Format selects the output encoding for Explore.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q: %w", s, ErrInvalidConfig)
}

// Options configures one Explore call.
type Options struct {
	// Resolver supplies the message descriptors for Module. Required.
	Resolver loader.Resolver

	// Module is the identifier handed to the resolver: a file path, a
	// package name, or a message full name. Required.
	Module string

	// Message restricts output to one message, matched by full name or
	// by short name. Empty means every resolved top-level message.
	Message string

	// Search is an optional regular expression. Messages with no match
	// anywhere in their reachable graph are skipped entirely.
	Search string

	// FilterMatches additionally prunes non-matching branches inside the
	// trees that are shown.
	FilterMatches bool

	// Format selects the encoding; empty means text.
	Format Format

	// Out receives the rendered trees. Required.
	Out io.Writer

	// Logger is used for debug output. Nil means slog.Default().
	Logger *slog.Logger
}

func (o *Options) validate() error {
	switch {
	case o.Resolver == nil:
		return fmt.Errorf("resolver is required: %w", ErrInvalidConfig)
	case o.Module == "":
		return fmt.Errorf("module is required: %w", ErrInvalidConfig)
	case o.Out == nil:
		return fmt.Errorf("output writer is required: %w", ErrInvalidConfig)
	}
	var err error
	o.Format, err = ParseFormat(string(o.Format))
	return err
}

// Explore resolves a module, builds a tree per selected message, and
// renders each to opts.Out. Messages are emitted in full-name order for a
// stable listing across runs.
func Explore(ctx context.Context, opts Options) error {
	if err := opts.validate(); err != nil {
		return NewValidationError("Explore", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	msgs, err := opts.Resolver.Resolve(ctx, opts.Module)
	if err != nil {
		return NewResolutionError("Explore", err)
	}
	logger.Debug("module resolved", "module", opts.Module, "messages", len(msgs))

	if opts.Message != "" {
		msgs = selectMessage(msgs, opts.Message)
		if len(msgs) == 0 {
			return NewResolutionError("Explore",
				fmt.Errorf("%q in module %q: %w", opts.Message, opts.Module, ErrMessageNotFound))
		}
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].FullName() < msgs[j].FullName() })

	var matcher *search.Matcher
	if opts.Search != "" {
		matcher, err = search.Compile(opts.Search)
		if err != nil {
			return NewValidationError("Explore", err)
		}
	}

	for _, md := range msgs {
		if matcher != nil && !matcher.Message(md) {
			logger.Debug("no match, skipping", "message", md.FullName())
			continue
		}

		nodes, err := tree.Build(md)
		if err != nil {
			return NewSchemaError("Explore", err).WithContext(map[string]any{
				"message": string(md.FullName()),
			})
		}
		if matcher != nil && opts.FilterMatches {
			nodes = search.Filter(nodes, matcher)
		}

		title := string(md.FullName())
		switch opts.Format {
		case FormatJSON:
			err = render.JSON(opts.Out, title, nodes)
		case FormatYAML:
			err = render.YAML(opts.Out, title, nodes)
		default:
			err = render.Text(opts.Out, title, nodes)
		}
		if err != nil {
			return NewRenderError("Explore", err)
		}
	}
	return nil
}

func selectMessage(msgs []protoreflect.MessageDescriptor, name string) []protoreflect.MessageDescriptor {
	var out []protoreflect.MessageDescriptor
	for _, md := range msgs {
		if string(md.FullName()) == name || string(md.Name()) == name {
			out = append(out, md)
		}
	}
	return out
}
