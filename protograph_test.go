package protograph

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/yuanlott/protograph/internal/prototest"
	"github.com/yuanlott/protograph/loader"
	"github.com/yuanlott/protograph/render"
)

func fixtureResolver(t *testing.T) loader.Resolver {
	t.Helper()
	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{prototest.FileProto()},
	}
	data, err := proto.Marshal(set)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "fixture.binpb")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	ds, err := loader.NewDescriptorSet(path, "")
	require.NoError(t, err)
	return ds
}

func TestExploreText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	err := Explore(context.Background(), Options{
		Resolver: fixtureResolver(t),
		Module:   "explorer.v1",
		Message:  "explorer.v1.Envelope",
		Out:      &buf,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "explorer.v1.Envelope")
	assert.Contains(t, out, "id: STRING")
	assert.Contains(t, out, "labels: map<STRING, STRING>")
	assert.Contains(t, out, "payload: explorer.v1.Body")
	assert.Contains(t, out, "(oneof) content")

	// Declaration order survives end to end.
	idAt := strings.Index(out, "id: STRING")
	labelsAt := strings.Index(out, "labels: map")
	payloadAt := strings.Index(out, "payload:")
	contentAt := strings.Index(out, "(oneof) content")
	assert.True(t, idAt < labelsAt && labelsAt < payloadAt && payloadAt < contentAt,
		"top-level entries out of order:\n%s", out)
}

func TestExploreJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Explore(context.Background(), Options{
		Resolver: fixtureResolver(t),
		Module:   "explorer.v1.Envelope",
		Format:   FormatJSON,
		Out:      &buf,
	})
	require.NoError(t, err)

	var doc render.Doc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "explorer.v1.Envelope", doc.Message)
	assert.Len(t, doc.Fields, 9)
}

func TestExploreAllMessagesSorted(t *testing.T) {
	var buf bytes.Buffer
	err := Explore(context.Background(), Options{
		Resolver: fixtureResolver(t),
		Module:   "explorer/v1/explorer.proto",
		Format:   FormatJSON,
		Out:      &buf,
	})
	require.NoError(t, err)

	dec := json.NewDecoder(&buf)
	var names []string
	for dec.More() {
		var doc render.Doc
		require.NoError(t, dec.Decode(&doc))
		names = append(names, doc.Message)
	}
	assert.Equal(t, []string{
		"explorer.v1.Body",
		"explorer.v1.Envelope",
		"explorer.v1.Node",
		"explorer.v1.Ping",
		"explorer.v1.Pong",
	}, names)
}

func TestExploreSearchSkipsNonMatching(t *testing.T) {
	var buf bytes.Buffer
	err := Explore(context.Background(), Options{
		Resolver: fixtureResolver(t),
		Module:   "explorer.v1",
		Search:   "labels",
		Format:   FormatJSON,
		Out:      &buf,
	})
	require.NoError(t, err)

	dec := json.NewDecoder(&buf)
	var names []string
	for dec.More() {
		var doc render.Doc
		require.NoError(t, dec.Decode(&doc))
		names = append(names, doc.Message)
	}
	// Only Envelope carries a field called labels.
	assert.Equal(t, []string{"explorer.v1.Envelope"}, names)
}

func TestExploreFilterMatches(t *testing.T) {
	var buf bytes.Buffer
	err := Explore(context.Background(), Options{
		Resolver:      fixtureResolver(t),
		Module:        "explorer.v1.Envelope",
		Search:        "^labels$",
		FilterMatches: true,
		Format:        FormatJSON,
		Out:           &buf,
	})
	require.NoError(t, err)

	var doc render.Doc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Fields, 1)
	assert.Equal(t, "labels", doc.Fields[0].Name)
}

func TestExploreErrors(t *testing.T) {
	resolver := fixtureResolver(t)

	t.Run("missing resolver", func(t *testing.T) {
		err := Explore(context.Background(), Options{Module: "x", Out: &bytes.Buffer{}})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad format", func(t *testing.T) {
		err := Explore(context.Background(), Options{
			Resolver: resolver, Module: "explorer.v1", Format: "xml", Out: &bytes.Buffer{},
		})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown module", func(t *testing.T) {
		err := Explore(context.Background(), Options{
			Resolver: resolver, Module: "nowhere.v9", Out: &bytes.Buffer{},
		})
		assert.ErrorIs(t, err, loader.ErrModuleNotFound)
		assert.ErrorIs(t, err, &Error{Kind: KindResolution})
	})

	t.Run("unknown message", func(t *testing.T) {
		err := Explore(context.Background(), Options{
			Resolver: resolver, Module: "explorer.v1", Message: "Ghost", Out: &bytes.Buffer{},
		})
		assert.ErrorIs(t, err, ErrMessageNotFound)
	})

	t.Run("bad search expression", func(t *testing.T) {
		err := Explore(context.Background(), Options{
			Resolver: resolver, Module: "explorer.v1", Search: "(", Out: &bytes.Buffer{},
		})
		assert.ErrorIs(t, err, &Error{Kind: KindValidation})
	})
}
