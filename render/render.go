// Package render presents built descriptor trees: an indented text view for
// terminals, and JSON or YAML encodings for machine consumption.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/list"

	"github.com/yuanlott/protograph/classify"
	"github.com/yuanlott/protograph/tree"
)

var (
	titleColor  = color.New(color.FgGreen, color.Bold)
	typeColor   = color.New(color.FgCyan)
	groupColor  = color.New(color.FgYellow)
	markerColor = color.New(color.FgMagenta)
	errColor    = color.New(color.FgRed)
)

// Text writes the tree rooted at the message named by title as a connected
// list. Color output honors the fatih/color global toggle, so callers that
// want plain output set color.NoColor upstream.
func Text(w io.Writer, title string, nodes []*tree.Node) error {
	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedLight)
	lw.AppendItem(titleColor.Sprint(title))
	lw.Indent()
	appendNodes(lw, nodes)
	lw.UnIndent()
	_, err := fmt.Fprintln(w, lw.Render())
	return err
}

func appendNodes(lw list.Writer, nodes []*tree.Node) {
	for _, n := range nodes {
		lw.AppendItem(label(n))
		if len(n.Children) > 0 {
			lw.Indent()
			appendNodes(lw, n.Children)
			lw.UnIndent()
		}
	}
}

func label(n *tree.Node) string {
	if n.IsGroup() {
		return groupColor.Sprintf("(oneof) %s", n.Name)
	}
	s := fmt.Sprintf("%s: %s", n.Name, typeColor.Sprint(n.Type))
	if n.Kind == classify.KindRepeatedScalar || n.Kind == classify.KindRepeatedMessage {
		s += " [repeated]"
	}
	if n.Truncated {
		s += " " + markerColor.Sprintf("↪ %s (recursive)", n.Type)
	}
	if n.Err != nil {
		s += errColor.Sprintf(" !%v", n.Err)
	}
	return s
}
