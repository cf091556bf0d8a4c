// Package search matches regular expressions against descriptor graphs and
// prunes built trees down to matching branches.
package search

import (
	"regexp"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/yuanlott/protograph/tree"
)

// Matcher wraps a compiled regular expression.
type Matcher struct {
	re *regexp.Regexp
}

// Compile builds a Matcher from expr.
func Compile(expr string) (*Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Matcher{re: re}, nil
}

// Message reports whether md matches: its full name, any reachable field
// name, or any transitively referenced message or enum full name. Reachable
// types are visited at most once, so recursive schemas terminate.
func (m *Matcher) Message(md protoreflect.MessageDescriptor) bool {
	return m.message(md, make(map[protoreflect.FullName]bool))
}

func (m *Matcher) message(md protoreflect.MessageDescriptor, seen map[protoreflect.FullName]bool) bool {
	if md == nil || seen[md.FullName()] {
		return false
	}
	seen[md.FullName()] = true

	if m.re.MatchString(string(md.FullName())) {
		return true
	}
	fields := md.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if m.re.MatchString(string(fd.Name())) {
			return true
		}
		if sub := fd.Message(); sub != nil {
			if m.re.MatchString(string(sub.FullName())) {
				return true
			}
			if m.message(sub, seen) {
				return true
			}
		}
		if ed := fd.Enum(); ed != nil && m.re.MatchString(string(ed.FullName())) {
			return true
		}
	}
	return false
}

// Node reports whether a single tree node matches on its own: by name, type
// label, or oneof group label.
func (m *Matcher) Node(n *tree.Node) bool {
	return m.re.MatchString(n.Name) ||
		m.re.MatchString(n.Type) ||
		(n.OneofGroup != "" && m.re.MatchString(n.OneofGroup))
}

// Filter returns the nodes with a match in themselves or their subtree,
// pruning everything else. Matched nodes keep their entire subtree. Input
// trees are never mutated; pruned branches are shallow copies.
func Filter(nodes []*tree.Node, m *Matcher) []*tree.Node {
	var out []*tree.Node
	for _, n := range nodes {
		if m.Node(n) {
			out = append(out, n)
			continue
		}
		if kept := Filter(n.Children, m); len(kept) > 0 {
			c := *n
			c.Children = kept
			out = append(out, &c)
		}
	}
	return out
}
