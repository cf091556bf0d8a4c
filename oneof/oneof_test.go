package oneof

import (
	"testing"

	"github.com/yuanlott/protograph/internal/prototest"
)

func TestPartition(t *testing.T) {
	md := prototest.Message(t, "Envelope")
	g := Partition(md.Fields())

	wantPlain := []string{"id", "labels", "payload", "note", "numbers", "attachments", "color", "parts"}
	if len(g.Plain) != len(wantPlain) {
		t.Fatalf("got %d plain fields, want %d", len(g.Plain), len(wantPlain))
	}
	for i, name := range wantPlain {
		if got := string(g.Plain[i].Name()); got != name {
			t.Errorf("plain[%d] = %s, want %s", i, got, name)
		}
	}

	if len(g.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(g.Groups))
	}
	content := g.Groups[0]
	if content.Name != "content" {
		t.Errorf("group name = %s, want content", content.Name)
	}
	wantMembers := []string{"text", "binary"}
	if len(content.Fields) != len(wantMembers) {
		t.Fatalf("got %d group members, want %d", len(content.Fields), len(wantMembers))
	}
	for i, name := range wantMembers {
		if got := string(content.Fields[i].Name()); got != name {
			t.Errorf("content[%d] = %s, want %s", i, got, name)
		}
	}
}

func TestPartitionEveryFieldOnce(t *testing.T) {
	md := prototest.Message(t, "Envelope")
	g := Partition(md.Fields())

	seen := make(map[string]int)
	for _, fd := range g.Plain {
		seen[string(fd.Name())]++
	}
	for _, grp := range g.Groups {
		for _, fd := range grp.Fields {
			seen[string(fd.Name())]++
		}
	}

	if len(seen) != md.Fields().Len() {
		t.Errorf("partitioned %d distinct fields, message has %d", len(seen), md.Fields().Len())
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("field %s appears %d times across partitions", name, n)
		}
	}
}

func TestPartitionNoOneofs(t *testing.T) {
	md := prototest.Message(t, "Body")
	g := Partition(md.Fields())

	if len(g.Groups) != 0 {
		t.Errorf("got %d groups for a message without oneofs", len(g.Groups))
	}
	if len(g.Plain) != 2 {
		t.Errorf("got %d plain fields, want 2", len(g.Plain))
	}
}
