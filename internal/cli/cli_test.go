package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/familytower/pkg/clock"
	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/render"
)

// testEnv points config, data and cache at temp dirs and captures status
// output.
func testEnv(t *testing.T) *bytes.Buffer {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	var status bytes.Buffer
	old := out
	out = &status
	t.Cleanup(func() { out = old })
	return &status
}

// sequence numbers IDs m1, m2, ... and survives across CLI instances.
type sequence struct{ n int }

func (s *sequence) next() string { s.n++; return fmt.Sprintf("m%d", s.n) }

func run(t *testing.T, seq *sequence, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &buf
	c.Clock = clock.Year(2024)
	c.NewID = seq.next
	err := c.Execute(context.Background(), args)
	return buf.String(), err
}

func mustRun(t *testing.T, seq *sequence, args ...string) string {
	t.Helper()
	s, err := run(t, seq, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return s
}

func listMembers(t *testing.T, seq *sequence) []family.Member {
	t.Helper()
	var members []family.Member
	if err := json.Unmarshal([]byte(mustRun(t, seq, "list", "--json")), &members); err != nil {
		t.Fatal(err)
	}
	return members
}

func TestTreeCommands(t *testing.T) {
	status := testEnv(t)
	seq := &sequence{}

	mustRun(t, seq, "init", "--surname", "Doe", "--birth", "1990", "--gender", "male")
	if !strings.Contains(status.String(), "Created tree for") {
		t.Errorf("status = %q", status)
	}
	mustRun(t, seq, "add", "parent", "m1", "--first-name", "John", "--birth", "1960", "--gender", "male")

	_, err := run(t, seq, "add", "spouse", "m2", "--first-name", "Mary", "--birth", "1985")
	if !errors.Is(err, errors.ErrCodeAgeGap) {
		t.Fatalf("spouse 1985 err = %v, want AGE_GAP", err)
	}
	mustRun(t, seq, "add", "spouse", "m2", "--first-name", "Mary", "--birth", "1962")

	members := listMembers(t, seq)
	if len(members) != 3 {
		t.Fatalf("members = %d, want 3", len(members))
	}
	if members[0].FullName != "You Doe" || members[1].FullName != "John Doe" {
		t.Errorf("names = %q, %q", members[0].FullName, members[1].FullName)
	}
	if members[2].Gender != family.Female || len(members[2].Children) != 1 {
		t.Errorf("spouse = %+v", members[2])
	}

	mustRun(t, seq, "edit", "m1", "--bio", "Likes maps")
	if _, err := run(t, seq, "edit", "m1"); err == nil {
		t.Error("edit without flags should fail")
	}
	if _, err := run(t, seq, "edit", "m9", "--bio", "x"); !errors.Is(err, errors.ErrCodeMemberNotFound) {
		t.Errorf("edit unknown err = %v", err)
	}

	show := mustRun(t, seq, "show", "m1")
	for _, want := range []string{"You Doe", "John Doe", "Mary", "Likes maps", "1990 (34)"} {
		if !strings.Contains(show, want) {
			t.Errorf("show output missing %q:\n%s", want, show)
		}
	}

	search := mustRun(t, seq, "search", "mary")
	if !strings.Contains(search, "m3") || strings.Contains(search, "m1") {
		t.Errorf("search output = %q", search)
	}

	list := mustRun(t, seq, "list")
	if !strings.Contains(list, "John Doe") || !strings.Contains(list, "Lifespan") {
		t.Errorf("list table = %q", list)
	}
}

func TestInitTwice(t *testing.T) {
	testEnv(t)
	seq := &sequence{}
	mustRun(t, seq, "init", "--birth", "1990")
	if _, err := run(t, seq, "init", "--birth", "1991"); !errors.Is(err, errors.ErrCodeRootExists) {
		t.Errorf("second init err = %v, want ROOT_EXISTS", err)
	}
}

func TestBadInput(t *testing.T) {
	testEnv(t)
	seq := &sequence{}
	mustRun(t, seq, "init", "--birth", "1990")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad relation", []string{"add", "cousin", "m1", "--birth", "1990"}, errors.ErrCodeInvalidRelation},
		{"bad gender", []string{"add", "child", "m1", "--birth", "2020", "--gender", "robot"}, errors.ErrCodeInvalidGender},
		{"future birth", []string{"add", "child", "m1", "--birth", "2030"}, errors.ErrCodeFutureBirth},
		{"bad format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, seq, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
	if n := len(listMembers(t, seq)); n != 1 {
		t.Errorf("rejected commands changed the tree: %d members", n)
	}
}

func TestLayoutIsStableAcrossRuns(t *testing.T) {
	testEnv(t)
	seq := &sequence{}
	mustRun(t, seq, "init", "--surname", "Doe", "--birth", "1990", "--gender", "male")
	mustRun(t, seq, "add", "parent", "m1", "--first-name", "John", "--birth", "1960", "--gender", "male")

	positions := func() map[string]float64 {
		var d render.Diagram
		if err := json.Unmarshal([]byte(mustRun(t, seq, "layout", "--json")), &d); err != nil {
			t.Fatal(err)
		}
		out := make(map[string]float64)
		for _, n := range d.Nodes {
			out[n.ID+".x"] = n.Position.X
			out[n.ID+".y"] = n.Position.Y
		}
		return out
	}

	before := positions()
	mustRun(t, seq, "add", "spouse", "m2", "--first-name", "Mary", "--birth", "1962")
	after := positions()
	for k, v := range before {
		if after[k] != v {
			t.Errorf("%s moved from %v to %v", k, v, after[k])
		}
	}
	if _, ok := after["m3.x"]; !ok {
		t.Fatal("spouse missing from layout")
	}

	table := mustRun(t, seq, "layout", "--reset")
	if !strings.Contains(table, "Mary") {
		t.Errorf("layout table = %q", table)
	}
}

func TestRender(t *testing.T) {
	status := testEnv(t)
	seq := &sequence{}
	mustRun(t, seq, "init", "--surname", "Doe", "--birth", "1990")

	base := filepath.Join(t.TempDir(), "out", "family")
	mustRun(t, seq, "render", "-f", "dot,json", "-o", base, "--highlight", "m1")
	for _, ext := range []string{".dot", ".json"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", ext)
		}
	}
	if !strings.Contains(status.String(), "Rendered 2 file(s)") {
		t.Errorf("status = %q", status)
	}

	single := filepath.Join(t.TempDir(), "tree.dot")
	mustRun(t, seq, "render", "-f", "dot", "-o", single)
	if _, err := os.Stat(single); err != nil {
		t.Errorf("single output: %v", err)
	}

	if _, err := run(t, seq, "render", "--highlight", "nobody"); !errors.Is(err, errors.ErrCodeMemberNotFound) {
		t.Errorf("unknown highlight err = %v", err)
	}
}

func TestEmptyTree(t *testing.T) {
	status := testEnv(t)
	seq := &sequence{}
	for _, args := range [][]string{{"list"}, {"layout"}, {"render"}} {
		mustRun(t, seq, args...)
	}
	if strings.Count(status.String(), "empty") != 3 {
		t.Errorf("status = %q", status)
	}
}

func TestMemoryStoreFlag(t *testing.T) {
	testEnv(t)
	seq := &sequence{}
	mustRun(t, seq, "--store", "memory", "init", "--birth", "1990")
	if n := len(listMembers(t, seq)); n != 0 {
		t.Errorf("memory store leaked into file store: %d members", n)
	}
	if _, err := run(t, seq, "--store", "sqlite", "list"); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestConfigCommands(t *testing.T) {
	status := testEnv(t)
	seq := &sequence{}

	mustRun(t, seq, "config", "init")
	path := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName, "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	mustRun(t, seq, "config", "init")
	if !strings.Contains(status.String(), "already exists") {
		t.Errorf("status = %q", status)
	}

	shown := mustRun(t, seq, "--store", "memory", "config", "show")
	if !strings.Contains(shown, `backend = "memory"`) || !strings.Contains(shown, "node_width = 200") {
		t.Errorf("config show = %s", shown)
	}

	mustRun(t, seq, "config", "path")
	if !strings.Contains(status.String(), filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)) {
		t.Errorf("config path output = %q", status)
	}
}

func TestCompletion(t *testing.T) {
	testEnv(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		if s := mustRun(t, &sequence{}, "completion", shell); s == "" {
			t.Errorf("%s completion is empty", shell)
		}
	}
}

func TestExportImport(t *testing.T) {
	status := testEnv(t)
	seq := &sequence{}
	mustRun(t, seq, "init", "--surname", "Doe", "--birth", "1990")
	mustRun(t, seq, "add", "parent", "m1", "--first-name", "John", "--birth", "1960", "--gender", "male")

	path := filepath.Join(t.TempDir(), "doe.json")
	mustRun(t, seq, "export", "-o", path)
	if !strings.Contains(mustRun(t, seq, "export"), `"rootId": "m1"`) {
		t.Error("export to stdout is missing the lineage")
	}

	other := []string{"--tree", "copy"}
	mustRun(t, seq, append(other, "init", "--birth", "2000")...)
	if _, err := run(t, seq, append(other, "import", path)...); !errors.Is(err, errors.ErrCodeRootExists) {
		t.Fatalf("import over a tree: err = %v, want ROOT_EXISTS", err)
	}
	mustRun(t, seq, append(other, "import", "--force", path)...)
	if !strings.Contains(status.String(), "Imported 2 members") {
		t.Errorf("status = %q", status)
	}

	members := listMembers(t, seq)
	if len(members) != 2 {
		t.Errorf("original tree has %d members", len(members))
	}
	out := mustRun(t, seq, append(other, "show", "m2")...)
	if !strings.Contains(out, "John Doe") {
		t.Errorf("imported tree show m2 = %q", out)
	}
}
