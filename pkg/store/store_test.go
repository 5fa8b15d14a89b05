package store

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

func sample() []family.Member {
	return []family.Member{
		{ID: "user_a", FirstName: "You", Surname: "Doe", FullName: "You Doe", BirthYear: "1990", Gender: family.Male, Parents: []string{"user_b"}, Spouses: []string{}, Children: []string{}},
		{ID: "user_b", FirstName: "John", Surname: "Doe", FullName: "John Doe", BirthYear: "1960", Gender: family.Male, Parents: []string{}, Spouses: []string{}, Children: []string{"user_a"}},
	}
}

// exercise runs the round trip every backend must support.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if err := Save(ctx, s, sample()); err != nil {
		t.Fatal(err)
	}
	reg, err := Load(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if got := reg.IDs(); len(got) != 2 || got[0] != "user_a" || got[1] != "user_b" {
		t.Errorf("IDs = %v, want insertion order kept", got)
	}
	if family.LineageOf(reg).RootID != "user_a" {
		t.Errorf("root = %s", family.LineageOf(reg).RootID)
	}
	m, _ := reg.Get("user_b")
	if m.FullName != "John Doe" || m.Children[0] != "user_a" {
		t.Errorf("user_b = %+v", m)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Load(context.Background()); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("empty Load err = %v", err)
	}
	exercise(t, s)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if s.Path() != filepath.Join(dir, DefaultKey+".json") {
		t.Errorf("Path = %s", s.Path())
	}
	if _, err := s.Load(context.Background()); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("empty Load err = %v", err)
	}
	exercise(t, s)

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte(`[{"id":"user_a"`)) {
		t.Errorf("payload is not an ordered member list: %.60s", raw)
	}
	if strings.Contains(string(raw), "version") {
		t.Error("payload should carry no version tag")
	}
}

func TestDecodeKeepsWireNames(t *testing.T) {
	members, err := Decode([]byte(`[{"id":"x","firstName":"A","surname":"B","fullName":"A B","birthYear":"1950","gender":"female","bio":"","photoUrl":"https://e.com/p.jpg","parents":[],"spouses":[],"children":[]}]`))
	if err != nil {
		t.Fatal(err)
	}
	if members[0].PhotoURL != "https://e.com/p.jpg" || members[0].Gender != family.Female {
		t.Errorf("decoded = %+v", members[0])
	}
}

func TestLoadOrEmpty(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := log.New(&buf)

	tests := []struct {
		name    string
		raw     []byte
		want    int
		wantLog string
	}{
		{"missing", nil, 0, ""},
		{"valid", mustEncode(t, sample()), 2, ""},
		{"malformed json", []byte("{oops"), 0, "could not load snapshot"},
		{"duplicate ids", []byte(`[{"id":"a"},{"id":"a"}]`), 0, "could not load snapshot"},
		{"asymmetric", []byte(`[{"id":"a","children":["b"]},{"id":"b"}]`), 0, "could not load snapshot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			s := NewMemoryStore()
			if tt.raw != nil {
				s.SetRaw(tt.raw)
			}
			reg := LoadOrEmpty(ctx, s, logger)
			if reg == nil || reg.Len() != tt.want {
				t.Fatalf("Len = %v, want %d", reg, tt.want)
			}
			if tt.wantLog != "" && !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("log = %q, want %q", buf.String(), tt.wantLog)
			}
		})
	}
}

func TestLoadWrapsStorageError(t *testing.T) {
	s := NewMemoryStore()
	s.SetRaw([]byte("nope"))
	_, err := Load(context.Background(), s)
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("err = %v, want STORAGE_ERROR", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{Dir: t.TempDir(), Key: "tree-1"})
	if err != nil {
		t.Fatal(err)
	}
	if fs, ok := s.(*FileStore); !ok || filepath.Base(fs.Path()) != "tree-1.json" {
		t.Errorf("Open default = %T", s)
	}
	if s, _ := Open(ctx, Config{Backend: BackendMemory}); s.Backend() != "memory" {
		t.Errorf("memory backend = %s", s.Backend())
	}
	if _, err := Open(ctx, Config{Backend: "sqlite"}); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("FAMILYTOWER_REDIS_ADDR")
	if addr == "" {
		t.Skip("FAMILYTOWER_REDIS_ADDR not set")
	}
	s, err := NewRedisStore(context.Background(), RedisConfig{Addr: addr, Key: "familytower-test:" + t.Name()})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exercise(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FAMILYTOWER_MONGO_URI")
	if uri == "" {
		t.Skip("FAMILYTOWER_MONGO_URI not set")
	}
	s, err := NewMongoStore(context.Background(), MongoConfig{URI: uri, Database: "familytower_test", Key: t.Name()})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exercise(t, s)
}

func mustEncode(t *testing.T, members []family.Member) []byte {
	t.Helper()
	data, err := Encode(members)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
