package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

func sampleRegistry(t *testing.T) *family.Registry {
	t.Helper()
	reg, err := family.FromMembers([]family.Member{
		{ID: "a", FirstName: "You", Surname: "Doe", BirthYear: "1990", Gender: family.Male, Parents: []string{"b"}},
		{ID: "b", FirstName: "John", Surname: "Doe", BirthYear: "1960", Gender: family.Male, Children: []string{"a"}, Spouses: []string{"c"}},
		{ID: "c", FirstName: "Mary", Surname: "Major", BirthYear: "1962", Gender: family.Female, Spouses: []string{"b"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestRoundTrip(t *testing.T) {
	reg := sampleRegistry(t)
	path := filepath.Join(t.TempDir(), "out", "doe.json")
	if err := ExportJSON(reg, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if ids := strings.Join(got.IDs(), ","); ids != "a,b,c" {
		t.Errorf("order = %s, want a,b,c", ids)
	}
	if l := family.LineageOf(got); l.RootID != "a" || l.Surname != "Doe" {
		t.Errorf("lineage = %+v", l)
	}
	m, _ := got.Get("c")
	if m.FullName != "Mary Major" {
		t.Errorf("FullName = %q", m.FullName)
	}
}

func TestWriteJSONHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleRegistry(t), &buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"version": 1`, `"rootId": "a"`, `"surname": "Doe"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantIDs  string
		wantCode errors.Code
	}{
		{
			name:    "bare array",
			input:   `[{"id":"a","parents":[],"spouses":[],"children":[]}]`,
			wantIDs: "a",
		},
		{
			name: "root moved first",
			input: `{"lineage":{"rootId":"b"},"members":[
				{"id":"a","children":["b"]},{"id":"b","parents":["a"]}]}`,
			wantIDs: "b,a",
		},
		{
			name:     "malformed",
			input:    `{"members":`,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "newer version",
			input:    `{"version":2,"members":[]}`,
			wantCode: errors.ErrCodeUnsupported,
		},
		{
			name:     "duplicate id",
			input:    `[{"id":"a"},{"id":"a"}]`,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "asymmetric relation",
			input:    `[{"id":"a","children":["b"]},{"id":"b"}]`,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown member",
			input:    `[{"id":"a","spouses":["zz"]}]`,
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := ReadJSON(strings.NewReader(tt.input))
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			if ids := strings.Join(reg.IDs(), ","); ids != tt.wantIDs {
				t.Errorf("ids = %s, want %s", ids, tt.wantIDs)
			}
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
