package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

// ReadJSON decodes a family file and rebuilds the registry. Errors carry
// the INVALID_INPUT code.
func ReadJSON(r io.Reader) (*family.Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var in file
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &in.Members)
	} else {
		err = json.Unmarshal(trimmed, &in)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode family file")
	}
	if in.Version > FormatVersion {
		return nil, errors.New(errors.ErrCodeUnsupported, "family file version %d is newer than %d", in.Version, FormatVersion)
	}

	members := rootFirst(in.Members, in.Lineage.RootID)
	reg, err := family.FromMembers(members)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "rebuild registry")
	}
	if err := family.CheckSymmetry(reg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "inconsistent family file")
	}
	return reg, nil
}

// ImportJSON reads a family file from path.
func ImportJSON(path string) (*family.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reg, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

func rootFirst(members []family.Member, rootID string) []family.Member {
	i := slices.IndexFunc(members, func(m family.Member) bool { return m.ID == rootID })
	if i <= 0 {
		return members
	}
	out := make([]family.Member, 0, len(members))
	out = append(out, members[i])
	out = append(out, members[:i]...)
	return append(out, members[i+1:]...)
}
