// Package protopath infers the import root directory of a .proto file, the
// directory suitable as a protoc --proto_path argument.
package protopath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxLevels bounds the ancestor walk so unusual layouts never scan all the
// way to the filesystem root.
const maxLevels = 16

var importRE = regexp.MustCompile(`(?m)^\s*import\s+(?:public\s+|weak\s+)?"([^"]+)"\s*;`)

// ErrNotProto is returned when the given path does not name a .proto file.
var ErrNotProto = errors.New("expected a .proto file")

// Imports returns the import paths declared in a .proto file, as written:
// "api/common/common.proto", "google/type/quaternion.proto", and so on.
func Imports(protoFile string) ([]string, error) {
	data, err := os.ReadFile(protoFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", protoFile, err)
	}
	matches := importRE.FindAllStringSubmatch(string(data), -1)
	imports := make([]string, 0, len(matches))
	for _, m := range matches {
		imports = append(imports, m[1])
	}
	return imports, nil
}

// FindRoot infers the import root for protoFile by walking its ancestors
// and scoring each candidate on how many of the file's imports it resolves,
// with a structural tie-break bonus when the candidate looks like the top
// of the import tree. Falls back to the file's parent directory when no
// import resolves anywhere.
func FindRoot(protoFile string) (string, error) {
	abs, err := filepath.Abs(protoFile)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("proto file not found: %w", err)
	}
	if !strings.HasSuffix(abs, ".proto") {
		return "", fmt.Errorf("%s: %w", protoFile, ErrNotProto)
	}

	imports, err := Imports(abs)
	if err != nil {
		return "", err
	}

	parent := filepath.Dir(abs)
	bestResolved, bestBonus := -1, -1
	best := parent

	candidate := parent
	for level := 0; level < maxLevels; level++ {
		resolved, bonus := score(candidate, abs, imports)
		if resolved > bestResolved || (resolved == bestResolved && bonus > bestBonus) {
			bestResolved, bestBonus, best = resolved, bonus, candidate
		}
		next := filepath.Dir(candidate)
		if next == candidate {
			break
		}
		candidate = next
	}

	if bestResolved == 0 && bestBonus == 0 {
		return parent, nil
	}
	return best, nil
}

// score counts how many imports exist under candidate, plus a bonus when
// the first component of the proto's path relative to candidate exists as a
// directory, which is the shape of a real import root.
func score(candidate, protoFile string, imports []string) (resolved, bonus int) {
	for _, imp := range imports {
		if _, err := os.Stat(filepath.Join(candidate, imp)); err == nil {
			resolved++
		}
	}

	rel, err := filepath.Rel(candidate, protoFile)
	if err != nil || strings.HasPrefix(rel, "..") {
		return resolved, 0
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) >= 2 {
		if info, err := os.Stat(filepath.Join(candidate, parts[0])); err == nil && info.IsDir() {
			bonus = 1
		}
	}
	return resolved, bonus
}
