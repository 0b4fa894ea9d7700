// Package scenario loads blocks-world scenes from SHRDLITE world files, a
// TOML-based format for describing the object catalogue and starting
// stack layout the interpreter and planner operate on. It is grounded on
// internal/tqw's load -> validate -> construct shape, adapted from
// TunaQuest's bespoke room/NPC/item schema to the blocks-world's
// object/column schema.
package scenario

import (
	"errors"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"
)

// MaxManifestRecursionDepth bounds manifest include-chain depth, matching
// internal/tqw's guard against a runaway or circular chain of includes.
const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is returned when a manifest file is read successfully
	// but lists no files that could be loaded.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is returned when MaxManifestRecursionDepth is
	// reached and another manifest include would recurse deeper still.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is returned when a chain of manifest includes
	// refers back to a manifest already in the chain.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// FileInfo is the common header every SHRDLITE file must carry.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// Manifest lists the scene files to merge into one scene.
type Manifest struct {
	Files []string
}

// LoadScene loads a complete scenario.Scene from path. The file's type is
// auto-detected: a "SCENE" file is parsed directly, while a "MANIFEST"
// file has its listed files loaded and merged (object and column
// definitions concatenated, "world" settings required to agree or be
// unset in all but one file) before validation and construction.
func LoadScene(path string) (Scene, error) {
	raw, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return Scene{}, err
	}
	return parseScene(raw)
}

// ParseScene parses a single (non-manifest) scene directly out of tomlData,
// with no filesystem access. It is the path server/dao/sqlite uses to
// rehydrate a scenario.Scene from a stored TOML blob.
func ParseScene(tomlData []byte) (Scene, error) {
	raw, err := unmarshalScene(tomlData)
	if err != nil {
		return Scene{}, err
	}
	return parseScene(raw)
}

// LoadManifestFile loads and parses a standalone manifest file without
// following its includes, mainly useful for inspecting or validating a
// manifest's file list.
func LoadManifestFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	unmarshaled, err := unmarshalManifest(data)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{Files: unmarshaled.Files}, nil
}

// ScanFileInfo reads just the top-level format/type header out of data,
// stopping at the first table header so that a malformed body below it
// does not prevent file-type detection.
func ScanFileInfo(data []byte) (FileInfo, error) {
	var topLevelEnd = -1
	var onNewLine bool
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}
		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}
