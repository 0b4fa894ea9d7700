package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// recursiveUnmarshalResource reads path, auto-detects whether it is a
// "SCENE" or "MANIFEST" file, and for a manifest recursively loads and
// merges every file it lists, returning one combined topLevelScene.
// manifStack tracks the chain of manifest paths already being resolved,
// both to cap recursion depth and to detect circular includes.
func recursiveUnmarshalResource(path string, manifStack []string) (topLevelScene, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return topLevelScene{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	info, err := ScanFileInfo(data)
	if err != nil {
		return topLevelScene{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}
	if strings.ToUpper(info.Format) != "SHRDLITE" {
		return topLevelScene{}, fmt.Errorf("%q: file does not have a 'format = \"SHRDLITE\"' entry", path)
	}

	switch strings.ToUpper(info.Type) {
	case "SCENE":
		unmarshaled, err := unmarshalScene(data)
		if err != nil {
			return unmarshaled, fmt.Errorf("scene file %q: %w", path, err)
		}
		return unmarshaled, nil

	case "MANIFEST":
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelScene{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for _, seen := range manifStack {
			if seen == path {
				return topLevelScene{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		unmarshaledManif, err := unmarshalManifest(data)
		if err != nil {
			return topLevelScene{}, fmt.Errorf("manifest file %q: %w", path, err)
		}
		if len(unmarshaledManif.Files) < 1 && len(manifStack) == 0 {
			return topLevelScene{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		var combined topLevelScene
		manifSubStack := append(append([]string{}, manifStack...), path)
		manifDir := filepath.Dir(path)

		var processedFiles int
		for _, relPath := range unmarshaledManif.Files {
			includedPath := filepath.Join(manifDir, relPath)

			fragment, err := recursiveUnmarshalResource(includedPath, manifSubStack)
			if err != nil {
				if errors.Is(err, ErrManifestCircularRef) {
					continue
				}
				return topLevelScene{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			if fragment.World != (worldSettings{}) {
				combined.World = fragment.World
			}
			combined.Objects = append(combined.Objects, fragment.Objects...)
			combined.Columns = append(combined.Columns, fragment.Columns...)
			processedFiles++
		}

		if len(manifStack) == 0 && processedFiles == 0 {
			return topLevelScene{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}
		return combined, nil

	default:
		return topLevelScene{}, fmt.Errorf("%q: file does not have 'type' set to either \"SCENE\" or \"MANIFEST\"", path)
	}
}

// unmarshalScene unmarshals scene data from tomlData. It does not validate
// or construct a Scene from it.
func unmarshalScene(tomlData []byte) (topLevelScene, error) {
	var ts topLevelScene
	if err := toml.Unmarshal(tomlData, &ts); err != nil {
		return ts, err
	}
	if strings.ToUpper(ts.Format) != "SHRDLITE" {
		return ts, fmt.Errorf("in header: 'format' key must exist and be set to \"SHRDLITE\"")
	}
	if strings.ToUpper(ts.Type) != "SCENE" {
		return ts, fmt.Errorf("in header: 'type' must exist and be set to \"SCENE\"")
	}
	return ts, nil
}

// unmarshalManifest unmarshals manifest data from tomlData. It does not
// resolve or validate the files it lists.
func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var tm topLevelManifest
	if err := toml.Unmarshal(tomlData, &tm); err != nil {
		return tm, err
	}
	if strings.ToUpper(tm.Format) != "SHRDLITE" {
		return tm, fmt.Errorf("in header: 'format' key must exist and be set to \"SHRDLITE\"")
	}
	if strings.ToUpper(tm.Type) != "MANIFEST" {
		return tm, fmt.Errorf("in header: 'type' must exist and be set to \"MANIFEST\"")
	}
	return tm, nil
}
