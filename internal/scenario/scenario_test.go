package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/shrdlite/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneToml = `
format = "SHRDLITE"
type = "SCENE"

[world]
arm = 0

[[object]]
id = "a"
form = "brick"
size = "large"
color = "red"

[[object]]
id = "b"
form = "ball"
size = "small"
color = "white"

[[column]]
stack = ["a"]

[[column]]
stack = []

[[column]]
stack = ["b"]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.toml", sceneToml)

	sc, err := LoadScene(path)
	require.NoError(t, err)

	assert.Equal(t, world.FormBrick, sc.Objects["a"].Form)
	assert.Equal(t, world.FormBall, sc.Objects["b"].Form)
	assert.Equal(t, 0, sc.Start.Arm)
	assert.Equal(t, [][]string{{"a"}, {}, {"b"}}, sc.Start.Stacks)
	require.NoError(t, sc.Start.CheckInvariants(sc.Objects))
}

func TestLoadScene_Manifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scene.toml", sceneToml)
	manifest := `
format = "SHRDLITE"
type = "MANIFEST"
files = ["scene.toml"]
`
	path := writeFile(t, dir, "manifest.toml", manifest)

	sc, err := LoadScene(path)
	require.NoError(t, err)
	assert.Len(t, sc.Objects, 2)
}

func TestLoadScene_ManifestEmpty(t *testing.T) {
	dir := t.TempDir()
	manifest := `
format = "SHRDLITE"
type = "MANIFEST"
files = []
`
	path := writeFile(t, dir, "manifest.toml", manifest)

	_, err := LoadScene(path)
	require.Error(t, err)
}

func TestLoadScene_UnplacedObjectRejected(t *testing.T) {
	dir := t.TempDir()
	bad := `
format = "SHRDLITE"
type = "SCENE"

[world]
arm = 0

[[object]]
id = "a"
form = "brick"
size = "large"

[[column]]
stack = []
`
	path := writeFile(t, dir, "scene.toml", bad)

	_, err := LoadScene(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placed in no column")
}

func TestLoadScene_DuplicatePlacementRejected(t *testing.T) {
	dir := t.TempDir()
	bad := `
format = "SHRDLITE"
type = "SCENE"

[world]
arm = 0

[[object]]
id = "a"
form = "brick"
size = "large"

[[column]]
stack = ["a"]

[[column]]
stack = ["a"]
`
	path := writeFile(t, dir, "scene.toml", bad)

	_, err := LoadScene(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one column")
}

func TestLoadScene_ArmOutOfRangeRejected(t *testing.T) {
	dir := t.TempDir()
	bad := `
format = "SHRDLITE"
type = "SCENE"

[world]
arm = 5

[[object]]
id = "a"
form = "brick"
size = "large"

[[column]]
stack = ["a"]
`
	path := writeFile(t, dir, "scene.toml", bad)

	_, err := LoadScene(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestLoadScene_UnrecognizedFormRejected(t *testing.T) {
	dir := t.TempDir()
	bad := `
format = "SHRDLITE"
type = "SCENE"

[world]
arm = 0

[[object]]
id = "a"
form = "spaceship"
size = "large"

[[column]]
stack = ["a"]
`
	path := writeFile(t, dir, "scene.toml", bad)

	_, err := LoadScene(path)
	require.Error(t, err)
}

func TestLoadScene_WrongFormatHeaderRejected(t *testing.T) {
	dir := t.TempDir()
	bad := `
format = "NOTSHRDLITE"
type = "SCENE"
`
	path := writeFile(t, dir, "scene.toml", bad)

	_, err := LoadScene(path)
	require.Error(t, err)
}

func TestScanFileInfo(t *testing.T) {
	info, err := ScanFileInfo([]byte(sceneToml))
	require.NoError(t, err)
	assert.Equal(t, "SHRDLITE", info.Format)
	assert.Equal(t, "SCENE", info.Type)
}

func TestLoadManifestFile(t *testing.T) {
	dir := t.TempDir()
	manifest := `
format = "SHRDLITE"
type = "MANIFEST"
files = ["a.toml", "b.toml"]
`
	path := writeFile(t, dir, "manifest.toml", manifest)

	m, err := LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.toml", "b.toml"}, m.Files)
}
