package scenario

// topLevelManifest is a SHRDLITE "MANIFEST" type file: just a list of
// further scene files to include, resolved relative to the manifest's own
// directory.
type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// topLevelScene is a SHRDLITE "SCENE" type file: the complete set of keys
// a scene (or a fragment merged via manifest) may define.
type topLevelScene struct {
	Format  string         `toml:"format"`
	Type    string         `toml:"type"`
	World   worldSettings  `toml:"world"`
	Objects []objectRecord `toml:"object"`
	Columns []columnRecord `toml:"column"`
}

// worldSettings is the "[world]" table: engine-level settings that are not
// per-object. When a manifest merges several fragment files and more than
// one defines "[world]", the last one encountered wins.
type worldSettings struct {
	Arm int `toml:"arm"`
}

// objectRecord is one "[[object]]" table: an entry in the catalogue.
type objectRecord struct {
	ID    string `toml:"id"`
	Form  string `toml:"form"`
	Size  string `toml:"size"`
	Color string `toml:"color"`
}

// columnRecord is one "[[column]]" table: the object identifiers resting
// in one stack, ordered bottom-first.
type columnRecord struct {
	Stack []string `toml:"stack"`
}
