package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Save schema versions. Increments are additive only: new optional fields,
// never field removal or rename, so every older save keeps loading.
//
// CHECKLIST when bumping the current version:
//  1. Add the constant below and append it to Known
//  2. Extend the loader in internal/persist with defaults for the new fields
//  3. Add a fixture save in internal/persist testdata and a migration test
const (
	// SaveV01 is the original pre-layers format: a single flat bitmap,
	// no layer list, no palette state.
	SaveV01 = "0.1"

	// SaveV02 added the ordered layer list and active layer id.
	SaveV02 = "0.2"

	// SaveV03 added palette, current color, selected entry, and sort order.
	SaveV03 = "0.3"

	// CurrentSave is the version written by every save.
	CurrentSave = SaveV03
)

// Known lists all schema versions this build can load, oldest first.
var Known = []string{SaveV01, SaveV02, SaveV03}

// IsKnown reports whether v is a schema version this build understands.
func IsKnown(v string) bool {
	for _, k := range Known {
		if k == v {
			return true
		}
	}
	return false
}

// Parse splits a version string like "0.3" into major and minor numbers.
// Returns an error if the format is invalid.
func Parse(v string) (major, minor int, err error) {
	parts := strings.SplitN(v, ".", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid save version: %q (expected MAJOR.MINOR)", v)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid save version major: %q", parts[0])
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid save version minor: %q", parts[1])
	}
	return major, minor, nil
}

// Workspace config schema. Separate from the save schema: the config file
// is strict (an unknown schema is an error) while saves migrate forward.
const (
	CurrentConfigVersion = 1
	ConfigSchemaPrefix   = "config/"
)

// CurrentConfigSchema returns the schema string stamped into pixelpad.toml.
// Example: "config/1".
func CurrentConfigSchema() string {
	return fmt.Sprintf("%s%d", ConfigSchemaPrefix, CurrentConfigVersion)
}

// ParseConfigVersion extracts the version number from a config schema string.
func ParseConfigVersion(schema string) (int, error) {
	if !strings.HasPrefix(schema, ConfigSchemaPrefix) {
		return 0, fmt.Errorf("invalid config schema format: %q (expected %sN)", schema, ConfigSchemaPrefix)
	}
	v, err := strconv.Atoi(strings.TrimPrefix(schema, ConfigSchemaPrefix))
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid config schema version: %q", schema)
	}
	return v, nil
}

// AtLeast reports whether version v is the same as or newer than w.
// Unparseable versions compare as newest, so unknown future versions
// get the newest-known field layout.
func AtLeast(v, w string) bool {
	vMaj, vMin, err := Parse(v)
	if err != nil {
		return true
	}
	wMaj, wMin, err := Parse(w)
	if err != nil {
		return false
	}
	if vMaj != wMaj {
		return vMaj > wMaj
	}
	return vMin >= wMin
}
