// Package id generates the opaque ids carried by documents, layers, and
// palette entries.
package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

var generator *fid.Generator

func init() {
	// Ids encode time since this epoch, so they sort by creation order.
	epoch := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	cfg := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(5 * time.Millisecond).
		WithNumRandomChars(4)

	generator = fid.MustNewGenerator(cfg)
}

// Generate returns a new unique id.
func Generate() string {
	return generator.MustGenerate()
}
