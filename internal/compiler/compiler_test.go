package compiler

import (
	"github.com/roach88/geomigrate/internal/canon"
)

// Canonical forms of the legacy ids used across these tests.
const (
	toEntityLegacy     = "Qx8dASiTNsxxP3rJbd4Lzd"
	fromEntityLegacy   = "RERshk4JoYoMC17r1qAo9J"
	relationTypeLegacy = "3WxYoAVreE4qFhkDUs5J3q"

	toEntityID     = "c1f4cb6f-ece4-4c3c-a447-ab005b756972"
	fromEntityID   = "c43b537b-cff7-4271-8822-717fdf2c9c01"
	relationTypeID = "14611456-b466-4cab-920d-2245f59ce828"
	propertyID     = "808a04ce-b21c-4d88-8ad1-2e240613e5ca" // GscJ2GELQjmLoaVrYyR3xm
	spaceID        = "6cf3f985-17a9-42a9-8f21-672a58e32ae8" // ETLCku7ZPvqysA9sHDw58K
	personID       = "40bed7cf-9b3d-4bb3-a3d7-a7e3eb18c5eb" // Person
	helloID        = "5d41402a-bc4b-4a76-b971-9d911017c592" // hello
)

func newTestCompiler() *Compiler {
	return New(canon.New(), DefaultVocabulary())
}
