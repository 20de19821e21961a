package ir

// Version constants stamped into edit envelopes.
const (
	// FormatVersion is the ops file format version.
	FormatVersion = "1"

	// ToolVersion is the geomigrate release.
	ToolVersion = "0.1.0"
)
