package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// ErrorCode classifies configuration failures.
type ErrorCode string

const (
	ErrCodeRead          ErrorCode = "READ_ERROR"
	ErrCodeParse         ErrorCode = "PARSE_ERROR"
	ErrCodeSchema        ErrorCode = "SCHEMA_ERROR"
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// LoadError reports a configuration failure, with a CUE position when one
// is known.
type LoadError struct {
	Code    ErrorCode
	Message string
	Pos     token.Pos
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsSchemaError reports whether err is a schema violation.
func IsSchemaError(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == ErrCodeSchema
}

// IsParseError reports whether err is a syntax or decoding failure.
func IsParseError(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == ErrCodeParse
}

// Load reads a .yaml, .yml, or .cue file, overlays it on Default, and
// validates the result.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that override fields
// before calling Validate themselves.
func Read(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{Code: ErrCodeRead, Message: err.Error(), Err: err}
	}

	cfg := Default()
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".cue":
		err = decodeCUE(data, path, &cfg)
	default:
		return Config{}, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("unsupported config extension %q", ext)}
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeYAML overlays YAML onto cfg. Unknown keys are rejected.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &LoadError{Code: ErrCodeParse, Message: err.Error(), Err: err}
	}
	return nil
}

// decodeCUE overlays a CUE document onto cfg.
func decodeCUE(data []byte, path string, cfg *Config) error {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cueError(ErrCodeParse, err)
	}
	if err := v.Decode(cfg); err != nil {
		return cueError(ErrCodeParse, err)
	}
	return nil
}

// Validate checks cfg against the embedded schema.
func Validate(cfg Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cueError(ErrCodeInvalidConfig, err)
	}

	v := ctx.Encode(cfg)
	if err := v.Err(); err != nil {
		return cueError(ErrCodeInvalidConfig, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueError(ErrCodeSchema, err)
	}
	return nil
}

// cueError keeps the first CUE error and its position.
func cueError(code ErrorCode, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error(), Err: err}
	}
	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error(), Err: err}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
