// Package config loads migration configuration.
//
// A Config starts from Default, the constants of the production legacy
// graph, and is overlaid with a YAML or CUE file and then with command-line
// flags. The merged result is checked against an embedded CUE schema.
package config

import (
	"github.com/roach88/geomigrate/internal/builder"
	"github.com/roach88/geomigrate/internal/compiler"
	"github.com/roach88/geomigrate/internal/graph"
	"github.com/roach88/geomigrate/internal/source"
)

// Source drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultWorkers is the per-space entity fan-out.
const DefaultWorkers = 8

// Config is the full migration configuration.
type Config struct {
	Author    string       `json:"author" yaml:"author"`
	Spaces    []string     `json:"spaces,omitempty" yaml:"spaces,omitempty"`
	Workers   int          `json:"workers" yaml:"workers"`
	OutputDir string       `json:"output_dir" yaml:"output_dir"`
	Source    SourceConfig `json:"source" yaml:"source"`
	WellKnown WellKnown    `json:"well_known" yaml:"well_known"`

	// DataTypes maps a legacy value-type entity to the data type of the
	// properties that point at it.
	DataTypes map[string]graph.DataType `json:"data_types" yaml:"data_types"`

	// RenderableValueTypes are value types that are also linked to their
	// property as a renderable type.
	RenderableValueTypes []string `json:"renderable_value_types,omitempty" yaml:"renderable_value_types,omitempty"`

	// PropertyRenderables gives specific properties a fixed renderable type.
	PropertyRenderables map[string]string `json:"property_renderables,omitempty" yaml:"property_renderables,omitempty"`

	ExcludedAttributes []string `json:"excluded_attributes,omitempty" yaml:"excluded_attributes,omitempty"`
}

// SourceConfig selects the legacy store.
type SourceConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"` // file path for sqlite
}

// WellKnown holds the legacy IDs with structural meaning.
type WellKnown struct {
	FilterAttribute   string `json:"filter_attribute" yaml:"filter_attribute"`
	SelectorAttribute string `json:"selector_attribute" yaml:"selector_attribute"`
	ToEntity          string `json:"to_entity" yaml:"to_entity"`
	FromEntity        string `json:"from_entity" yaml:"from_entity"`
	RelationType      string `json:"relation_type" yaml:"relation_type"`
	Property          string `json:"property" yaml:"property"`
	Types             string `json:"types" yaml:"types"`
	ValueType         string `json:"value_type" yaml:"value_type"`
	RenderableType    string `json:"renderable_type" yaml:"renderable_type"`
	NativeType        string `json:"native_type" yaml:"native_type"`
	Image             string `json:"image" yaml:"image"`
	URL               string `json:"url" yaml:"url"`
	Type              string `json:"type" yaml:"type"`
	Index             string `json:"index" yaml:"index"`
}

// Default returns the production configuration. Author and the source DSN
// are left empty; they have no sensible default.
func Default() Config {
	vocab := compiler.DefaultVocabulary()
	attrs := builder.DefaultAttributes()
	wk := WellKnown{
		FilterAttribute:   attrs.Filter,
		SelectorAttribute: attrs.Selector,
		ToEntity:          vocab.ToEntity,
		FromEntity:        vocab.FromEntity,
		RelationType:      vocab.RelationType,
		Property:          "GscJ2GELQjmLoaVrYyR3xm",
		Types:             "Jfmby78N4BCseZinBmdVov",
		ValueType:         "WQfdWjboZWFuTseDhG5Cw1",
		RenderableType:    "5LJvjzknoN7HFHLPP9UyqF",
		NativeType:        "MB3wRFieouFfECQ4d9XYYm",
		Image:             "X8KB1uF84RYppghBSVvhqr",
		URL:               "5xroh3gbWYbWY4oR3nFXzy",
		Type:              "VdTsW1mGiy1XSooJaBBLc4",
		Index:             "WNopXUYxsSsE51gkJGWghe",
	}
	return Config{
		Workers:   DefaultWorkers,
		OutputDir: "out",
		Source:    SourceConfig{Driver: DriverSQLite},
		WellKnown: wk,
		DataTypes: map[string]graph.DataType{
			"LckSTmjBrYAJaFcDs89am5": graph.DataTypeText,
			wk.URL:                   graph.DataTypeText,
			"LBdMpTNyycNffsF51t2eSp": graph.DataTypeNumber,
			"3mswMrL91GuYTfBq29EuNE": graph.DataTypeTime,
			"UZBZNbA7Uhx1f8ebLi1Qj5": graph.DataTypePoint,
			"G9NpD4c7GB7nH5YU9Tesgf": graph.DataTypeCheckbox,
			"AKDxovGvZaPSWnmKnSoZJY": graph.DataTypeRelation,
			wk.Image:                 graph.DataTypeRelation,
		},
		RenderableValueTypes: []string{wk.URL, wk.Image},
		PropertyRenderables: map[string]string{
			"GSA7HUQwsUbMJQ2RDGNi2W": "LPAM1sEzB7XgRx8pAmTD8A", // geo location
			"FAgoYRgSim3ydKxzt5CDr5": "VpEt3UkwX63iBtwfdRafNH", // address
		},
		ExcludedAttributes: []string{wk.ToEntity, wk.FromEntity, wk.RelationType, wk.Index, wk.Types},
	}
}

// CompilerVocabulary returns the IDs the filter and selector translators
// reinterpret.
func (c Config) CompilerVocabulary() compiler.Vocabulary {
	return compiler.Vocabulary{
		ToEntity:     c.WellKnown.ToEntity,
		FromEntity:   c.WellKnown.FromEntity,
		RelationType: c.WellKnown.RelationType,
	}
}

// BuilderAttributes returns the attributes whose text is a query
// expression.
func (c Config) BuilderAttributes() builder.Attributes {
	return builder.Attributes{
		Filter:   c.WellKnown.FilterAttribute,
		Selector: c.WellKnown.SelectorAttribute,
	}
}

// SourceVocabulary returns the IDs the legacy reader filters on.
func (c Config) SourceVocabulary() source.Vocabulary {
	return source.Vocabulary{
		Types:              c.WellKnown.Types,
		Property:           c.WellKnown.Property,
		ValueType:          c.WellKnown.ValueType,
		NativeType:         c.WellKnown.NativeType,
		Type:               c.WellKnown.Type,
		Image:              c.WellKnown.Image,
		URL:                c.WellKnown.URL,
		ExcludedAttributes: c.ExcludedAttributes,
	}
}
