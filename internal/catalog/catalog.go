// Package catalog implements the Built-in Catalog (spec §4.5): the
// constant table supplying the canonical Dict shape for each structural
// builtin alias (Stroke, Margin, Inset, Outset, Radius), and the
// parameter-mapping function consulted by ty.FromParamSite and by
// Constrain's dict-alias expansion.
package catalog

import (
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/uros-5/tinymist/internal/hostval"
	"github.com/uros-5/tinymist/internal/ty"
)

//go:embed catalog.yaml
var catalogYAML []byte

type yamlField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type yamlDict struct {
	Fields []yamlField `yaml:"fields"`
}

type yamlDoc struct {
	Dicts    map[string]yamlDict          `yaml:"dicts"`
	Elements map[string]map[string]string `yaml:"elements"`
}

// Catalog holds the parsed, ready-to-use built-in data.
type Catalog struct {
	dicts    map[ty.BuiltinKind]ty.Dict
	elements map[string]map[string]ty.Type
}

var defaultCatalog = MustLoad(catalogYAML)

// Default returns the module's built-in catalog, loaded once from the
// embedded catalog.yaml.
func Default() *Catalog { return defaultCatalog }

// MustLoad parses raw as a catalog.yaml document and panics on error; it
// is used for the embedded default and is convenient for tests that
// load a variant document.
func MustLoad(raw []byte) *Catalog {
	c, err := Load(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Load parses a catalog.yaml document into a Catalog.
func Load(raw []byte) (*Catalog, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	c := &Catalog{
		dicts:    make(map[ty.BuiltinKind]ty.Dict),
		elements: make(map[string]map[string]ty.Type),
	}

	nameToKind := map[string]ty.BuiltinKind{
		"stroke": ty.Stroke,
		"margin": ty.Margin,
		"inset":  ty.Inset,
		"outset": ty.Outset,
		"radius": ty.Radius,
	}
	for name, d := range doc.Dicts {
		kind, ok := nameToKind[name]
		if !ok {
			return nil, fmt.Errorf("catalog: unknown canonical dict %q", name)
		}
		fields := make([]ty.DictField, 0, len(d.Fields))
		for _, f := range d.Fields {
			t, err := resolveFieldType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("catalog: dict %q field %q: %w", name, f.Name, err)
			}
			fields = append(fields, ty.DictField{Name: f.Name, Type: t})
		}
		c.dicts[kind] = ty.Dict{Fields: fields}
	}

	for elementID, params := range doc.Elements {
		m := make(map[string]ty.Type, len(params))
		for param, typeTag := range params {
			t, err := resolveFieldType(typeTag)
			if err != nil {
				return nil, fmt.Errorf("catalog: element %q param %q: %w", elementID, param, err)
			}
			m[param] = t
		}
		c.elements[elementID] = m
	}

	return c, nil
}

func resolveFieldType(tag string) (ty.Type, error) {
	switch tag {
	case "length":
		return ty.Builtin{Kind: ty.Length}, nil
	case "color":
		return ty.Builtin{Kind: ty.Color}, nil
	case "direction":
		return ty.Builtin{Kind: ty.Dir}, nil
	case "text-size":
		return ty.Builtin{Kind: ty.TextSize}, nil
	case "text-lang":
		return ty.Builtin{Kind: ty.TextLang}, nil
	case "text-region":
		return ty.Builtin{Kind: ty.TextRegion}, nil
	case "text-font":
		return ty.Builtin{Kind: ty.TextFont}, nil
	case "float":
		return ty.Builtin{Kind: ty.FloatKind}, nil
	case "stroke":
		return ty.Builtin{Kind: ty.Stroke}, nil
	case "margin":
		return ty.Builtin{Kind: ty.Margin}, nil
	case "inset":
		return ty.Builtin{Kind: ty.Inset}, nil
	case "outset":
		return ty.Builtin{Kind: ty.Outset}, nil
	case "radius":
		return ty.Builtin{Kind: ty.Radius}, nil
	case "string":
		return ty.Value{V: hostval.Value{Kind: "string"}}, nil
	case "array":
		return ty.Array{Elem: ty.Any}, nil
	default:
		return nil, fmt.Errorf("unrecognized field type tag %q", tag)
	}
}

// CanonicalDict returns the canonical Dict shape for a structural
// builtin alias, and whether kind has one at all (Length, Color, Dir,
// and the other scalar domains do not).
func (c *Catalog) CanonicalDict(kind ty.BuiltinKind) (ty.Dict, bool) {
	d, ok := c.dicts[kind]
	return d, ok
}

// Lookup implements ty.ParamMapLookup: it is the built-in parameter map
// from_param_site consults before falling back to the generic mapping
// (spec §4.1).
func (c *Catalog) Lookup(elementID, paramName string) (ty.Type, bool) {
	params, ok := c.elements[elementID]
	if !ok {
		return nil, false
	}
	t, ok := params[paramName]
	return t, ok
}

// ValidateLangTag reports whether raw parses as a BCP-47 language
// subtag, used when refining a literal captured for a Builtin(TextLang)
// site (spec §4.1 scalar domains; SPEC_FULL.md domain-stack wiring).
func ValidateLangTag(raw string) bool {
	_, err := language.ParseBase(raw)
	return err == nil
}

// ValidateRegionTag reports whether raw parses as a BCP-47 region
// subtag, the TextRegion counterpart to ValidateLangTag.
func ValidateRegionTag(raw string) bool {
	_, err := language.ParseRegion(raw)
	return err == nil
}
