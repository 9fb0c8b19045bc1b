// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the static option lists that feed the prompt forms:
// design styles, fonts, colour schemes, animations, SEO and performance
// toggles, esoteric-theme elements and image-generation settings. The data
// is read-only; callers receive copies so they can't mutate the tables.
package catalog

import "sort"

// Catalog names exposed through the API and the CLI.
const (
	DesignStyles     = "design_styles"
	Fonts            = "fonts"
	ColorSchemes     = "color_schemes"
	Animations       = "animations"
	Borders          = "borders"
	Layouts          = "layouts"
	SEO              = "seo"
	Performance      = "performance"
	EsotericElements = "esoteric_elements"
	EsotericMoods    = "esoteric_moods"
	ImageSizes       = "image_sizes"
	ImageQualities   = "image_qualities"
	ImageStyles      = "image_styles"
	MatchTypes       = "match_types"
)

// Option is a single selectable value with its human-readable label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Catalog is a named, ordered list of options.
type Catalog struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}

// Has reports whether value is one of the catalog's options.
func (c Catalog) Has(value string) bool {
	for _, o := range c.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// LabelFor returns the label for value, or value itself when it is unknown.
func (c Catalog) LabelFor(value string) string {
	for _, o := range c.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Labels maps every value through LabelFor, preserving order.
func (c Catalog) Labels(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, c.LabelFor(v))
	}
	return out
}

var registry = map[string]Catalog{}

func register(name, label string, opts []Option) {
	registry[name] = Catalog{Name: name, Label: label, Options: opts}
}

// Lookup returns a copy of the named catalog.
func Lookup(name string) (Catalog, bool) {
	c, ok := registry[name]
	if !ok {
		return Catalog{}, false
	}
	return clone(c), true
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Catalog {
	c, ok := Lookup(name)
	if !ok {
		panic("catalog: unknown catalog " + name)
	}
	return c
}

// All returns every catalog sorted by name.
func All() []Catalog {
	out := make([]Catalog, 0, len(registry))
	for _, c := range registry {
		out = append(out, clone(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered catalog names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clone(c Catalog) Catalog {
	opts := make([]Option, len(c.Options))
	copy(opts, c.Options)
	c.Options = opts
	return c
}
