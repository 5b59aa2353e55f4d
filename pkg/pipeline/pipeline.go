// Package pipeline provides the parse → layout → render pipeline for orbit.
//
// The CLI and the HTTP server both go through this package, so defaults,
// validation, caching and instrumentation behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode and validate a JSON or YAML graph ([ParseGraph])
//  2. Layout: place nodes on the circle and compute edge curves ([ComputeLayout])
//  3. Render: produce SVG, PNG, PDF, DOT or layout JSON ([RenderLayout])
//
// [Runner] wraps the last two stages with a [cache.Cache].
//
// # Usage
//
//	g, err := pipeline.ReadGraphFile(ctx, "graph.yaml")
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, &g, pipeline.Options{
//	    Width:   800,
//	    Height:  600,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbit/pkg/cache"
	"github.com/matzehuels/orbit/pkg/circular"
	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/graph"
	"github.com/matzehuels/orbit/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultMargin is the default distance between frame and circle box.
	DefaultMargin = 0.0

	// DefaultCurveFormula is the default control point formula.
	DefaultCurveFormula = circular.FormulaSigned

	// DefaultStyle is the default visual style.
	DefaultStyle = render.StyleSimple

	// DefaultEngine is the default SVG engine.
	DefaultEngine = render.EngineNative

	// DefaultNodeRadius is the default node circle radius in pixels.
	DefaultNodeRadius = render.DefaultNodeRadius
)

// Format constants for output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatPDF  = render.FormatPDF
	FormatDOT  = render.FormatDOT
	FormatJSON = "json" // The layout itself
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidCurveFormulas is the set of supported control point formulas.
var ValidCurveFormulas = map[string]bool{
	circular.FormulaSigned: true,
	circular.FormulaLegacy: true,
}

// ValidEngines is the set of supported SVG engines.
var ValidEngines = map[string]bool{
	render.EngineNative:   true,
	render.EngineGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width        float64 `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height       float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	Margin       float64 `json:"margin,omitempty" validate:"omitempty,gte=0"`
	CurveFormula string  `json:"curve_formula,omitempty" validate:"omitempty,oneof=signed legacy"`

	// Render options
	Formats    []string `json:"formats,omitempty" validate:"omitempty,dive,oneof=svg png pdf dot json"`
	Style      string   `json:"style,omitempty" validate:"omitempty,oneof=simple outline"`
	Engine     string   `json:"engine,omitempty" validate:"omitempty,oneof=native graphviz"`
	NodeRadius float64  `json:"node_radius,omitempty" validate:"omitempty,gt=0"`
	ShowLabels bool     `json:"show_labels,omitempty"`

	// Refresh skips cache lookups but still writes results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Layout is the computed layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	CurvedEdges int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if style == "" || !render.IsStyle(style) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %v)", style, render.Styles)
	}
	return nil
}

// ValidateCurveFormula checks that a curve formula is valid.
func ValidateCurveFormula(name string) error {
	if !ValidCurveFormulas[name] {
		return errors.New(errors.ErrCodeInvalidCurveFormula, "invalid curve formula: %q (must be one of: signed, legacy)", name)
	}
	return nil
}

// ValidateEngine checks that an engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.CurveFormula == "" {
		o.CurveFormula = DefaultCurveFormula
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateDimensions(o.Width, o.Height, o.Margin); err != nil {
		return err
	}
	return ValidateCurveFormula(o.CurveFormula)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.NodeRadius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node radius cannot be negative (got %g)", o.NodeRadius)
	}
	return nil
}

// ValidateAndSetDefaults validates and defaults every stage.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// View returns the drawing frame described by the options.
func (o *Options) View() graph.View {
	return graph.View{Width: o.Width, Height: o.Height, Margin: o.Margin}
}

// RenderOptions returns the renderer options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Style:      o.Style,
		Engine:     o.Engine,
		NodeRadius: o.NodeRadius,
		ShowLabels: o.ShowLabels,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:        o.Width,
		Height:       o.Height,
		Margin:       o.Margin,
		CurveFormula: o.CurveFormula,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Layout JSON does not depend on render options.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	if format == FormatJSON {
		return cache.ArtifactKeyOpts{Format: format}
	}
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style + "/" + o.Engine,
		NodeRadius: o.NodeRadius,
		ShowLabels: o.ShowLabels,
	}
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}
