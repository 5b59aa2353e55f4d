package server

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/graph"
	"github.com/matzehuels/orbit/pkg/pipeline"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LayoutRequest is the body of POST /api/v1/layout.
type LayoutRequest struct {
	Graph   *graph.Graph     `json:"graph" validate:"required"`
	Options pipeline.Options `json:"options"`
}

// RenderRequest is the body of POST /api/v1/render. Exactly one of
// Graph, Layout and LayoutID must be set.
type RenderRequest struct {
	Graph    *graph.Graph     `json:"graph,omitempty"`
	Layout   *graph.Layout    `json:"layout,omitempty"`
	LayoutID string           `json:"layout_id,omitempty" validate:"omitempty,uuid"`
	Options  pipeline.Options `json:"options"`
}

// LayoutResponse is returned by POST /api/v1/layout.
type LayoutResponse struct {
	ID        string       `json:"id"`
	GraphHash string       `json:"graph_hash"`
	Cached    bool         `json:"cached"`
	Layout    graph.Layout `json:"layout"`
}

// RenderResponse is returned by POST /api/v1/render when more than one
// format is requested. Artifacts are base64 encoded.
type RenderResponse struct {
	Artifacts map[string][]byte `json:"artifacts"`
	Cached    bool              `json:"cached"`
}

func (req *LayoutRequest) validate() error {
	if err := validateStruct(req); err != nil {
		return err
	}
	return req.Graph.Validate()
}

func (req *RenderRequest) validate() error {
	if err := validateStruct(req); err != nil {
		return err
	}
	set := 0
	for _, ok := range []bool{req.Graph != nil, req.Layout != nil, req.LayoutID != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of graph, layout and layout_id is required")
	}
	if req.Graph != nil {
		return req.Graph.Validate()
	}
	if req.Layout != nil {
		return req.Layout.CheckFinite()
	}
	return nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request")
	}
	return errors.New(errors.ErrCodeInvalidInput, "%s", formatFieldError(verrs[0]))
}

func formatFieldError(e validator.FieldError) string {
	// Drop the request type: "RenderRequest.options.style" → "options.style".
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: field is required", field)
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s", field, e.Param())
	case "uuid":
		return fmt.Sprintf("%s: must be a UUID", field)
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", field, e.Param())
	default:
		return fmt.Sprintf("%s: validation failed (%s)", field, e.Tag())
	}
}
