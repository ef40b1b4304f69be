// Package apply turns compiled content types into ordered creation steps
// and runs them one at a time against the backend.
package apply

import (
	"fmt"

	"github.com/mozaik-cms/mozaik/internal/compiler/depgraph"
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
)

// StepKind identifies what a step creates
type StepKind string

const (
	StepCreateContentType     StepKind = "create_content_type"
	StepCreateField           StepKind = "create_field"
	StepCreateFieldValidation StepKind = "create_field_validation"
)

// Step is one backend call of a plan
type Step struct {
	Kind StepKind `json:"kind"`
	// ContentType is the apiId of the content type the step belongs to
	ContentType string `json:"contentType"`
	// Field is the apiId of the field, empty for content type steps
	Field string `json:"field,omitempty"`
	// Validation is the index of the validation on its field
	Validation int `json:"validation,omitempty"`

	ContentTypeInput *ir.ContentTypeInput     `json:"contentTypeInput,omitempty"`
	FieldInput       *ir.FieldInput           `json:"fieldInput,omitempty"`
	ValidationInput  *ir.FieldValidationInput `json:"validationInput,omitempty"`
}

func (s Step) String() string {
	switch s.Kind {
	case StepCreateContentType:
		return fmt.Sprintf("create content type %s", s.ContentType)
	case StepCreateField:
		return fmt.Sprintf("create field %s.%s", s.ContentType, s.Field)
	case StepCreateFieldValidation:
		return fmt.Sprintf("create validation %s.%s#%d (%s)", s.ContentType, s.Field, s.Validation, s.ValidationInput.Type)
	default:
		return string(s.Kind)
	}
}

// Plan is the ordered list of steps that creates a schema from scratch
type Plan struct {
	Steps []Step
	// Cycles are the reference cycles found while ordering the content types
	Cycles [][]string

	graph *depgraph.Graph
}

// ReferencedBy returns the content types with a field referencing apiID
func (p *Plan) ReferencedBy(apiID string) []string {
	if p.graph == nil {
		return nil
	}
	return p.graph.Dependents(apiID)
}

// Blocked returns the content types that cannot be completed while apiID
// is missing: its referrers, their referrers, and so on, nearest first
func (p *Plan) Blocked(apiID string) []string {
	if p.graph == nil {
		return nil
	}
	return p.graph.TransitiveDependents(apiID)
}

// Count returns the number of steps of each kind
func (p *Plan) Count() map[StepKind]int {
	counts := make(map[StepKind]int)
	for _, s := range p.Steps {
		counts[s.Kind]++
	}
	return counts
}

// NewPlan orders inputs by their references and emits the steps in two
// phases: every content type is created without fields first, then each
// content type's fields are created, each one followed by its validations.
// Types that reference each other can therefore always be created.
func NewPlan(inputs []ir.ContentTypeInput) *Plan {
	graph := depgraph.New(inputs)
	order := graph.Order()
	plan := &Plan{Cycles: order.Cycles, graph: graph}

	for i := range order.Inputs {
		ct := order.Inputs[i].WithoutFields()
		plan.Steps = append(plan.Steps, Step{
			Kind:             StepCreateContentType,
			ContentType:      ct.APIID,
			ContentTypeInput: &ct,
		})
	}

	for _, ct := range order.Inputs {
		for i := range ct.Fields {
			field := ct.Fields[i].WithoutValidations()
			plan.Steps = append(plan.Steps, Step{
				Kind:        StepCreateField,
				ContentType: ct.APIID,
				Field:       field.APIID,
				FieldInput:  &field,
			})

			for j := range ct.Fields[i].Validations {
				validation := ct.Fields[i].Validations[j]
				plan.Steps = append(plan.Steps, Step{
					Kind:            StepCreateFieldValidation,
					ContentType:     ct.APIID,
					Field:           field.APIID,
					Validation:      j,
					ValidationInput: &validation,
				})
			}
		}
	}

	return plan
}
