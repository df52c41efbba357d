package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Length limits for dataset fields.
const (
	MaxIDLength    = 256
	MaxLabelLength = 1024
)

// validate is a singleton validator instance
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterAlias("node_id", fmt.Sprintf("required,max=%d", MaxIDLength))
	v.RegisterAlias("node_label", fmt.Sprintf("max=%d", MaxLabelLength))
	return v
}

// NodeRecord is one row of a nodes file.
type NodeRecord struct {
	ID    string `validate:"node_id"`
	Label string `validate:"node_label"`
}

// EdgeRecord is one row of an edges file.
type EdgeRecord struct {
	Source string  `validate:"node_id"`
	Target string  `validate:"node_id,nefield=Source"`
	Weight float64 `validate:"gt=0"`
}

// ValidateNodeRecord checks a node row before it reaches the graph builder.
func ValidateNodeRecord(rec *NodeRecord) error {
	if rec == nil {
		return errors.New("node record cannot be nil")
	}
	return Struct(rec)
}

// ValidateEdgeRecord checks an edge row before it reaches the graph builder.
// NaN weights fail the gt=0 rule.
func ValidateEdgeRecord(rec *EdgeRecord) error {
	if rec == nil {
		return errors.New("edge record cannot be nil")
	}
	return Struct(rec)
}

// Struct validates any struct carrying validate tags and reports the first
// failure in a readable form.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	// Namespace is "Type.Field[i].Sub"; drop the type name
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	param := e.Param()

	// ActualTag resolves the node_id and node_label aliases
	switch e.ActualTag() {
	case "required":
		return fmt.Errorf("%s: field is required", field)
	case "max":
		return fmt.Errorf("%s: must not exceed %s characters", field, param)
	case "gt":
		return fmt.Errorf("%s: must be greater than %s, got %v", field, param, e.Value())
	case "nefield":
		return fmt.Errorf("%s: must differ from %s", field, param)
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.ActualTag())
	}
}
