package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxIDLength   = 128
	MaxTypeLength = 50
	MaxBatchSize  = 100000
	MinBatchSize  = 1

	idPattern   = regexp.MustCompile(`^[^\s]+$`)
	typePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)
)

func init() {
	validate = validator.New()
}

// NodeInput describes one node of a graph submitted to the service.
type NodeInput struct {
	ID   string `json:"id" validate:"required,min=1,max=128"`
	Type string `json:"type" validate:"omitempty,max=50"`
}

// EdgeInput describes one edge of a graph submitted to the service.
type EdgeInput struct {
	ID     string   `json:"id" validate:"omitempty,max=128"`
	Source string   `json:"source" validate:"required,min=1,max=128"`
	Target string   `json:"target" validate:"required,min=1,max=128"`
	Type   string   `json:"type" validate:"omitempty,max=50"`
	Weight *float64 `json:"weight" validate:"omitempty"`
}

// ValidateNodeInput validates a single node submitted to the service.
func ValidateNodeInput(in *NodeInput) error {
	if in == nil {
		return errors.New("node input cannot be nil")
	}

	if err := validate.Struct(in); err != nil {
		return formatValidationError(err)
	}

	if !idPattern.MatchString(in.ID) {
		return fmt.Errorf("ID: %q must not contain whitespace", in.ID)
	}
	if !typePattern.MatchString(in.Type) {
		return fmt.Errorf("Type: %q contains invalid characters (only alphanumeric, underscore and dash allowed)", in.Type)
	}

	return nil
}

// ValidateEdgeInput validates a single edge submitted to the service.
func ValidateEdgeInput(in *EdgeInput) error {
	if in == nil {
		return errors.New("edge input cannot be nil")
	}

	if err := validate.Struct(in); err != nil {
		return formatValidationError(err)
	}

	if !typePattern.MatchString(in.Type) {
		return fmt.Errorf("Type: %q contains invalid characters (only alphanumeric, underscore and dash allowed)", in.Type)
	}
	if in.Weight != nil && (*in.Weight != *in.Weight) {
		return errors.New("Weight: must not be NaN")
	}

	return nil
}

// ValidateBatchSize validates the size of a node or edge batch.
func ValidateBatchSize(size int) error {
	if size < MinBatchSize {
		return fmt.Errorf("batch size must be at least %d, got %d", MinBatchSize, size)
	}
	if size > MaxBatchSize {
		return fmt.Errorf("batch size must not exceed %d, got %d", MaxBatchSize, size)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
