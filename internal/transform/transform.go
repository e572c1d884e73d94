package transform

import (
	"fmt"

	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
)

// ScenarioTransform is a what-if edit of a scenario. Transforms compose: each
// receives the sanitized output of the previous one.
type ScenarioTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error)

	// Name returns a short identifier, e.g. "harvest_losses".
	Name() string

	// Description returns a human-readable summary of the edit.
	Description() string

	// Validate checks the parameters against base without applying.
	Validate(base domain.ScenarioInputs) error
}

// ApplyTransforms applies transforms in order and sanitizes after each step.
func ApplyTransforms(base domain.ScenarioInputs, transforms []ScenarioTransform) (domain.ScenarioInputs, error) {
	current := config.Sanitize(base)

	for i, transform := range transforms {
		if transform == nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = config.Sanitize(next)
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
