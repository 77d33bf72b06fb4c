package contract

import "errors"

var (
	ErrModelInvoke       = errors.New("model invoke failed")
	ErrSchemaViolation   = errors.New("model response violates schema")
	ErrUnknownTemplate   = errors.New("no template for scenario and phase")
	ErrSchemaDrift       = errors.New("template references unknown placeholder")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidScenario   = errors.New("invalid scenario")
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	ErrCallEnded         = errors.New("call has ended")
)
