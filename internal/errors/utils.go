package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a SiteError if the
// input is not already one
func Wrap(err error, errType ErrorType, code, message string) *SiteError {
	if err == nil {
		return nil
	}

	// Keep the inner error's location and context
	var se *SiteError
	if errors.As(err, &se) {
		return &SiteError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       se,
			Context:     se.Context,
			Path:        se.Path,
			Recoverable: se.Recoverable,
		}
	}

	return &SiteError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeBuild || errType == ErrorTypeNetwork,
	}
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *SiteError {
	se := Wrap(err, ErrorTypeIO, code, message)
	if se != nil {
		se.Recoverable = false
	}
	return se
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *SiteError {
	se := Wrap(err, ErrorTypeConfig, code, message)
	if se != nil {
		se.Recoverable = false
	}
	return se
}

// GetErrorContext extracts context information from a SiteError
func GetErrorContext(err error) map[string]interface{} {
	var se *SiteError
	if errors.As(err, &se) {
		context := make(map[string]interface{})
		for k, v := range se.Context {
			context[k] = v
		}
		if se.Path != "" {
			context["path"] = se.Path
		}
		context["type"] = string(se.Type)
		context["code"] = se.Code
		context["recoverable"] = se.Recoverable
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}

// ExtractCause extracts the root cause from a wrapped error
func ExtractCause(err error) error {
	for err != nil {
		var se *SiteError
		if !errors.As(err, &se) {
			return err
		}
		if se.Cause == nil {
			return se
		}
		err = se.Cause
	}
	return nil
}
