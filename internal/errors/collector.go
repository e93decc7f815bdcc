package errors

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// FileError records a failure tied to one file of the export.
type FileError struct {
	Path      string
	Pass      string
	Err       error
	Timestamp time.Time
}

// Error implements the error interface
func (fe *FileError) Error() string {
	if fe.Pass != "" {
		return fmt.Sprintf("%s: %s: %v", fe.Pass, fe.Path, fe.Err)
	}
	return fmt.Sprintf("%s: %v", fe.Path, fe.Err)
}

// Unwrap returns the underlying error
func (fe *FileError) Unwrap() error {
	return fe.Err
}

// ErrorCollector collects per-file failures so a pass can keep going and
// report them together.
type ErrorCollector struct {
	fileErrors []FileError
	mutex      sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		fileErrors: make([]FileError, 0),
	}
}

// Add adds a file error to the collector
func (ec *ErrorCollector) Add(pass, path string, err error) {
	if err == nil {
		return
	}
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.fileErrors = append(ec.fileErrors, FileError{
		Path:      path,
		Pass:      pass,
		Err:       err,
		Timestamp: time.Now(),
	})
}

// GetErrors returns a copy of the collected errors
func (ec *ErrorCollector) GetErrors() []FileError {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	result := make([]FileError, len(ec.fileErrors))
	copy(result, ec.fileErrors)
	return result
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.fileErrors) > 0
}

// Clear clears all errors
func (ec *ErrorCollector) Clear() {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.fileErrors = ec.fileErrors[:0]
}

// Err folds the collected errors into one build error, or nil.
func (ec *ErrorCollector) Err() error {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()

	if len(ec.fileErrors) == 0 {
		return nil
	}

	lines := make([]string, 0, len(ec.fileErrors))
	for i := range ec.fileErrors {
		lines = append(lines, ec.fileErrors[i].Error())
	}

	se := NewBuildError(ErrCodePassFailed,
		fmt.Sprintf("%d file(s) failed", len(ec.fileErrors)), nil)
	se.Message += ": " + strings.Join(lines, "; ")
	return se.WithContext("count", len(ec.fileErrors))
}
