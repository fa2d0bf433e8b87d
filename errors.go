package corpora

import (
	"fmt"
	"strings"
)

// UnknownDatasetError is returned when a requested dataset name has no
// registry entry. It lists the known dataset keys.
type UnknownDatasetError struct {
	Name  string
	Known []string
}

func (e *UnknownDatasetError) Error() string {
	return fmt.Sprintf("dataset %q not recognized - please choose from [%s]",
		e.Name, strings.Join(e.Known, ", "))
}

// ConfigurationError is returned at descriptor construction when a
// tokenizer kind outside the known set is used without an explicit
// vocabulary file.
type ConfigurationError struct {
	TokenizerKind TokenizerKind
	Reason        string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tokenizer type %q: %s", e.TokenizerKind, e.Reason)
}

// AcquisitionError is returned when a source fails to fetch. No cleanup of
// previously fetched sources is performed.
type AcquisitionError struct {
	URL string
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("cannot download file at URL %s: %s", e.URL, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when custom corpus packaging finds no
// qualifying input files.
type ValidationError struct {
	Dir    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Dir, e.Reason)
}

// TransformError is returned when the external preprocessing tool exits
// non-zero.
type TransformError struct {
	Dataset string
	Err     error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("preprocessing %s failed: %s", e.Dataset, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
