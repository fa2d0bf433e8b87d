// Package fetch retrieves remote corpus sources onto local storage. The
// pipeline core only depends on the Fetcher interface; implementations
// cover an external downloader subprocess, direct HTTP, and S3.
package fetch

import (
	"strings"

	"github.com/google/uuid"
)

// SessionId is unique per process and is embedded in the HTTP fetcher's
// User-Agent header.
var SessionId string

func init() {
	sessionUUID, err := uuid.NewRandom()
	if err != nil {
		panic(err)
	}
	SessionId = strings.Replace(sessionUUID.String(), "-", "", -1)
}

// Fetcher downloads a single remote source to a local destination path.
// Implementations either write the file completely or return an error.
type Fetcher interface {
	Fetch(url string, dest string) error
}

// Dispatcher routes fetches by URL scheme: s3:// locators go to the S3
// fetcher when one is configured, everything else to the default fetcher.
type Dispatcher struct {
	Default Fetcher
	S3      Fetcher
}

func (d *Dispatcher) Fetch(url string, dest string) error {
	if strings.HasPrefix(url, "s3://") && d.S3 != nil {
		return d.S3.Fetch(url, dest)
	}
	return d.Default.Fetch(url, dest)
}

// NewDispatcher wraps a default fetcher with s3:// routing.
func NewDispatcher(defaultFetcher Fetcher) *Dispatcher {
	return &Dispatcher{
		Default: defaultFetcher,
		S3:      &S3Fetcher{},
	}
}
