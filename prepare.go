package corpora

import (
	"log"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/corpusprep/corpora/fetch"
)

// Preparer drives the acquire-then-transform workflow for one dataset at a
// time. The collaborators are interfaces so tests can observe invocations.
type Preparer struct {
	Fetcher     fetch.Fetcher
	Transformer Transformer
}

// NewPreparer returns a Preparer with the default collaborators: an
// external wget-style downloader with s3:// routing, and the external
// preprocessing tool.
func NewPreparer() *Preparer {
	return &Preparer{
		Fetcher:     fetch.NewDispatcher(&fetch.ExecFetcher{}),
		Transformer: &ExecTransformer{},
	}
}

// acquire downloads every declared source into the dataset directory. It
// does not check for already-present files: every source is re-fetched on
// every call. Acquisition is only entered when the dataset directory is
// absent or a refresh is forced, but a partially-acquired directory will
// not be repaired by a non-forced rerun.
// TODO: decide whether to skip per-file when the file already exists.
func (p *Preparer) acquire(d *Descriptor) error {
	if mkdirErr := os.MkdirAll(d.Dir(), 0755); mkdirErr != nil {
		return errors.Wrapf(mkdirErr, "creating %q", d.Dir())
	}
	for _, url := range d.Urls {
		dest := path.Join(d.Dir(), path.Base(url))
		log.Printf("Downloading %s to %s", url, dest)
		if fetchErr := p.Fetcher.Fetch(url, dest); fetchErr != nil {
			return &AcquisitionError{URL: url, Err: fetchErr}
		}
	}
	return nil
}

// transform invokes the external preprocessing tool. The input is either
// the explicit path handed in by the custom corpus branch, or the
// comma-joined list of locator-derived paths.
func (p *Preparer) transform(d *Descriptor, explicitInput string) error {
	input := explicitInput
	if input == "" {
		inputs := make([]string, len(d.Urls))
		for idx, url := range d.Urls {
			inputs[idx] = path.Join(d.Dir(), path.Base(url))
		}
		input = strings.Join(inputs, ",")
	}
	args := TransformArgs{
		Input:         input,
		OutputPrefix:  path.Join(d.Dir(), d.Name),
		VocabFile:     d.VocabFile,
		MergeFile:     d.MergeFile,
		TokenizerKind: d.TokenizerKind,
		AppendEOD:     true,
		NumWorkers:    d.NumWorkers,
		NumDocs:       d.NumDocs,
		Ftfy:          d.Ftfy,
	}
	if transformErr := p.Transformer.Transform(args); transformErr != nil {
		return &TransformError{Dataset: d.Name, Err: transformErr}
	}
	return nil
}

// Prepare runs one of three mutually exclusive branches: custom corpus
// datasets always package and transform, forced refreshes always acquire,
// and the default branch acquires only when the dataset directory is
// absent. Any failure is terminal for the call; nothing is rolled back.
func (p *Preparer) Prepare(d *Descriptor) error {
	switch {
	case d.Kind == CustomCorpus:
		archivePath, packageErr := p.packageCustom(d)
		if packageErr != nil {
			return packageErr
		}
		return p.transform(d, archivePath)
	case d.ForceRefresh:
		if acquireErr := p.acquire(d); acquireErr != nil {
			return acquireErr
		}
		return p.transform(d, "")
	default:
		if !d.Exists() {
			if acquireErr := p.acquire(d); acquireErr != nil {
				return acquireErr
			}
		}
		return p.transform(d, "")
	}
}
