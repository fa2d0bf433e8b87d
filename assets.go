package corpora

import (
	"encoding/json"
	"log"
	"os"
	"path"

	"github.com/pkg/errors"
)

// Shared tokenizer assets live at the top of the data directory and are
// resolved once per run, independently of any single dataset.
const (
	vocabFileName  = "gpt2-vocab.json"
	mergesFileName = "gpt2-merges.txt"

	gpt2VocabURL = "https://huggingface.co/datasets/RaviChandera/" +
		"gpt2-vocab/raw/main/gpt2-vocab.json"
	gpt2MergeURL = "https://huggingface.co/datasets/RaviChandera/" +
		"gpt2-merges/raw/main/gpt2-merges.txt"
)

// ensureTokenizerAssets fetches the shared GPT-2 vocabulary and merge table
// into dataDir when the tokenizer kind needs them and they are absent, then
// sanity-checks both files.
func (p *Preparer) ensureTokenizerAssets(kind TokenizerKind,
	dataDir string) error {
	if kind != "" && kind != GPT2BPETokenizer {
		return nil
	}
	assets := []struct {
		url  string
		name string
	}{
		{gpt2VocabURL, vocabFileName},
		{gpt2MergeURL, mergesFileName},
	}
	for _, asset := range assets {
		target := path.Join(dataDir, asset.name)
		if _, statErr := os.Stat(target); statErr == nil {
			continue
		}
		log.Printf("Resolving tokenizer asset %s...", asset.name)
		if fetchErr := p.Fetcher.Fetch(asset.url, target); fetchErr != nil {
			return &AcquisitionError{URL: asset.url, Err: fetchErr}
		}
	}
	return verifyTokenizerAssets(dataDir)
}

// verifyTokenizerAssets maps both asset files and checks that the
// vocabulary is parseable JSON and the merge table is non-empty, so a
// truncated download fails here instead of deep inside the external tool.
func verifyTokenizerAssets(dataDir string) error {
	vocabPath := path.Join(dataDir, vocabFileName)
	vocabData, vocabErr := readMmap(vocabPath)
	if vocabErr != nil {
		return errors.Wrapf(vocabErr, "reading %q", vocabPath)
	}
	defer vocabData.Unmap()
	if !json.Valid(vocabData) {
		return errors.Errorf("%q is not valid JSON", vocabPath)
	}

	mergesPath := path.Join(dataDir, mergesFileName)
	mergesData, mergesErr := readMmap(mergesPath)
	if mergesErr != nil {
		return errors.Wrapf(mergesErr, "reading %q", mergesPath)
	}
	defer mergesData.Unmap()
	if len(mergesData) == 0 {
		return errors.Errorf("%q is empty", mergesPath)
	}
	return nil
}
