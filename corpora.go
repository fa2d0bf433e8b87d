package corpora

import (
	"os"
	"path"
	"runtime"
)

// TokenizerKind selects how vocabulary defaults are resolved when no
// explicit vocabulary file is given.
type TokenizerKind string

const (
	GPT2BPETokenizer   TokenizerKind = "GPT2BPETokenizer"
	HFGPT2Tokenizer    TokenizerKind = "HFGPT2Tokenizer"
	CharLevelTokenizer TokenizerKind = "CharLevelTokenizer"
)

// DatasetKind is the closed set of dataset variants the pipeline knows how
// to prepare.
type DatasetKind int

const (
	// StandardCorpus datasets are downloaded from their declared URLs.
	StandardCorpus DatasetKind = iota
	// CustomCorpus datasets package user-supplied local text files instead
	// of downloading anything.
	CustomCorpus
)

// DatasetDef is the static identity of a registered dataset: its name, the
// ordered list of source URLs, and pass-through hints for the external
// preprocessing tool. Name doubles as the storage subdirectory.
type DatasetDef struct {
	Name    string
	Urls    []string
	NumDocs int
	Ftfy    bool
	Kind    DatasetKind
}

// Config is the per-run configuration for a dataset preparation.
type Config struct {
	TokenizerKind TokenizerKind
	VocabFile     string
	MergeFile     string
	DataDir       string
	ForceRefresh  bool
	NumWorkers    int
	// DatasetName retains the full requested name, including any logical
	// sub-name after a `/`. Only the custom corpus variant consults it, to
	// disambiguate multiple custom runs.
	DatasetName string
}

// Descriptor binds a registered dataset definition to a resolved
// configuration. Construct with NewDescriptor so defaults are filled in.
type Descriptor struct {
	DatasetDef
	Config
}

// DefaultDataDir returns the storage root: $DATA_DIR if set, else ./data.
func DefaultDataDir() string {
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		return dataDir
	}
	return "./data"
}

// NewDescriptor resolves configuration defaults for a dataset definition.
// The vocabulary default depends on the tokenizer kind; tokenizer kinds
// outside the known set require an explicit vocabulary file. The merge
// table default is derived from the data directory regardless of kind.
func NewDescriptor(def DatasetDef, cfg Config) (*Descriptor, error) {
	if cfg.TokenizerKind == "" {
		cfg.TokenizerKind = GPT2BPETokenizer
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.MergeFile == "" {
		cfg.MergeFile = path.Join(cfg.DataDir, mergesFileName)
	}
	if cfg.VocabFile == "" {
		switch cfg.TokenizerKind {
		case GPT2BPETokenizer:
			cfg.VocabFile = path.Join(cfg.DataDir, vocabFileName)
		case HFGPT2Tokenizer:
			// Symbolic pretrained id, no file on disk required.
			cfg.VocabFile = "gpt2"
		case CharLevelTokenizer:
			// No vocabulary required.
		default:
			return nil, &ConfigurationError{
				TokenizerKind: cfg.TokenizerKind,
				Reason:        "no vocab file provided",
			}
		}
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	return &Descriptor{DatasetDef: def, Config: cfg}, nil
}

// Dir returns the per-dataset storage directory.
func (d *Descriptor) Dir() string {
	return path.Join(d.DataDir, d.Name)
}

// Exists reports whether the dataset's storage directory is present. It is
// the sole gate for skipping acquisition on non-forced runs.
func (d *Descriptor) Exists() bool {
	stat, statErr := os.Stat(d.Dir())
	return statErr == nil && stat.IsDir()
}
