package corpora

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// The registry maps a lowercase dataset key to its definition. The "pass"
// sentinel is registered but prepares nothing; dry runs and tests use it.
const passDataset = "pass"

func pileUrls() []string {
	urls := make([]string, 30)
	for i := range urls {
		urls[i] = fmt.Sprintf(
			"https://the-eye.eu/public/AI/pile/train/%02d.jsonl.zst", i)
	}
	return urls
}

func c4Urls() []string {
	urls := make([]string, 1024)
	for i := range urls {
		urls[i] = fmt.Sprintf(
			"https://the-eye.eu/eleuther_staging/c4/en/"+
				"c4-train.%05d-of-01024.json.gz", i)
	}
	return urls
}

func c4OpenWebTextUrls() []string {
	urls := make([]string, 512)
	for i := range urls {
		urls[i] = fmt.Sprintf(
			"https://the-eye.eu/eleuther_staging/c4/realnewslike/"+
				"c4-train.%05d-of-00512.json.gz", i)
	}
	return urls
}

var registry = map[string]DatasetDef{
	passDataset: {Name: passDataset},
	"enron": {
		Name:    "enron",
		Urls:    []string{"http://eaidata.bmk.sh/data/enron_emails.jsonl.zst"},
		NumDocs: 517401,
	},
	"pile_subset": {
		Name: "pile_00",
		Urls: []string{"https://the-eye.eu/public/AI/pile/train/00.jsonl.zst"},
	},
	"pile": {
		Name: "pile",
		Urls: pileUrls(),
	},
	"github": {
		Name: "github",
		Urls: []string{"http://eaidata.bmk.sh/data/github_small.jsonl.zst"},
	},
	"arxiv": {
		Name: "arxiv",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/2020-09-08-arxiv-extracts-nofallback-until-2007-068.tar.gz"},
	},
	"europarl": {
		Name: "europarl",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/EuroParliamentProceedings_1996_2011.jsonl.zst"},
	},
	"freelaw": {
		Name: "freelaw",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/FreeLaw_Opinions.jsonl.zst"},
	},
	"nih": {
		Name: "nih",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/NIH_ExPORTER_awarded_grant_text.jsonl.zst"},
	},
	"pubmed": {
		Name: "pubmed",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/PMC_extracts.tar.gz"},
	},
	"books1": {
		Name: "books1",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/books1.tar.gz"},
	},
	"books3": {
		Name: "books3",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/books3.tar.gz"},
	},
	"hackernews": {
		Name:    "hackernews",
		Urls:    []string{"https://the-eye.eu/public/AI/pile_preliminary_components/hn.tar.gz"},
		NumDocs: 373000,
	},
	"openwebtext2": {
		Name:    "openwebtext2",
		Urls:    []string{"https://huggingface.co/datasets/segyges/OpenWebText2/resolve/main/openwebtext2.jsonl.zst.tar"},
		NumDocs: 17103000,
	},
	"stackexchange": {
		Name: "stackexchange",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/stackexchange_dataset.tar"},
	},
	"ubuntu_irc": {
		Name: "ubuntu_irc",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/ubuntu_irc_until_2020_9_1.jsonl.zst"},
	},
	"youtube_subtitles": {
		Name: "youtube_subtitles",
		Urls: []string{"https://the-eye.eu/public/AI/pile_preliminary_components/yt_subs.jsonl.zst"},
	},
	"c4": {
		Name: "c4",
		Urls: c4Urls(),
	},
	"c4_openwebtext": {
		Name: "c4_openwebtext",
		Urls: c4OpenWebTextUrls(),
	},
	"customdataset": {
		Name: "customdataset",
		Kind: CustomCorpus,
	},
}

// KnownDatasets returns the sorted registry keys, including the "pass"
// sentinel.
func KnownDatasets() []string {
	known := make([]string, 0, len(registry))
	for key := range registry {
		known = append(known, key)
	}
	sort.Strings(known)
	return known
}

// Lookup finds a dataset definition by key. Matching is case-insensitive;
// the stored Name is used verbatim as the directory name.
func Lookup(key string) (DatasetDef, bool) {
	def, ok := registry[strings.ToLower(key)]
	return def, ok
}

// PrepareDataset downloads and tokenizes a registered dataset with the
// default collaborators.
func PrepareDataset(datasetName string, cfg Config) error {
	return NewPreparer().PrepareDataset(datasetName, cfg)
}

// PrepareDataset resolves the dataset name against the registry and runs
// the full preparation: shared tokenizer assets, then acquisition and
// transformation. The portion of the name before the first `/` is the
// registry key; the full name is retained as the logical sub-name. The
// worker count is forced to 1 so runs are deterministic.
func (p *Preparer) PrepareDataset(datasetName string, cfg Config) error {
	key := strings.ToLower(strings.Split(datasetName, "/")[0])
	def, ok := Lookup(key)
	if !ok {
		return &UnknownDatasetError{Name: datasetName, Known: KnownDatasets()}
	}
	if key == passDataset {
		// Sentinel: no directories, no downloads, no subprocesses.
		return nil
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if mkdirErr := os.MkdirAll(cfg.DataDir, 0755); mkdirErr != nil {
		return errors.Wrapf(mkdirErr, "creating %q", cfg.DataDir)
	}
	if assetsErr := p.ensureTokenizerAssets(cfg.TokenizerKind,
		cfg.DataDir); assetsErr != nil {
		return assetsErr
	}

	cfg.NumWorkers = 1
	if def.Kind == CustomCorpus {
		cfg.DatasetName = datasetName
	}
	descriptor, descriptorErr := NewDescriptor(def, cfg)
	if descriptorErr != nil {
		return descriptorErr
	}
	return p.Prepare(descriptor)
}
