package main

import (
	"flag"
	"log"
	"strings"

	"github.com/corpusprep/corpora"
	"github.com/corpusprep/corpora/fetch"
)

func main() {
	datasetName := flag.String("dataset", "",
		"dataset to prepare ["+
			strings.Join(corpora.KnownDatasets(), ", ")+"]")
	tokenizerType := flag.String("tokenizer_type", "GPT2BPETokenizer",
		"tokenizer type [GPT2BPETokenizer, HFGPT2Tokenizer, "+
			"CharLevelTokenizer]")
	dataDir := flag.String("data_dir", "",
		"data directory (defaults to $DATA_DIR, else ./data)")
	vocabFile := flag.String("vocab_file", "",
		"explicit vocabulary file")
	mergeFile := flag.String("merge_file", "",
		"explicit merge table file")
	forceRedownload := flag.Bool("force_redownload", false,
		"re-download sources even if the dataset directory exists")
	fetcherKind := flag.String("fetcher", "wget",
		"fetch mechanism for http(s) sources [wget, http]")
	flag.Parse()
	if *datasetName == "" {
		flag.Usage()
		log.Fatal("Must provide -dataset")
	}

	preparer := corpora.NewPreparer()
	switch *fetcherKind {
	case "wget":
		// NewPreparer default.
	case "http":
		preparer.Fetcher = fetch.NewDispatcher(&fetch.HTTPFetcher{})
	default:
		log.Fatalf("Invalid fetcher %q", *fetcherKind)
	}

	log.Printf("Preparing dataset: %s\n", *datasetName)
	log.Printf("Tokenizer type: %s\n", *tokenizerType)

	prepErr := preparer.PrepareDataset(*datasetName, corpora.Config{
		TokenizerKind: corpora.TokenizerKind(*tokenizerType),
		VocabFile:     *vocabFile,
		MergeFile:     *mergeFile,
		DataDir:       *dataDir,
		ForceRefresh:  *forceRedownload,
	})
	if prepErr != nil {
		log.Fatal(prepErr)
	}
}
