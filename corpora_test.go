package corpora

import (
	"os"
	"path"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorDefaultsGPT2(t *testing.T) {
	def, ok := Lookup("enron")
	require.True(t, ok)
	descriptor, err := NewDescriptor(def, Config{
		TokenizerKind: GPT2BPETokenizer,
		DataDir:       "/tmp/data",
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data/gpt2-vocab.json", descriptor.VocabFile)
	assert.Equal(t, "/tmp/data/gpt2-merges.txt", descriptor.MergeFile)
	assert.True(t, descriptor.NumWorkers > 0)
}

func TestDescriptorDefaultsHFGPT2(t *testing.T) {
	def, _ := Lookup("enron")
	descriptor, err := NewDescriptor(def, Config{
		TokenizerKind: HFGPT2Tokenizer,
		DataDir:       "/tmp/data",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt2", descriptor.VocabFile)
	assert.Equal(t, "/tmp/data/gpt2-merges.txt", descriptor.MergeFile)
}

func TestDescriptorDefaultsCharLevel(t *testing.T) {
	def, _ := Lookup("enron")
	descriptor, err := NewDescriptor(def, Config{
		TokenizerKind: CharLevelTokenizer,
		DataDir:       "/tmp/data",
	})
	require.NoError(t, err)
	assert.Equal(t, "", descriptor.VocabFile)
	// The merge table default does not depend on the tokenizer kind.
	assert.Equal(t, "/tmp/data/gpt2-merges.txt", descriptor.MergeFile)
}

func TestDescriptorUnknownKindRequiresVocab(t *testing.T) {
	def, _ := Lookup("enron")
	_, err := NewDescriptor(def, Config{
		TokenizerKind: "SPMTokenizer",
		DataDir:       "/tmp/data",
	})
	require.Error(t, err)
	configErr, ok := err.(*ConfigurationError)
	require.True(t, ok)
	assert.Equal(t, TokenizerKind("SPMTokenizer"), configErr.TokenizerKind)

	descriptor, err := NewDescriptor(def, Config{
		TokenizerKind: "SPMTokenizer",
		DataDir:       "/tmp/data",
		VocabFile:     "/tmp/data/spm.vocab",
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data/spm.vocab", descriptor.VocabFile)
}

func TestDescriptorExists(t *testing.T) {
	dataDir := t.TempDir()
	def, _ := Lookup("enron")
	descriptor, err := NewDescriptor(def, Config{DataDir: dataDir})
	require.NoError(t, err)
	assert.False(t, descriptor.Exists())
	require.NoError(t, os.MkdirAll(path.Join(dataDir, "enron"), 0755))
	assert.True(t, descriptor.Exists())
}

func TestLookupCaseInsensitive(t *testing.T) {
	def, ok := Lookup("ENRON")
	assert.True(t, ok)
	assert.Equal(t, "enron", def.Name)
	_, ok = Lookup("no_such_dataset")
	assert.False(t, ok)
}

func TestKnownDatasets(t *testing.T) {
	known := KnownDatasets()
	assert.Contains(t, known, "pass")
	assert.Contains(t, known, "enron")
	assert.Contains(t, known, "customdataset")
	assert.Contains(t, known, "pile_subset")
	assert.True(t, sort.StringsAreSorted(known))
}

func TestGeneratedUrlLists(t *testing.T) {
	pile, _ := Lookup("pile")
	assert.Len(t, pile.Urls, 30)
	assert.Equal(t,
		"https://the-eye.eu/public/AI/pile/train/00.jsonl.zst",
		pile.Urls[0])
	assert.Equal(t,
		"https://the-eye.eu/public/AI/pile/train/29.jsonl.zst",
		pile.Urls[29])

	c4, _ := Lookup("c4")
	assert.Len(t, c4.Urls, 1024)
	assert.Equal(t,
		"https://the-eye.eu/eleuther_staging/c4/en/"+
			"c4-train.00000-of-01024.json.gz", c4.Urls[0])

	c4owt, _ := Lookup("c4_openwebtext")
	assert.Len(t, c4owt.Urls, 512)
}
