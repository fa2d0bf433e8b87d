package corpora

import (
	"os"
	"path"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchCall struct {
	Url  string
	Dest string
}

// recordingFetcher logs every fetch and writes a small placeholder file to
// the destination, so downstream presence and mmap checks see real files.
type recordingFetcher struct {
	Calls  []fetchCall
	FailOn string
}

func (f *recordingFetcher) Fetch(url string, dest string) error {
	f.Calls = append(f.Calls, fetchCall{Url: url, Dest: dest})
	if f.FailOn != "" && f.FailOn == url {
		return errors.New("server may be down")
	}
	return os.WriteFile(dest, []byte("{}"), 0644)
}

type recordingTransformer struct {
	Calls []TransformArgs
	Fail  bool
}

func (t *recordingTransformer) Transform(args TransformArgs) error {
	t.Calls = append(t.Calls, args)
	if t.Fail {
		return errors.New("exit status 1")
	}
	return nil
}

func newTestPreparer() (*Preparer, *recordingFetcher, *recordingTransformer) {
	fetcher := &recordingFetcher{}
	transformer := &recordingTransformer{}
	return &Preparer{
		Fetcher:     fetcher,
		Transformer: transformer,
	}, fetcher, transformer
}

func TestPassSentinelIsNoOp(t *testing.T) {
	preparer, fetcher, transformer := newTestPreparer()
	dataDir := path.Join(t.TempDir(), "data")
	err := preparer.PrepareDataset("pass", Config{DataDir: dataDir})
	require.NoError(t, err)
	assert.Empty(t, fetcher.Calls)
	assert.Empty(t, transformer.Calls)
	_, statErr := os.Stat(dataDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnknownDataset(t *testing.T) {
	preparer, fetcher, transformer := newTestPreparer()
	dataDir := path.Join(t.TempDir(), "data")
	err := preparer.PrepareDataset("not_a_dataset", Config{DataDir: dataDir})
	require.Error(t, err)
	var unknownErr *UnknownDatasetError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "not_a_dataset", unknownErr.Name)
	assert.Contains(t, unknownErr.Known, "enron")
	assert.Empty(t, fetcher.Calls)
	assert.Empty(t, transformer.Calls)
	_, statErr := os.Stat(dataDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrepareCachedSkipsAcquisition(t *testing.T) {
	preparer, fetcher, transformer := newTestPreparer()
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(path.Join(dataDir, "enron"), 0755))

	def, _ := Lookup("enron")
	descriptor, err := NewDescriptor(def, Config{DataDir: dataDir})
	require.NoError(t, err)

	require.NoError(t, preparer.Prepare(descriptor))
	assert.Empty(t, fetcher.Calls)
	require.Len(t, transformer.Calls, 1)
	assert.Equal(t, path.Join(dataDir, "enron", "enron"),
		transformer.Calls[0].OutputPrefix)
}

func TestPrepareForcedRefetchesEverySource(t *testing.T) {
	preparer, fetcher, transformer := newTestPreparer()
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(path.Join(dataDir, "pile_00"), 0755))

	def, _ := Lookup("pile_subset")
	descriptor, err := NewDescriptor(def, Config{
		DataDir:      dataDir,
		ForceRefresh: true,
	})
	require.NoError(t, err)

	require.NoError(t, preparer.Prepare(descriptor))
	require.Len(t, fetcher.Calls, len(def.Urls))
	for idx, url := range def.Urls {
		assert.Equal(t, url, fetcher.Calls[idx].Url)
		assert.Equal(t,
			path.Join(dataDir, "pile_00", path.Base(url)),
			fetcher.Calls[idx].Dest)
	}
	require.Len(t, transformer.Calls, 1)
}

func TestPrepareAcquiresWhenAbsent(t *testing.T) {
	preparer, fetcher, transformer := newTestPreparer()
	dataDir := t.TempDir()

	def, _ := Lookup("enron")
	descriptor, err := NewDescriptor(def, Config{DataDir: dataDir})
	require.NoError(t, err)

	require.NoError(t, preparer.Prepare(descriptor))
	require.Len(t, fetcher.Calls, 1)
	assert.Equal(t, def.Urls[0], fetcher.Calls[0].Url)
	require.Len(t, transformer.Calls, 1)
	assert.Equal(t,
		path.Join(dataDir, "enron", "enron_emails.jsonl.zst"),
		transformer.Calls[0].Input)
}

func TestPrepareAcquisitionFailureIsTerminal(t *testing.T) {
	preparer, fetcher, transformer := newTestPreparer()
	dataDir := t.TempDir()

	def, _ := Lookup("enron")
	fetcher.FailOn = def.Urls[0]
	descriptor, err := NewDescriptor(def, Config{DataDir: dataDir})
	require.NoError(t, err)

	prepErr := preparer.Prepare(descriptor)
	require.Error(t, prepErr)
	var acquisitionErr *AcquisitionError
	require.True(t, errors.As(prepErr, &acquisitionErr))
	assert.Equal(t, def.Urls[0], acquisitionErr.URL)
	assert.Empty(t, transformer.Calls)
}

func TestPrepareTransformFailurePropagates(t *testing.T) {
	preparer, _, transformer := newTestPreparer()
	transformer.Fail = true
	dataDir := t.TempDir()

	def, _ := Lookup("enron")
	descriptor, err := NewDescriptor(def, Config{DataDir: dataDir})
	require.NoError(t, err)

	prepErr := preparer.Prepare(descriptor)
	require.Error(t, prepErr)
	var transformErr *TransformError
	require.True(t, errors.As(prepErr, &transformErr))
	assert.Equal(t, "enron", transformErr.Dataset)
}

func TestPrepareDatasetEnronEndToEnd(t *testing.T) {
	preparer, fetcher, transformer := newTestPreparer()
	dataDir := path.Join(t.TempDir(), "data")

	err := preparer.PrepareDataset("enron", Config{DataDir: dataDir})
	require.NoError(t, err)

	// Shared tokenizer assets are resolved first, then the single source.
	require.Len(t, fetcher.Calls, 3)
	assert.Equal(t, path.Join(dataDir, "gpt2-vocab.json"),
		fetcher.Calls[0].Dest)
	assert.Equal(t, path.Join(dataDir, "gpt2-merges.txt"),
		fetcher.Calls[1].Dest)
	assert.Equal(t,
		"http://eaidata.bmk.sh/data/enron_emails.jsonl.zst",
		fetcher.Calls[2].Url)
	assert.Equal(t,
		path.Join(dataDir, "enron", "enron_emails.jsonl.zst"),
		fetcher.Calls[2].Dest)

	stat, statErr := os.Stat(path.Join(dataDir, "enron"))
	require.NoError(t, statErr)
	assert.True(t, stat.IsDir())

	require.Len(t, transformer.Calls, 1)
	args := transformer.Calls[0]
	assert.Equal(t, path.Join(dataDir, "enron", "enron"), args.OutputPrefix)
	assert.Equal(t,
		path.Join(dataDir, "enron", "enron_emails.jsonl.zst"), args.Input)
	assert.Equal(t, GPT2BPETokenizer, args.TokenizerKind)
	assert.True(t, args.AppendEOD)
	assert.Equal(t, 1, args.NumWorkers)
	assert.Equal(t, 517401, args.NumDocs)
}

func TestPrepareDatasetSkipsAssetsForCharLevel(t *testing.T) {
	preparer, fetcher, _ := newTestPreparer()
	dataDir := path.Join(t.TempDir(), "data")

	err := preparer.PrepareDataset("enron", Config{
		DataDir:       dataDir,
		TokenizerKind: CharLevelTokenizer,
	})
	require.NoError(t, err)
	// Only the corpus source itself, no vocab/merges resolution.
	require.Len(t, fetcher.Calls, 1)
	assert.Equal(t,
		"http://eaidata.bmk.sh/data/enron_emails.jsonl.zst",
		fetcher.Calls[0].Url)
}
