package corpora

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"sort"

	"github.com/pkg/errors"
	"github.com/yargevad/filepathx"
)

// packageCustom bundles loose .txt files into the archive the external
// preprocessing tool consumes. It reads from the top-level data directory,
// not the dataset subdirectory: users drop their files next to the shared
// tokenizer assets before running the custom corpus preparation. The merge
// table is the one .txt at that level that is never corpus input.
func (p *Preparer) packageCustom(d *Descriptor) (string, error) {
	if mkdirErr := os.MkdirAll(d.Dir(), 0755); mkdirErr != nil {
		return "", errors.Wrapf(mkdirErr, "creating %q", d.Dir())
	}
	matches, globErr := filepathx.Glob(d.DataDir + "/*.txt")
	if globErr != nil {
		return "", errors.Wrapf(globErr, "scanning %q", d.DataDir)
	}
	txtFiles := make([]string, 0, len(matches))
	for _, match := range matches {
		if path.Base(match) == mergesFileName {
			continue
		}
		txtFiles = append(txtFiles, match)
	}
	if len(txtFiles) == 0 {
		return "", &ValidationError{
			Dir:    d.DataDir,
			Reason: "no .txt files found",
		}
	}
	// Sorted so the archive is deterministic for a fixed input set.
	sort.Strings(txtFiles)

	archivePath := path.Join(d.Dir(), d.Name+".zip")
	archiveFile, createErr := os.Create(archivePath)
	if createErr != nil {
		return "", errors.Wrapf(createErr, "creating %q", archivePath)
	}
	zipWriter := zip.NewWriter(archiveFile)
	for _, txtFile := range txtFiles {
		// Flattened: entries are archived under their basename only.
		entry, entryErr := zipWriter.Create(path.Base(txtFile))
		if entryErr != nil {
			archiveFile.Close()
			return "", errors.Wrapf(entryErr, "archiving %q", txtFile)
		}
		reader, openErr := os.Open(txtFile)
		if openErr != nil {
			archiveFile.Close()
			return "", errors.Wrapf(openErr, "reading %q", txtFile)
		}
		_, copyErr := io.Copy(entry, reader)
		reader.Close()
		if copyErr != nil {
			archiveFile.Close()
			return "", errors.Wrapf(copyErr, "archiving %q", txtFile)
		}
	}
	if closeErr := zipWriter.Close(); closeErr != nil {
		archiveFile.Close()
		return "", errors.Wrapf(closeErr, "finalizing %q", archivePath)
	}
	if closeErr := archiveFile.Close(); closeErr != nil {
		return "", errors.Wrapf(closeErr, "finalizing %q", archivePath)
	}
	return archivePath, nil
}
