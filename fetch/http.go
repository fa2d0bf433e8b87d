package fetch

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// WriteCounter counts the number of bytes written to it, and every 10
// seconds it logs a line reporting the number of bytes written so far.
type WriteCounter struct {
	Total uint64
	Last  time.Time
	Path  string
	Size  uint64
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Since(wc.Last).Seconds() > 10 {
		wc.Last = time.Now()
		log.Printf("Downloading %s... %s / %s completed.",
			wc.Path, humanize.Bytes(wc.Total), humanize.Bytes(wc.Size))
	}
	return n, nil
}

// HTTPFetcher downloads sources over plain HTTP(S) without shelling out.
// Files land at `dest+".downloading"` first and are renamed into place only
// after the body has been fully copied.
type HTTPFetcher struct {
	// Client to use, http.DefaultClient if nil.
	Client *http.Client
	// AuthToken is sent as a bearer token when non-empty.
	AuthToken string
}

func (f *HTTPFetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func userAgent() string {
	return fmt.Sprintf("corpora; golang/%s; session_id/%s",
		runtime.Version(), SessionId)
}

// Size issues a HEAD request for the resource, for progress reporting.
func (f *HTTPFetcher) Size(url string) (uint64, error) {
	req, reqErr := http.NewRequest("HEAD", url, nil)
	if reqErr != nil {
		return 0, reqErr
	}
	req.Header.Set("User-Agent", userAgent())
	if f.AuthToken != "" {
		req.Header.Add("Authorization", "Bearer "+f.AuthToken)
	}
	resp, remoteErr := f.client().Do(req)
	if remoteErr != nil {
		return 0, remoteErr
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return 0, errors.Errorf("HTTP status code %d", resp.StatusCode)
	}
	size, _ := strconv.Atoi(resp.Header.Get("Content-Length"))
	return uint64(size), nil
}

func (f *HTTPFetcher) Fetch(url string, dest string) error {
	size, sizeErr := f.Size(url)
	if sizeErr != nil {
		// Not fatal, the progress line just won't show a total.
		size = 0
	}
	req, reqErr := http.NewRequest("GET", url, nil)
	if reqErr != nil {
		return reqErr
	}
	req.Header.Set("User-Agent", userAgent())
	if f.AuthToken != "" {
		req.Header.Add("Authorization", "Bearer "+f.AuthToken)
	}
	resp, remoteErr := f.client().Do(req)
	if remoteErr != nil {
		return errors.Wrapf(remoteErr, "fetching %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return errors.Errorf("fetching %s: HTTP status code %d",
			url, resp.StatusCode)
	}

	tmpPath := dest + ".downloading"
	destFile, openErr := os.OpenFile(tmpPath,
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0755)
	if openErr != nil {
		return errors.Wrapf(openErr, "error opening %q for write", tmpPath)
	}
	counter := &WriteCounter{
		Last: time.Now(),
		Path: url,
		Size: size,
	}
	bytesDownloaded, ioErr := io.Copy(destFile,
		io.TeeReader(resp.Body, counter))
	if closeErr := destFile.Close(); ioErr == nil {
		ioErr = closeErr
	}
	if ioErr != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(ioErr, "error downloading %q", url)
	}
	if renameErr := os.Rename(tmpPath, dest); renameErr != nil {
		return errors.Wrapf(renameErr, "error moving %q to %q",
			tmpPath, dest)
	}
	log.Printf("Downloaded %s... %s completed.", url,
		humanize.Bytes(uint64(bytesDownloaded)))
	return nil
}
