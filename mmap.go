package corpora

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// readMmap maps the file at path read-only. The mapping stays valid after
// the file handle is closed; callers must Unmap it.
func readMmap(path string) (mmap.MMap, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer file.Close()
	return mmap.Map(file, mmap.RDONLY, 0)
}
