package fetch

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// ExecFetcher invokes an external downloader as a subprocess, wget-style:
// the command is handed the URL and `-O <dest>`, and any non-zero exit is
// reported as a fetch failure.
type ExecFetcher struct {
	// Command to run, "wget" if empty.
	Command string
}

func (f *ExecFetcher) Fetch(url string, dest string) error {
	command := f.Command
	if command == "" {
		command = "wget"
	}
	cmd := exec.Command(command, url, "-O", dest)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if runErr := cmd.Run(); runErr != nil {
		return errors.Wrapf(runErr, "%s %s", command, url)
	}
	return nil
}
