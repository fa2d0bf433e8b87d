package corpora

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// TransformArgs carries the parameters handed to the external
// tokenize-and-serialize tool. The tool reads the raw inputs and the
// tokenizer assets and writes two indexed output files per logical stream
// at OutputPrefix; their binary layout is the tool's contract, not ours.
type TransformArgs struct {
	// Input is a single path or a comma-joined list of paths.
	Input         string
	OutputPrefix  string
	VocabFile     string
	MergeFile     string
	TokenizerKind TokenizerKind
	AppendEOD     bool
	NumWorkers    int
	// NumDocs is passed through when positive.
	NumDocs int
	// Ftfy asks the tool to repair text encodings.
	Ftfy bool
}

// CommandLine renders the argument vector for the external tool.
func (args *TransformArgs) CommandLine() []string {
	argv := []string{
		"--input", args.Input,
		"--output-prefix", args.OutputPrefix,
		"--vocab", args.VocabFile,
		"--dataset-impl", "mmap",
		"--tokenizer-type", string(args.TokenizerKind),
		"--merge-file", args.MergeFile,
	}
	if args.AppendEOD {
		argv = append(argv, "--append-eod")
	}
	argv = append(argv, "--workers", strconv.Itoa(args.NumWorkers))
	if args.NumDocs > 0 {
		argv = append(argv, "--num-docs", strconv.Itoa(args.NumDocs))
	}
	if args.Ftfy {
		argv = append(argv, "--ftfy")
	}
	return argv
}

// Transformer runs the external preprocessing tool for one dataset.
type Transformer interface {
	Transform(args TransformArgs) error
}

// ExecTransformer invokes the preprocessing tool as a subprocess. A
// non-zero exit is an error; it is never swallowed.
type ExecTransformer struct {
	// Command to run, "preprocess_data" if empty.
	Command string
	// Args are prepended before the rendered TransformArgs, for tools that
	// need a subcommand or script path.
	Args []string
}

func (t *ExecTransformer) Transform(args TransformArgs) error {
	command := t.Command
	if command == "" {
		command = "preprocess_data"
	}
	argv := append(append([]string{}, t.Args...), args.CommandLine()...)
	cmd := exec.Command(command, argv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if runErr := cmd.Run(); runErr != nil {
		return errors.Wrapf(runErr, "%s --input %s", command, args.Input)
	}
	return nil
}
