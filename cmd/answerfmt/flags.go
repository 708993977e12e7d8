package main

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// cliFlags holds parsed command-line options.
type cliFlags struct {
	output       string
	configPath   string
	title        string
	style        string
	conversation string
	known        []string
	document     bool
	pdf          bool
	verbose      bool
	version      bool
	args         []string
}

// parseFlags parses argv into cliFlags. Returns the FlagSet for usage
// printing.
func parseFlags(argv []string) (*cliFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("answerfmt", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	f := &cliFlags{}
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	fs.StringVar(&f.title, "title", "", "exported document title")
	fs.StringVar(&f.style, "style", "", "chroma highlight style for code blocks")
	fs.StringVar(&f.conversation, "conversation", "", "conversation identifier to validate before reading input")
	fs.StringSliceVar(&f.known, "known", nil, "comma-separated known conversation identifiers")
	fs.BoolVar(&f.document, "document", false, "emit a standalone RTL HTML document instead of a fragment")
	fs.BoolVar(&f.pdf, "pdf", false, "render the document to PDF (implies --document)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output on stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(argv[1:]); err != nil {
		return nil, fs, err
	}

	f.args = fs.Args()
	if len(f.args) > 1 {
		return nil, fs, fmt.Errorf("expected at most one input file, got %d", len(f.args))
	}
	if f.pdf {
		f.document = true
	}
	return f, fs, nil
}

func printUsage(fs *flag.FlagSet) {
	var b strings.Builder
	b.WriteString("Usage: answerfmt [flags] [input-file]\n\n")
	b.WriteString("Formats raw model output into sanitized HTML.\n")
	b.WriteString("Reads from stdin when no input file is given.\n\n")
	b.WriteString("Flags:\n")
	b.WriteString(fs.FlagUsages())
	fmt.Fprint(fs.Output(), b.String())
}
