package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	answerhtml "github.com/Hashem-Al-Qurashi/arabic-legal-ai-sub000"
)

// Version is set at build time via ldflags.
var Version = "dev"

// stderrNotifier surfaces pipeline notifications on stderr.
type stderrNotifier struct{}

func (stderrNotifier) Notify(message, level string) {
	fmt.Fprintf(os.Stderr, "answerfmt: [%s] %s\n", level, message)
}

func main() {
	flags, fs, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}

	if flags.version {
		fmt.Println("answerfmt " + Version)
		return
	}

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(flags *cliFlags) error {
	opts, err := buildOptions(flags)
	if err != nil {
		return err
	}

	svc := answerhtml.New(opts...)
	defer svc.Close()

	raw, err := readInput(flags)
	if err != nil {
		return err
	}

	out, err := render(flags, svc, raw)
	if err != nil {
		return err
	}

	return writeOutput(flags.output, out)
}

// buildOptions merges config-file options with flag overrides. Flags win.
func buildOptions(flags *cliFlags) ([]answerhtml.Option, error) {
	opts := []answerhtml.Option{answerhtml.WithNotifier(stderrNotifier{})}

	if flags.configPath != "" {
		cfg, err := answerhtml.LoadConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfgOpts, err := cfg.Options()
		if err != nil {
			return nil, err
		}
		opts = append(opts, cfgOpts...)
	}
	if flags.style != "" {
		opts = append(opts, answerhtml.WithHighlightStyle(flags.style))
	}
	if flags.title != "" {
		opts = append(opts, answerhtml.WithDocumentTitle(flags.title))
	}
	return opts, nil
}

// readInput validates the conversation gate, then reads the input file or
// stdin. A rejected or unknown conversation identifier falls back to the
// default context (stdin) with a warning; it is never a hard failure.
func readInput(flags *cliFlags) (string, error) {
	input := ""
	if len(flags.args) == 1 {
		input = flags.args[0]
	}

	if flags.conversation != "" {
		known := make(map[string]struct{}, len(flags.known))
		for _, id := range flags.known {
			known[id] = struct{}{}
		}
		if !answerhtml.IdentifierExists(flags.conversation, known) {
			fmt.Fprintf(os.Stderr,
				"answerfmt: [warn] conversation %q rejected, reading default input\n",
				answerhtml.SanitizeIdentifier(flags.conversation))
			input = ""
		}
	}

	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", input, err)
	}
	return string(data), nil
}

// render produces the requested output form: fragment, document, or PDF.
func render(flags *cliFlags, svc *answerhtml.Service, raw string) ([]byte, error) {
	switch {
	case flags.pdf:
		pdf, err := svc.ExportPDF(context.Background(), raw)
		if err != nil {
			return nil, err
		}
		return pdf, nil
	case flags.document:
		doc, err := svc.ExportHTML(raw)
		if err != nil {
			return nil, err
		}
		return []byte(doc + "\n"), nil
	default:
		return []byte(svc.Format(raw) + "\n"), nil
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
