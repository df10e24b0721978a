// Command docxcat prints the paragraphs and tables of a .docx document.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hanpama/docxcat"
)

type cli struct {
	Verbose bool   `short:"v" help:"Log debug details to stderr."`
	File    string `arg:"" name:"file" help:"Path to the .docx document."`
}

var available = docxcat.Available

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if !available() {
		printMissingReader(stdout)
		return 1
	}

	var c cli
	exitCode := -1
	parser, err := kong.New(&c,
		kong.Name("docxcat"),
		kong.Description("Print the paragraphs and tables of a .docx document."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "docxcat: %v\n", err)
		return 1
	}

	_, err = parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "docxcat: error: %v\n", err)
		fmt.Fprintln(stderr, `Run "docxcat --help" for usage.`)
		return 1
	}

	if c.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := docxcat.Extract(c.File, stdout); err != nil {
		if errors.Is(err, docxcat.ErrDependencyUnavailable) {
			printMissingReader(stdout)
			return 1
		}
		log.Debug().Err(err).Str("file", c.File).Msg("extraction failed")
		fmt.Fprintf(stdout, "ERRO ao ler arquivo: %v\n", err)
		return 1
	}

	return 0
}

func printMissingReader(w io.Writer) {
	fmt.Fprintln(w, "ERROR: suporte a DOCX não está disponível nesta compilação")
	fmt.Fprintln(w, "Execute: go install github.com/hanpama/docxcat/docxcat@latest")
}
