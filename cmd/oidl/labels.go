package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Vasyka/open-images-downloader/internal/config"
	"github.com/Vasyka/open-images-downloader/internal/dataset"
	"github.com/Vasyka/open-images-downloader/internal/labels"
)

func runLabels(args []string) int {
	fs := flag.NewFlagSet("labels", flag.ExitOnError)

	labelmap := fs.String("labelmap", "", "Path to labelmap file (.csv) (required)")
	objects := fs.String("objects", "", "Comma-separated object names (or pass them as arguments)")
	permissive := fs.Bool("permissive", false, "Permissive matching: 'bicycle' also matches 'bicycle wheel'")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: oidl labels [options] [object ...]

Resolve object names against the label vocabulary and print the
matched (code, name) pairs without downloading anything.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	requested := config.SplitObjects(*objects)
	requested = append(requested, fs.Args()...)

	if *labelmap == "" || len(requested) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -labelmap and at least one object name are required")
		fs.Usage()
		return ExitInvalidArgs
	}

	vocab, err := dataset.LoadLabelmap(*labelmap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitConfigError
	}

	resolved, err := labels.Resolve(vocab, requested, *permissive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, labels.ErrLabelNotFound) {
			return ExitResolveError
		}
		return ExitGeneralError
	}

	for _, name := range resolved.Names() {
		fmt.Printf("%s\t%s\n", resolved[name], name)
	}
	return ExitSuccess
}
