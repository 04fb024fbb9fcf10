package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	iofs "io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/Vasyka/open-images-downloader/internal/config"
	"github.com/Vasyka/open-images-downloader/internal/labels"
	"github.com/Vasyka/open-images-downloader/internal/pipeline"
)

func runDownload(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	annotations := fs.String("annotations", "", "Path to annotations file (.csv)")
	labelmap := fs.String("labelmap", "", "Path to labelmap file (.csv)")
	images := fs.String("images", "", "Path to file containing image links (.csv)")
	dir := fs.String("dir", "", "Output directory path or bucket URL (s3://..., gs://...)")
	objects := fs.String("objects", "", "Comma-separated object names (or pass them as arguments)")
	max := fs.Int("max", 0, "Maximum number of images to download (0 = no limit)")
	workers := fs.Int("workers", 0, "Number of parallel download workers")
	permissive := fs.Bool("permissive", false, "Permissive matching: 'bicycle' also matches 'bicycle wheel'")
	excludeOccluded := fs.Bool("exclude-occluded", false, "Skip annotations flagged as occluded")
	showProgress := fs.Bool("progress", false, "Show download progress")
	seed := fs.Int64("seed", 0, "Random seed for sampling (0 = non-deterministic)")
	configPath := fs.String("config", "", "Path to YAML config file")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: oidl download [options] [object ...]

Download images of specific objects from the Open Images dataset.
Images already present in the output location are skipped.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, code := buildConfig(fs, *configPath, config.Config{
		Annotations:     *annotations,
		Labelmap:        *labelmap,
		Images:          *images,
		OutputDir:       *dir,
		Objects:         config.SplitObjects(*objects),
		MaxImages:       *max,
		Workers:         *workers,
		Permissive:      *permissive,
		ExcludeOccluded: *excludeOccluded,
		Progress:        *showProgress,
		Seed:            *seed,
	})
	if code != ExitSuccess {
		return code
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[oidl] Received interrupt, shutting down...")
		cancel()
	}()

	bucket, err := openBucket(ctx, cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	defer bucket.Close()

	result, err := pipeline.Run(ctx, cfg, bucket, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		switch {
		case errors.Is(err, labels.ErrLabelNotFound):
			return ExitResolveError
		case errors.Is(err, iofs.ErrNotExist):
			return ExitConfigError
		default:
			return ExitGeneralError
		}
	}

	if result.Summary.Failures > 0 {
		return ExitGeneralError
	}
	return ExitSuccess
}

// buildConfig layers defaults, config file, environment and flags.
// Positional arguments are taken as object names.
func buildConfig(fs *flag.FlagSet, configPath string, flags config.Config) (config.Config, int) {
	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return config.Config{}, ExitConfigError
		}
		cfg = loaded
	}

	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return config.Config{}, ExitConfigError
	}

	if args := fs.Args(); len(args) > 0 {
		flags.Objects = append(flags.Objects, args...)
	}

	return cfg.Merge(flags), ExitSuccess
}

// openBucket opens the output location. Bare paths become local
// fileblob buckets (created if absent); URLs with a scheme go through
// the registered blob drivers.
func openBucket(ctx context.Context, dir string) (*blob.Bucket, error) {
	if strings.Contains(dir, "://") {
		return blob.OpenBucket(ctx, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	// MetadataDontWrite keeps the output directory free of .attrs
	// sidecar files, so it holds plain images only.
	return fileblob.OpenBucket(dir, &fileblob.Options{Metadata: fileblob.MetadataDontWrite})
}
