package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"gocloud.dev/blob"
	"golang.org/x/sync/errgroup"

	"github.com/Vasyka/open-images-downloader/internal/config"
	"github.com/Vasyka/open-images-downloader/internal/dataset"
	"github.com/Vasyka/open-images-downloader/internal/fetcher"
	oidlhttp "github.com/Vasyka/open-images-downloader/internal/http"
	"github.com/Vasyka/open-images-downloader/internal/labels"
	"github.com/Vasyka/open-images-downloader/internal/progress"
	"github.com/Vasyka/open-images-downloader/internal/selection"
)

// Result summarizes one download run.
type Result struct {
	// Resolved is the label set the run downloaded.
	Resolved labels.Set

	// Candidates is the number of distinct matching images.
	Candidates int

	// Skipped is the number of images already present in the output.
	Skipped int

	// Summary holds the fetch outcomes.
	Summary fetcher.Summary
}

// Run executes the full pipeline against bucket, logging to out.
func Run(ctx context.Context, cfg config.Config, bucket *blob.Bucket, out io.Writer) (Result, error) {
	if out == nil {
		out = io.Discard
	}

	var (
		vocab   []dataset.LabelEntry
		rows    []dataset.AnnotationRow
		baseURL string
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		vocab, err = dataset.LoadLabelmap(cfg.Labelmap)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = dataset.LoadAnnotations(cfg.Annotations)
		return err
	})
	g.Go(func() error {
		var err error
		baseURL, err = dataset.BaseURL(cfg.Images)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	resolved, err := labels.Resolve(vocab, cfg.Objects, cfg.Permissive)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(out, "[oidl] Generating download list for the following objects: %s\n",
		strings.Join(resolved.Names(), ", "))

	ids := selection.Candidates(rows, resolved.Codes(), cfg.ExcludeOccluded)

	existing, err := fetcher.ExistingNames(ctx, bucket)
	if err != nil {
		return Result{}, err
	}

	targets, err := selection.BuildTargets(ids, baseURL, existing)
	if err != nil {
		return Result{}, err
	}
	skipped := len(ids) - len(targets)

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)))
	}
	targets = selection.Sample(targets, cfg.MaxImages, rng)

	opts := fetcher.Options{
		Workers:     cfg.Workers,
		HTTPOptions: oidlhttp.Options{Timeout: cfg.HTTPTimeout},
	}
	if cfg.Progress {
		opts.Progress = progress.NewReporter(progress.Options{
			Total:   len(targets),
			Workers: cfg.Workers,
			Output:  out,
		})
		opts.Progress.Start()
		defer opts.Progress.Stop()
	}

	summary, err := fetcher.Fetch(ctx, targets, bucket, opts)
	if err != nil {
		return Result{}, err
	}
	if opts.Progress != nil {
		opts.Progress.Stop()
	}

	fmt.Fprintf(out, "[oidl] Finished downloads. Couldn't load %d images\n", summary.Failures)

	return Result{
		Resolved:   resolved,
		Candidates: len(ids),
		Skipped:    skipped,
		Summary:    summary,
	}, nil
}
