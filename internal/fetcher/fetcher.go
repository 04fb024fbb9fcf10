package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"gocloud.dev/blob"

	oidlhttp "github.com/Vasyka/open-images-downloader/internal/http"
	"github.com/Vasyka/open-images-downloader/internal/progress"
	"github.com/Vasyka/open-images-downloader/internal/selection"
)

// DefaultWorkers is the worker-pool size used when Options.Workers is
// not set.
const DefaultWorkers = 4

// ErrNilBucket is returned when Fetch is called without a destination.
var ErrNilBucket = errors.New("fetcher: nil bucket")

// Options configures the fetch executor.
type Options struct {
	// Workers is the number of parallel fetch workers.
	// Default: DefaultWorkers.
	Workers int

	// HTTPOptions configures the HTTP client.
	HTTPOptions oidlhttp.Options

	// Progress is an optional progress reporter.
	Progress *progress.Reporter
}

// FailedTarget records one target that could not be fetched.
type FailedTarget struct {
	Name string
	Err  error
}

// Summary aggregates the outcomes of one fetch batch.
type Summary struct {
	Attempted int
	Failures  int
	Failed    []FailedTarget
}

// ExistingNames snapshots the file names already present in the
// bucket. The snapshot is not revalidated during execution.
func ExistingNames(ctx context.Context, bucket *blob.Bucket) (map[string]struct{}, error) {
	names := make(map[string]struct{})
	iter := bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list bucket: %w", err)
		}
		names[obj.Key] = struct{}{}
	}
	return names, nil
}

// Fetch downloads every target into the bucket under its file name,
// running at most opts.Workers fetches concurrently. Per-target errors
// are collected, never propagated; the batch always runs to
// completion unless the context is cancelled. Files written for
// successful targets stay on disk regardless of later failures.
func Fetch(ctx context.Context, targets []selection.Target, bucket *blob.Bucket, opts Options) (Summary, error) {
	if bucket == nil {
		return Summary{}, ErrNilBucket
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	client := oidlhttp.NewClient(opts.HTTPOptions)

	type outcome struct {
		name string
		err  error
	}

	jobs := make(chan selection.Target)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range jobs {
				results <- outcome{
					name: target.Name,
					err:  fetchOne(ctx, client, bucket, target, opts.Progress),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, target := range targets {
			select {
			case jobs <- target:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := Summary{}
	for r := range results {
		summary.Attempted++
		if r.err != nil {
			summary.Failures++
			summary.Failed = append(summary.Failed, FailedTarget{Name: r.name, Err: r.err})
		}
	}
	return summary, nil
}

// fetchOne retrieves a single target and streams it into the bucket.
func fetchOne(ctx context.Context, client *oidlhttp.Client, bucket *blob.Bucket, target selection.Target, reporter *progress.Reporter) error {
	if reporter != nil {
		reporter.ImageStarted()
	}

	n, err := download(ctx, client, bucket, target)
	if reporter != nil {
		if err != nil {
			reporter.ImageFailed()
		} else {
			reporter.ImageCompleted(n)
		}
	}
	return err
}

func download(ctx context.Context, client *oidlhttp.Client, bucket *blob.Bucket, target selection.Target) (int64, error) {
	body, err := client.Get(ctx, target.URL)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", target.Name, err)
	}
	defer body.Close()

	w, err := bucket.NewWriter(ctx, target.Name, nil)
	if err != nil {
		return 0, fmt.Errorf("open writer %s: %w", target.Name, err)
	}

	n, err := io.Copy(w, body)
	if err != nil {
		w.Close()
		return 0, fmt.Errorf("write %s: %w", target.Name, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("commit %s: %w", target.Name, err)
	}
	return n, nil
}
