// Package progress provides progress reporting for image downloads.
//
// The reporter prints a repainting status line with completed and
// failed counts plus throughput while the fetch batch runs.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    Total:   len(targets),
//	    Workers: workers,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// From workers, as images finish:
//	reporter.ImageCompleted(size)
//	reporter.ImageFailed()
//
// # Output Format
//
//	[oidl] Downloading 1024 images | Workers: 4
//	[oidl] Progress: 512/1024 | failed: 3 | 42.17 MB | 1.50 MB/s
package progress
