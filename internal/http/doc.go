// Package http provides the HTTP client used to fetch dataset images.
//
// The client keeps a pooled transport sized for parallel workers and
// maps response status codes onto sentinel errors. Failed fetches are
// terminal: there is deliberately no retry or backoff here, because a
// failed image is simply counted and picked up again on the next run.
//
// # Usage
//
//	client := http.NewClient(http.DefaultOptions())
//	body, err := client.Get(ctx, url)
//	if err != nil { ... }
//	defer body.Close()
package http
