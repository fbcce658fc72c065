// Package jobs runs scrape jobs for a media identity and persists the results.
package jobs

import "errors"

// ErrNoJobs is returned when an identity expands to no jobs, such as a
// series whose metadata lists no seasons.
var ErrNoJobs = errors.New("no jobs to run")
