// Package preflight verifies conversion prerequisites before any file is
// copied: the source tree must be readable, the dataset directory writable,
// and the dataset filesystem must have room for the recordings about to land
// in it. The CLI renders the results as a table and refuses to convert when a
// required check fails.
package preflight

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"bidsify/internal/config"
)

// Result is the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckSourceTree verifies that the source export tree exists and is readable.
func CheckSourceTree(path string) Result {
	const name = "Source tree"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckDatasetDir verifies that the dataset root either exists and is
// writable, or can be created under a writable parent.
func CheckDatasetDir(path string) Result {
	const name = "Dataset directory"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create: %v)", path, err)}
			}
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}

// CheckFreeSpace verifies that the filesystem holding the dataset directory
// has room for requiredBytes of incoming recordings.
func CheckFreeSpace(path string, requiredBytes uint64) Result {
	const name = "Free space"
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s available, %s required", humanize.Bytes(available), humanize.Bytes(requiredBytes))
	if available < requiredBytes {
		return Result{Name: name, Detail: detail}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// Run evaluates every conversion prerequisite for the given config.
// requiredBytes is the total size of the recordings about to be copied; pass
// zero when the source has not been scanned yet.
func Run(cfg *config.Config, requiredBytes uint64) []Result {
	results := []Result{
		CheckSourceTree(cfg.Paths.SourceDir),
		CheckDatasetDir(cfg.Paths.DatasetDir),
	}
	// Only meaningful once the dataset dir exists.
	if results[1].Passed {
		results = append(results, CheckFreeSpace(cfg.Paths.DatasetDir, requiredBytes))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
