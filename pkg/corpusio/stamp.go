package corpusio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// stampInfo is the payload written into a `.running` side-stamp.
type stampInfo struct {
	Host      string    `json:"host"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

// Lease represents ownership of one output path, acquired via Claim.
type Lease struct {
	path        string
	runningPath string
	workingPath string
}

// Claim attempts to take ownership of path for the calling worker. It
// returns (nil, false, nil) when the unit should be skipped because a fresh
// `.done` or `.running` stamp already exists (spec.md §5). On success it
// atomically creates `<path>.running`.
func Claim(path string, freshness time.Duration) (*Lease, bool, error) {
	donePath := path + ".done"
	runningPath := path + ".running"

	if isFresh(donePath, freshness) || isFresh(runningPath, freshness) {
		return nil, false, nil
	}

	host, _ := os.Hostname()
	info := stampInfo{Host: host, PID: os.Getpid(), StartedAt: time.Now()}
	data, err := json.Marshal(info)
	if err != nil {
		return nil, false, fmt.Errorf("marshal stamp for %s: %w", path, err)
	}

	f, err := os.OpenFile(runningPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("claim %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return nil, false, fmt.Errorf("write stamp for %s: %w", path, err)
	}

	return &Lease{
		path:        path,
		runningPath: runningPath,
		workingPath: fmt.Sprintf("%s.working.%s", path, host),
	}, true, nil
}

// WorkingPath is the path a worker should write output to before Commit
// renames it into place.
func (l *Lease) WorkingPath() string { return l.workingPath }

// Commit renames the working file into its final path, then renames
// `.running` to `.done` (spec.md §5).
func (l *Lease) Commit() error {
	if err := os.Rename(l.workingPath, l.path); err != nil {
		return fmt.Errorf("publish %s: %w", l.path, err)
	}
	if err := os.Rename(l.runningPath, l.path+".done"); err != nil {
		return fmt.Errorf("mark %s done: %w", l.path, err)
	}
	return nil
}

// Release removes the `.running` stamp without publishing output, used on
// cancellation (spec.md §5) or per-unit fatal failure.
func (l *Lease) Release() error {
	if err := os.Remove(l.runningPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release %s: %w", l.path, err)
	}
	return nil
}

func isFresh(stampPath string, freshness time.Duration) bool {
	info, err := os.Stat(stampPath)
	if err != nil {
		return false
	}
	if freshness <= 0 {
		return true
	}
	return time.Since(info.ModTime()) < freshness
}
