//go:build linux

package jobqueue

import "golang.org/x/sys/unix"

// loadAverage1 reads the 1-minute system load average via unix.Sysinfo,
// which reports it as a fixed-point value scaled by 1<<16 (spec.md §5 load
// governor).
func loadAverage1() (float64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return float64(info.Loads[0]) / (1 << 16), nil
}
