//go:build !linux

package jobqueue

import "fmt"

// loadAverage1 has no portable implementation outside Linux; the load
// governor treats this as "load unknown" and never throttles.
func loadAverage1() (float64, error) {
	return 0, fmt.Errorf("load average not available on this platform")
}
