// Package jobqueue generalizes the teacher's goroutine worker-pool pattern
// into a reusable pool over generic job/result types, plus the load
// governor and cancellation handling spec.md §5 requires for scheduling
// work across (collection, year) units.
package jobqueue

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// LoadGovernor decides whether a new unit may be scheduled based on system
// load. A zero-value LoadGovernor never throttles.
type LoadGovernor struct {
	MaxLoad float64
	// readLoad is overridable in tests; defaults to loadAverage1.
	readLoad func() (float64, error)
}

// NewLoadGovernor returns a governor that refuses new work once the
// 1-minute load average exceeds maxLoad. maxLoad <= 0 disables throttling.
func NewLoadGovernor(maxLoad float64) *LoadGovernor {
	return &LoadGovernor{MaxLoad: maxLoad, readLoad: loadAverage1}
}

// Allow reports whether a new unit may be scheduled right now. Errors
// reading the load average are treated as "allow" — the governor is an
// optimization, not a correctness requirement.
func (g *LoadGovernor) Allow() bool {
	if g == nil || g.MaxLoad <= 0 {
		return true
	}
	load, err := g.readLoad()
	if err != nil {
		return true
	}
	return load <= g.MaxLoad
}

// Pool runs a fixed number of worker goroutines over a stream of jobs,
// mirroring main.go's worker(id, jobs, results, &wg) pattern from the
// teacher, generalized with Go generics and a load governor gate.
type Pool[J any, R any] struct {
	Workers  int
	Governor *LoadGovernor
	Handle   func(ctx context.Context, job J) R
}

// Run schedules every job in jobs across Workers goroutines and returns
// their results in completion order (not submission order — callers needing
// input order, per spec.md §5's "processed in input order", must re-sort by
// a field on R).
func (p *Pool[J, R]) Run(ctx context.Context, jobs []J) []R {
	jobsCh := make(chan J)
	resultsCh := make(chan R, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go p.worker(ctx, &wg, jobsCh, resultsCh)
	}

	go func() {
		defer close(jobsCh)
		for _, job := range jobs {
			for p.Governor != nil && !p.Governor.Allow() {
				select {
				case <-ctx.Done():
					return
				default:
				}
			}
			select {
			case jobsCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(resultsCh)

	results := make([]R, 0, len(jobs))
	for r := range resultsCh {
		results = append(results, r)
	}
	return results
}

func (p *Pool[J, R]) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan J, results chan<- R) {
	defer wg.Done()
	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		results <- p.Handle(ctx, job)
	}
}

// NotifyCancellation wires SIGINT/SIGTERM into ctx cancellation, matching
// spec.md §5's "trap interrupt/terminate signals" cancellation contract. The
// returned stop function must be deferred by the caller.
func NotifyCancellation() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
