package site

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/flytaly/mdsite/pkg/linkcheck"
)

// Report is the result of a build
type Report struct {
	Pages    []string         // generated pages relative to the public dir
	Failed   map[string]error // source files that couldn't be converted
	Skipped  []string         // too large source files
	Removed  []string         // pages removed in watch mode
	Broken   []linkcheck.Broken
	Full     bool // the whole site was rebuilt
	Duration time.Duration

	mu sync.Mutex
}

func NewReport() *Report {
	return &Report{Failed: map[string]error{}}
}

func (r *Report) addPage(p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pages = append(r.Pages, p)
}

func (r *Report) addSkipped(p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Skipped = append(r.Skipped, p)
}

func (r *Report) addFailure(source string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failed[source] = err
}

func (r *Report) sort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	sort.Strings(r.Pages)
	sort.Strings(r.Skipped)
}

// Err joins errors of all failed pages, nil if there are none
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	sources := make([]string, 0, len(r.Failed))
	for source := range r.Failed {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	errs := make([]error, 0, len(sources))
	for _, source := range sources {
		errs = append(errs, r.Failed[source])
	}
	return fmt.Errorf("%d pages failed: %w", len(errs), errors.Join(errs...))
}

func (r *Report) String() string {
	return fmt.Sprintf("pages: %d, failed: %d, skipped: %d, broken links: %d",
		len(r.Pages), len(r.Failed), len(r.Skipped), len(r.Broken))
}
