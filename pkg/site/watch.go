package site

import (
	"context"
	"sort"
	"time"

	"github.com/flytaly/mdsite/pkg/fswatcher"
	"github.com/flytaly/mdsite/pkg/page"
)

// changes collects events of a single scan
type changes struct {
	full    bool                // template or static files were changed
	write   map[string]struct{} // sources to regenerate
	removed map[string]struct{} // sources whose pages should be removed
}

func newChanges() *changes {
	return &changes{write: map[string]struct{}{}, removed: map[string]struct{}{}}
}

func (c *changes) empty() bool {
	return !c.full && len(c.write) == 0 && len(c.removed) == 0
}

func (s *Site) isSource(p string) bool {
	return under(s.opts.Content, p) && page.IsMarkdown(p)
}

func (s *Site) isStatic(p string) bool {
	return s.opts.Static != "" && under(s.opts.Static, p)
}

func (s *Site) processEvent(event fswatcher.Event, c *changes) {
	name := cleanPath(event.Name)
	if name == s.opts.Template || s.isStatic(name) {
		c.full = true
		return
	}
	if event.Op == fswatcher.Rename && (cleanPath(event.NewPath) == s.opts.Template || s.isStatic(cleanPath(event.NewPath))) {
		c.full = true
		return
	}

	switch event.Op {
	case fswatcher.Create, fswatcher.Write:
		if s.isSource(name) {
			c.write[name] = struct{}{}
			delete(c.removed, name)
		}
	case fswatcher.Remove:
		if s.isSource(name) {
			c.removed[name] = struct{}{}
			delete(c.write, name)
		}
	case fswatcher.Rename:
		if s.isSource(name) {
			c.removed[name] = struct{}{}
			delete(c.write, name)
		}
		if to := cleanPath(event.NewPath); s.isSource(to) {
			c.write[to] = struct{}{}
			delete(c.removed, to)
		}
	}
}

// applyChanges applies collected changes: rebuilds the whole site or only changed pages
func (s *Site) applyChanges(ctx context.Context, c *changes) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.full {
		return s.build(ctx)
	}

	start := time.Now()
	report := NewReport()

	for _, source := range sortedKeys(c.removed) {
		if err := s.RemovePage(source); err != nil {
			s.log.Error("Couldn't remove page of %s: %v", source, err)
			continue
		}
		if out, err := s.OutputPath(source); err == nil {
			report.Removed = append(report.Removed, out)
		}
	}

	if s.template() == nil {
		if err := s.LoadTemplate(); err != nil {
			return report, err
		}
	}
	if err := s.generate(ctx, sortedKeys(c.write), report); err != nil {
		return report, err
	}
	s.checkLinks(report)
	report.Duration = time.Since(start)
	return report, nil
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AddWatches adds the content, static dirs and the template into the watcher
func (s *Site) AddWatches() {
	paths := []string{s.opts.Content, s.opts.Template}
	if s.opts.Static != "" {
		paths = append(paths, s.opts.Static)
	}
	for _, p := range paths {
		if _, err := s.Watcher.Add(p); err != nil {
			s.log.Error("Couldn't add %s to watcher: %v", p, err)
		}
	}
}

// WatchEvents listens to the watcher and syncs changes after every scan,
// onBuild is called with the result of each sync.
func (s *Site) WatchEvents(ctx context.Context, onBuild func(*Report, error)) {
	c := newChanges()
	for {
		select {
		case event := <-s.Watcher.Events():
			s.processEvent(event, c)
		case <-s.Watcher.ScanComplete():
			if c.empty() {
				break
			}
			report, err := s.applyChanges(ctx, c)
			if err != nil {
				s.log.Error("Build failed: %v", err)
			}
			if onBuild != nil {
				onBuild(report, err)
			}
			c = newChanges()
		case err := <-s.Watcher.Errors():
			s.log.Error("%s", err)
		case <-s.stopEvents:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Site) StartFileWatcher(interval time.Duration) {
	err := s.Watcher.Start(interval)
	if err != nil {
		s.log.Error("%s", err)
	}
}

func (s *Site) StopEventListeners() {
	s.stopEvents <- struct{}{}
}

// Watch starts watching for changes in the background
func (s *Site) Watch(ctx context.Context, interval time.Duration, onBuild func(*Report, error)) {
	s.AddWatches()
	go s.WatchEvents(ctx, onBuild)
	go s.StartFileWatcher(interval)
}
