/*
Package site builds a static site from a tree of markdown files.
*/
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/flytaly/mdsite/pkg/fswatcher"
	"github.com/flytaly/mdsite/pkg/linkcheck"
	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/page"
)

const MaxFileSize int64 = 1024 * 1024

var ErrFileTooLarge = errors.New("file is too large")

// Options are paths of the site. Relative paths are resolved against the root.
type Options struct {
	Content  string
	Static   string
	Template string
	Public   string
	Workers  int
	// max size in bytes of markdown files
	MaxFileSize int64
}

type Site struct {
	fileSystem fs.FS
	root       string // path to the root directory
	opts       Options

	Watcher fswatcher.FsWatcher

	tmpl       *page.Template
	stopEvents chan struct{}
	log        log.Logger
	mu         sync.Mutex // serializes builds
	tmplMu     sync.RWMutex
}

// New creates a Site. fileSystem should be rooted at root, e.g. os.DirFS(root).
func New(fileSystem fs.FS, root string, opts Options, logger log.Logger) *Site {
	if logger == nil {
		logger = log.NewEmptyLog()
	}
	opts.Content = cleanPath(opts.Content)
	opts.Template = cleanPath(opts.Template)
	if opts.Static != "" {
		opts.Static = cleanPath(opts.Static)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = MaxFileSize
	}

	s := &Site{
		fileSystem: fileSystem,
		root:       root,
		opts:       opts,
		stopEvents: make(chan struct{}),
		log:        logger,
	}

	watcher := fswatcher.NewFsPoller(fileSystem, root)
	watcher.AddShouldSkipHook(s.shouldSkipPath)
	s.Watcher = watcher

	return s
}

func (s *Site) Options() Options {
	return s.opts
}

// OutDir returns the path to the public directory on disk
func (s *Site) OutDir() string {
	if filepath.IsAbs(s.opts.Public) {
		return s.opts.Public
	}
	return filepath.Join(s.root, filepath.FromSlash(s.opts.Public))
}

func (s *Site) shouldSkipPath(p string, fi fs.FileInfo) bool {
	if fi.IsDir() {
		if !filepath.IsAbs(s.opts.Public) && p == cleanPath(s.opts.Public) {
			return true
		}
		return ShouldSkipDir(fi.Name())
	}
	if page.IsMarkdown(p) {
		return fi.Size() > s.opts.MaxFileSize
	}
	return false
}

// OutputPath returns path of the generated page relative to the public dir
func (s *Site) OutputPath(source string) (string, error) {
	source = cleanPath(source)
	if !under(s.opts.Content, source) || source == s.opts.Content {
		return "", fmt.Errorf("%s is outside of the content directory", source)
	}
	return page.OutputName(relativeTo(s.opts.Content, source)), nil
}

func (s *Site) template() *page.Template {
	s.tmplMu.RLock()
	defer s.tmplMu.RUnlock()
	return s.tmpl
}

// LoadTemplate reads the template file
func (s *Site) LoadTemplate() error {
	tmpl, err := page.LoadTemplate(s.fileSystem, s.opts.Template)
	if err != nil {
		return err
	}
	s.tmplMu.Lock()
	s.tmpl = tmpl
	s.tmplMu.Unlock()
	return nil
}

var writeFile = func(absPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(absPath, data, 0o644)
}

// GeneratePage converts the markdown file into a page inside the public dir.
// It returns the path of the page relative to the public dir.
func (s *Site) GeneratePage(source string) (string, error) {
	tmpl := s.template()
	if tmpl == nil {
		return "", errors.New("template isn't loaded")
	}
	out, err := s.OutputPath(source)
	if err != nil {
		return "", err
	}

	fi, err := fs.Stat(s.fileSystem, source)
	if err != nil {
		return "", err
	}
	if fi.Size() > s.opts.MaxFileSize {
		return "", fmt.Errorf("%w: %s (%d KB)", ErrFileTooLarge, source, fi.Size()/1024)
	}

	data, err := fs.ReadFile(s.fileSystem, source)
	if err != nil {
		return "", err
	}
	html, err := page.Generate(string(data), tmpl)
	if err != nil {
		return "", fmt.Errorf("%s: %w", source, err)
	}
	if err := writeFile(filepath.Join(s.OutDir(), filepath.FromSlash(out)), []byte(html)); err != nil {
		return "", err
	}
	return out, nil
}

// RemovePage deletes the page generated from the source file
func (s *Site) RemovePage(source string) error {
	out, err := s.OutputPath(source)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.OutDir(), filepath.FromSlash(out)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	s.log.Info("Page removed: %s", out)
	return nil
}

// Build clears the public dir, copies static files and generates all pages.
// Errors of single pages are saved in the report, the returned error means
// that the whole build failed.
func (s *Site) Build(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.build(ctx)
}

func (s *Site) build(ctx context.Context) (*Report, error) {
	start := time.Now()

	if err := s.LoadTemplate(); err != nil {
		return nil, err
	}
	if err := s.CopyStatic(); err != nil {
		return nil, err
	}
	sources, err := SourceList(s.fileSystem, s.opts.Content)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	report.Full = true
	if err := s.generate(ctx, sources, report); err != nil {
		return report, err
	}
	s.checkLinks(report)
	report.Duration = time.Since(start)
	s.log.Info("Built %d pages in %s", len(report.Pages), report.Duration.Round(time.Millisecond))
	return report, nil
}

// generate converts pages concurrently, pages don't share any state
func (s *Site) generate(ctx context.Context, sources []string, report *Report) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for _, source := range sources {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := s.GeneratePage(source)
			s.record(report, source, out, err)
			return nil
		})
	}
	err := g.Wait()
	report.sort()
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Site) record(report *Report, source, out string, err error) {
	switch {
	case err == nil:
		report.addPage(out)
		s.log.Info("Page generated: %s", out)
	case errors.Is(err, ErrFileTooLarge):
		report.addSkipped(source)
		s.log.Warning("Skipped: %s", err)
	default:
		report.addFailure(source, err)
		s.log.Error("%s", err)
	}
}

func (s *Site) checkLinks(report *Report) {
	out := os.DirFS(s.OutDir())
	for _, p := range report.Pages {
		broken, err := linkcheck.Check(out, p)
		if err != nil {
			s.log.Warning("Couldn't check links in %s: %v", p, err)
			continue
		}
		for _, b := range broken {
			s.log.Warning("Broken link in %s: %s", b.Page, b.Ref.Dest)
		}
		report.Broken = append(report.Broken, broken...)
	}
}

func (s *Site) Close() {
	if err := s.Watcher.Close(); err != nil {
		fmt.Println("Couldn't close watcher")
	}
	if err := s.log.Close(); err != nil {
		fmt.Println("Couldn't close log file")
	}
}
