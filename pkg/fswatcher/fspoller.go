package fswatcher

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const MinInterval = time.Millisecond * 20

var ErrClosed = errors.New("poller is closed")

// Poller is polling implementation of FsWatcher interface
type Poller struct {
	// watched files and dirs
	watches map[string]struct{}
	// stores info about files and dirs inside watched paths
	files      map[string]fs.FileInfo
	events     chan Event
	errors     chan error
	done       chan struct{}
	scanDone   chan struct{}
	shouldSkip func(string, fs.FileInfo) bool
	fsys       fs.FS
	// path to the root directory
	root    string
	running bool

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// NewFsPoller creates a poller. Paths in events are relative to the root of fsys.
func NewFsPoller(fsys fs.FS, root string) *Poller {
	return &Poller{
		events:   make(chan Event),
		errors:   make(chan error),
		done:     make(chan struct{}),
		scanDone: make(chan struct{}),
		fsys:     fsys,
		root:     root,
		watches:  map[string]struct{}{},
		files:    map[string]fs.FileInfo{},
	}
}

// AddShouldSkipHook sets a function that excludes files and dirs from watching
func (p *Poller) AddShouldSkipHook(fn func(path string, fi fs.FileInfo) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shouldSkip = fn
}

// Add adds given name into the list of the watched paths.
// If name is a directory, then it also saves FileInfo of nested files and returns them.
// Absolute names are converted to paths relative to the root.
func (p *Poller) Add(name string) (map[string]fs.FileInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}

	relativePath := name
	if filepath.IsAbs(name) {
		var err error
		relativePath, err = filepath.Rel(p.root, name)
		if err != nil {
			return nil, err
		}
		relativePath = filepath.ToSlash(relativePath)
	}

	list, err := p.list(relativePath)
	if err != nil {
		return nil, err
	}

	for fname, fi := range list {
		p.files[fname] = fi
	}
	p.watches[relativePath] = struct{}{}

	return list, nil
}

// list returns FileInfo of the path and, if it's a directory, of every nested path
func (p *Poller) list(name string) (map[string]fs.FileInfo, error) {
	files := map[string]fs.FileInfo{}

	info, err := fs.Stat(p.fsys, name)
	if err != nil {
		return nil, err
	}
	files[name] = info
	if !info.IsDir() {
		return files, nil
	}

	err = fs.WalkDir(p.fsys, name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// the entry could be removed during the walk
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if path == name {
			return nil
		}
		stat, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if p.shouldSkip != nil && p.shouldSkip(path, stat) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		files[path] = stat
		return nil
	})

	return files, err
}

// Scan checks watched paths for changes and sends events
func (p *Poller) Scan() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	current := map[string]fs.FileInfo{}
	for path := range p.watches {
		files, err := p.list(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				delete(p.watches, path)
				continue
			}
			p.sendError(err)
			continue
		}
		for name, fi := range files {
			current[name] = fi
		}
	}

	added := map[string]fs.FileInfo{}
	for name, fi := range current {
		if _, ok := p.files[name]; !ok {
			added[name] = fi
		}
	}

	renamed := map[string]struct{}{}
	for name, oldInfo := range p.files {
		newInfo, ok := current[name]
		if !ok {
			p.onRemove(name, oldInfo, added, renamed)
			continue
		}
		if !newInfo.IsDir() && !oldInfo.ModTime().Equal(newInfo.ModTime()) {
			p.sendEvent(Event{Op: Write, Name: name})
		}
	}

	for name := range added {
		if _, ok := renamed[name]; !ok {
			p.sendEvent(Event{Op: Create, Name: name})
		}
	}

	p.files = current
}

// onRemove evaluates if path was removed or renamed and sends corresponding event
func (p *Poller) onRemove(name string, oldInfo fs.FileInfo, added map[string]fs.FileInfo, renamed map[string]struct{}) {
	for newPath, newInfo := range added {
		if _, ok := renamed[newPath]; ok {
			continue
		}
		if sameFile(oldInfo, newInfo) {
			renamed[newPath] = struct{}{}
			p.sendEvent(Event{Op: Rename, Name: name, NewPath: newPath})
			return
		}
	}
	p.sendEvent(Event{Op: Remove, Name: name})
}

func sameFile(a, b fs.FileInfo) bool {
	if a.IsDir() != b.IsDir() {
		return false
	}
	if a.Sys() != nil && b.Sys() != nil {
		return os.SameFile(a, b)
	}
	return a.Size() == b.Size() && a.Mode() == b.Mode() && a.ModTime().Equal(b.ModTime())
}

func (p *Poller) sendEvent(e Event) {
	select {
	case p.events <- e:
	case <-p.done:
	}
}

func (p *Poller) sendError(err error) {
	select {
	case p.errors <- err:
	case <-p.done:
	}
}

// WatchedList returns a copy of watched files and folders
func (p *Poller) WatchedList() map[string]fs.FileInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	files := make(map[string]fs.FileInfo, len(p.files))
	for k, v := range p.files {
		files[k] = v
	}
	return files
}

// Start scans watched paths every interval until the poller is closed.
func (p *Poller) Start(interval time.Duration) error {
	if interval < MinInterval {
		interval = MinInterval
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.running {
		p.mu.Unlock()
		return errors.New("watcher is already running")
	}
	p.running = true
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return nil
		case <-ticker.C:
		}

		p.Scan()

		select {
		case p.scanDone <- struct{}{}:
		case <-p.done:
			return nil
		}
	}
}

// Remove stops watching the path
func (p *Poller) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.watches, name)
	delete(p.files, name)
	return nil
}

func (p *Poller) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.running = false
	return nil
}

func (p *Poller) Errors() <-chan error {
	return p.errors
}

func (p *Poller) Events() <-chan Event {
	return p.events
}

func (p *Poller) ScanComplete() <-chan struct{} {
	return p.scanDone
}
