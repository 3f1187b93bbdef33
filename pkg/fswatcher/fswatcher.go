/*
Package fswatcher watches files and directories of an fs.FS for changes by polling.
*/
package fswatcher

import (
	"io/fs"
	"time"
)

// Event represents a single file system notification
type Event struct {
	Name    string // Path to the file or directory
	NewPath string // new path after rename operation
	Op      Op     // File operation that triggered the event.
}

// Op describes a type of event
type Op uint32

// Operations
const (
	Create Op = 1 << iota
	Write
	Remove
	Rename
)

func (op Op) String() string {
	switch op {
	case Create:
		return "CREATE"
	case Write:
		return "WRITE"
	case Remove:
		return "REMOVE"
	case Rename:
		return "RENAME"
	}
	return "?"
}

// FsWatcher is fsnotify-like interface for implementing file watchers
type FsWatcher interface {
	Events() <-chan Event
	Errors() <-chan error
	// ScanComplete receives a value after every scan, when all events of the scan were sent
	ScanComplete() <-chan struct{}
	Add(name string) (map[string]fs.FileInfo, error)
	Remove(name string) error
	Start(interval time.Duration) error
	Close() error
	AddShouldSkipHook(func(path string, fi fs.FileInfo) bool)
}
