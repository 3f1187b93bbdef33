package site

import (
	"io/fs"
	"path"
	"strings"

	"github.com/flytaly/mdsite/pkg/page"
)

var ExcludedDirs = map[string]bool{"node_modules": true}

// ShouldSkipDir returns true for hidden and excluded directories
func ShouldSkipDir(name string) bool {
	if name == "." {
		return false
	}
	return strings.HasPrefix(name, ".") || ExcludedDirs[name]
}

// SourceList returns markdown files inside the dir, sorted in lexical order
func SourceList(fsys fs.FS, dir string) (files []string, err error) {
	err = fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && ShouldSkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if page.IsMarkdown(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

// cleanPath converts the path to the form used by fs.FS
func cleanPath(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "./")
}

// under returns true if p is dir or is inside dir
func under(dir, p string) bool {
	return dir == "." || p == dir || strings.HasPrefix(p, dir+"/")
}

// relativeTo returns p relative to dir, p must be under dir
func relativeTo(dir, p string) string {
	if dir == "." {
		return p
	}
	return strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
}
