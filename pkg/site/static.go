package site

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CopyDir mirrors the src directory of fsys into the dst directory on disk
func CopyDir(fsys fs.FS, src, dst string) error {
	return fs.WalkDir(fsys, src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(relativeTo(src, p)))
		if d.IsDir() {
			if p != src && ShouldSkipDir(d.Name()) {
				return fs.SkipDir
			}
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(fsys, p, target, info.Mode().Perm())
	})
}

func copyFile(fsys fs.FS, src, dst string, perm fs.FileMode) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// CopyStatic clears the public directory and copies static files into it
func (s *Site) CopyStatic() error {
	out := s.OutDir()
	if err := s.checkOutDir(); err != nil {
		return err
	}

	s.log.Info("Clearing %s", out)
	if err := os.RemoveAll(out); err != nil {
		return err
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	if s.opts.Static == "" {
		return nil
	}
	if _, err := fs.Stat(s.fileSystem, s.opts.Static); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warning("Static directory %s doesn't exist", s.opts.Static)
			return nil
		}
		return err
	}

	s.log.Info("Copying %s to %s", s.opts.Static, out)
	return CopyDir(s.fileSystem, s.opts.Static, out)
}

var errUnsafeOutDir = errors.New("public directory must not contain the site sources")

// checkOutDir refuses to clear directories that contain the root or sources,
// and public dirs inside the static dir. Paths are compared as absolute paths.
func (s *Site) checkOutDir() error {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(s.OutDir())
	if err != nil {
		return err
	}
	if contains(out, root) {
		return errUnsafeOutDir
	}
	for _, src := range []string{s.opts.Content, s.opts.Template} {
		if contains(out, filepath.Join(root, filepath.FromSlash(src))) {
			return errUnsafeOutDir
		}
	}
	if s.opts.Static != "" {
		static := filepath.Join(root, filepath.FromSlash(s.opts.Static))
		if contains(out, static) || contains(static, out) {
			return errUnsafeOutDir
		}
	}
	return nil
}

// contains reports whether p is dir or is inside dir, both paths must be absolute
func contains(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
