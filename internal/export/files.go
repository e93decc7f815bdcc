package export

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tareeqi/tareeqweb/internal/errors"
	"github.com/tareeqi/tareeqweb/internal/logging"
)

// CopyPublic copies the static assets directory into the output.
type CopyPublic struct {
	publicDir string
	logger    logging.Logger
}

// NewCopyPublic creates the copy-public pass.
func NewCopyPublic(publicDir string, logger logging.Logger) *CopyPublic {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CopyPublic{publicDir: publicDir, logger: logger}
}

func (p *CopyPublic) Name() string { return "copy-public" }

// Run copies every regular file, overwriting existing copies. A missing
// public directory is not an error.
func (p *CopyPublic) Run(ctx context.Context, outDir string) error {
	if p.publicDir == "" {
		return nil
	}
	if _, err := os.Stat(p.publicDir); os.IsNotExist(err) {
		p.logger.Warn(ctx, nil, "Public directory not found, nothing to copy", "dir", p.publicDir)
		return nil
	}

	copied := 0
	err := filepath.WalkDir(p.publicDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(p.publicDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(outDir, rel)

		if d.IsDir() {
			return os.MkdirAll(dest, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, dest); err != nil {
			return errors.WrapIO(err, errors.ErrCodeInvalidPath, "failed to copy file").WithPath(path)
		}
		copied++
		return nil
	})
	if err != nil {
		return err
	}

	p.logger.Debug(ctx, "Copied public directory", "dir", p.publicDir, "files", copied)
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// NoJekyll writes the marker that stops GitHub Pages from running Jekyll,
// which would hide underscore-prefixed directories.
type NoJekyll struct{}

// NewNoJekyll creates the nojekyll pass.
func NewNoJekyll() NoJekyll { return NoJekyll{} }

func (NoJekyll) Name() string { return "nojekyll" }

// Run writes an empty .nojekyll file.
func (NoJekyll) Run(_ context.Context, outDir string) error {
	path := filepath.Join(outDir, ".nojekyll")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return errors.WrapIO(err, errors.ErrCodeInvalidPath, "failed to write marker").WithPath(path)
	}
	return nil
}

// DefaultImageExtensions are the extensions ImageCase renames.
var DefaultImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// ImageCase renames image files to lower case so references match on
// case-sensitive hosts.
type ImageCase struct {
	extensions map[string]bool
	logger     logging.Logger
}

// NewImageCase creates the image-case pass. Extensions match
// case-insensitively; nil selects DefaultImageExtensions.
func NewImageCase(extensions []string, logger logging.Logger) *ImageCase {
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return &ImageCase{extensions: set, logger: logger}
}

func (p *ImageCase) Name() string { return "image-case" }

// Run renames every matching file whose name is not already lower case. A
// different lower-case file that already exists is left alone and reported.
func (p *ImageCase) Run(ctx context.Context, outDir string) error {
	var pending []string
	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if p.extensions[strings.ToLower(filepath.Ext(name))] && strings.ToLower(name) != name {
			pending = append(pending, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	collector := errors.NewErrorCollector()
	for _, path := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := filepath.Join(filepath.Dir(path), strings.ToLower(filepath.Base(path)))
		if err := renameLower(path, target); err != nil {
			if os.IsExist(err) {
				p.logger.Warn(ctx, nil, "Lower-case image already exists, leaving original in place",
					"file", path, "target", target)
				continue
			}
			collector.Add(p.Name(), path, err)
			continue
		}
		p.logger.Debug(ctx, "Renamed image", "from", path, "to", target)
	}
	return collector.Err()
}

// renameLower renames src to target unless a different file already holds
// target. A byte-identical target means src is a re-copied duplicate and it
// is removed. Case-insensitive file systems report src itself at target;
// that case goes through a temporary name.
func renameLower(src, target string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if targetInfo, err := os.Lstat(target); err == nil {
		if !os.SameFile(srcInfo, targetInfo) {
			if sameContent(src, target) {
				return os.Remove(src)
			}
			return &os.LinkError{Op: "rename", Old: src, New: target, Err: fs.ErrExist}
		}
		tmp := src + ".tmp-rename"
		if err := os.Rename(src, tmp); err != nil {
			return err
		}
		return os.Rename(tmp, target)
	}
	return os.Rename(src, target)
}

func sameContent(a, b string) bool {
	da, err := os.ReadFile(a)
	if err != nil {
		return false
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}
