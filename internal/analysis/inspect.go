// Package analysis determines what a file is: its MIME type, whether
// its content is text the preview panel can render, and any embedded
// metadata worth surfacing in the properties dialog.
package analysis

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"colonnade/internal/config"
	"colonnade/internal/errors"
	"colonnade/internal/log"
)

// DirectoryType is the content type reported for directories.
const DirectoryType = "inode/directory"

// defaultPreviewCap bounds Preview reads when no config is attached.
const defaultPreviewCap = 1 << 20

// Details describes a single path for the properties dialog and the
// preview panel.
type Details struct {
	Path        string
	ContentType string
	Size        int64
	Text        bool
	Metadata    map[string]string
}

// Analyzer enriches Details for one family of content types.
type Analyzer interface {
	// CanHandle checks if this analyzer is suitable for the given content type
	CanHandle(contentType string) bool
	// Analyze inspects the file at path and updates d in place
	Analyze(path string, d *Details) error
}

// ImageAnalyzer reads EXIF metadata out of image files.
type ImageAnalyzer struct{}

// CanHandle accepts image types. application/octet-stream is included
// because RAW formats often sniff as that.
func (a *ImageAnalyzer) CanHandle(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/octet-stream"
}

// Analyze extracts the EXIF fields the properties dialog shows. A file
// without EXIF data is not an error.
func (a *ImageAnalyzer) Analyze(path string, d *Details) error {
	logger := log.LogWithFields(log.F("path", path))

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image for exif: %w", err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		logger.Debug("no exif data")
		return nil
	}

	if dt, err := x.Get(exif.DateTimeOriginal); err == nil {
		if s, _ := dt.StringVal(); s != "" {
			d.Metadata["Taken"] = s
		}
	}
	if model, err := x.Get(exif.Model); err == nil {
		if s, _ := model.StringVal(); s != "" {
			d.Metadata["Camera"] = s
		}
	}
	if w, err := x.Get(exif.PixelXDimension); err == nil {
		if h, err := x.Get(exif.PixelYDimension); err == nil {
			wv, _ := w.Int(0)
			hv, _ := h.Int(0)
			if wv > 0 && hv > 0 {
				d.Metadata["Dimensions"] = fmt.Sprintf("%dx%d", wv, hv)
			}
		}
	}

	return nil
}

// Inspector resolves content types and gathers per-file metadata.
type Inspector struct {
	cfg       *config.Config
	analyzers []Analyzer
}

// register adds an analyzer to the inspector's list.
func (in *Inspector) register(a Analyzer) {
	in.analyzers = append(in.analyzers, a)
}

// New creates an Inspector with the default analyzers registered.
func New() *Inspector {
	exif.RegisterParsers(mknote.All...)
	in := &Inspector{}
	in.register(&ImageAnalyzer{})
	return in
}

// NewWithConfig creates an Inspector that honors config limits.
func NewWithConfig(cfg *config.Config) *Inspector {
	in := New()
	in.cfg = cfg
	return in
}

// extTypes maps extensions that sniffing cannot distinguish from plain
// text (or from each other) to their proper types.
var extTypes = map[string]string{
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".json": "application/json",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".go":   "text/x-go; charset=utf-8",
	".log":  "text/plain; charset=utf-8",
}

// typeByExtension resolves a content type from the file extension,
// preferring the local table over the platform mime registry so results
// stay stable across systems.
func typeByExtension(ext string) string {
	if ct, ok := extTypes[ext]; ok {
		return ct
	}
	return mime.TypeByExtension(ext)
}

// Inspect stats and sniffs path. Extension lookup runs first, content
// sniffing covers extensionless and unknown files, and registered
// analyzers add type specific metadata.
func (in *Inspector) Inspect(path string) (*Details, error) {
	logger := log.LogWithFields(log.F("path", path))

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.FromOS(err, path)
	}

	d := &Details{
		Path:     path,
		Size:     info.Size(),
		Metadata: make(map[string]string),
	}

	if info.IsDir() {
		d.ContentType = DirectoryType
		return d, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.FromOS(err, path)
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return nil, errors.NewPathError("reading file head", path, errors.IOError, err)
	}
	head = head[:n]

	sniffed := http.DetectContentType(head)
	d.ContentType = typeByExtension(strings.ToLower(filepath.Ext(path)))
	if d.ContentType == "" {
		d.ContentType = sniffed
	}
	// The sniff decides previewability: a .json file holding binary
	// garbage must not reach the text panel.
	d.Text = strings.HasPrefix(sniffed, "text/")

	for _, a := range in.analyzers {
		if !a.CanHandle(d.ContentType) {
			continue
		}
		logger.Debugf("using analyzer %T for %s", a, d.ContentType)
		if err := a.Analyze(path, d); err != nil {
			logger.With(log.F("analyzer", fmt.Sprintf("%T", a))).Warn("analyzer failed, returning partial details")
			return d, nil
		}
		break
	}

	return d, nil
}

// previewCap returns the configured preview byte limit.
func (in *Inspector) previewCap() int64 {
	if in.cfg != nil && in.cfg.Browser.PreviewMaxBytes > 0 {
		return in.cfg.Browser.PreviewMaxBytes
	}
	return defaultPreviewCap
}

// Preview returns the beginning of a text file for the preview panel,
// with truncated reporting whether the cap cut the file short. Binary
// and directory content comes back as an Unsupported error so callers
// can show a placeholder instead.
func (in *Inspector) Preview(path string) (content string, truncated bool, err error) {
	d, err := in.Inspect(path)
	if err != nil {
		return "", false, err
	}
	if d.ContentType == DirectoryType {
		return "", false, errors.NewPathError("directories have no text preview", path, errors.Unsupported, nil)
	}
	if !d.Text {
		return "", false, errors.NewPathError("binary content has no text preview", path, errors.Unsupported, nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", false, errors.FromOS(err, path)
	}
	defer file.Close()

	limit := in.previewCap()
	b, err := io.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		return "", false, errors.NewPathError("reading preview", path, errors.IOError, err)
	}

	// Drop a rune the limit may have split.
	for i := 0; i < 3 && len(b) > 0 && !utf8.Valid(b); i++ {
		b = b[:len(b)-1]
	}

	return string(b), d.Size > limit, nil
}
