package shell

import (
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"colonnade/internal/analysis"
	"colonnade/internal/fs"
)

// Properties is the metadata bundle behind the properties dialog.
type Properties struct {
	Path        string
	Name        string
	Kind        string
	ContentType string
	Size        int64
	ModTime     time.Time
	Mode        os.FileMode
	Metadata    map[string]string
}

// HumanSize renders the size the way file managers do.
func (p *Properties) HumanSize() string {
	return humanize.Bytes(uint64(p.Size))
}

// MetadataKeys returns the metadata keys in stable order for rendering.
func (p *Properties) MetadataKeys() []string {
	keys := make([]string, 0, len(p.Metadata))
	for k := range p.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildProperties merges the lister's snapshot with content inspection.
// Inspection failures degrade the result instead of failing it: the
// stat-level facts are still worth showing.
func buildProperties(entry fs.Entry, inspector *analysis.Inspector) *Properties {
	p := &Properties{
		Path:    entry.Path,
		Name:    entry.Name,
		Kind:    entry.Kind.String(),
		Size:    entry.Size,
		ModTime: entry.ModTime,
		Mode:    entry.Mode,
	}
	if inspector == nil || entry.Kind == fs.KindSymlink {
		return p
	}
	if d, err := inspector.Inspect(entry.Path); err == nil {
		p.ContentType = d.ContentType
		p.Metadata = d.Metadata
	}
	return p
}
