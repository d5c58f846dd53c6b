package loader

import (
	"path"
	"sort"
	"time"

	"golang.org/x/tools/txtar"

	"github.com/erraggy/schemagraph/sgerrors"
)

// LoadArchive reads a corpus from a txtar archive. Each file in the archive
// becomes a document whose schema ID is the archive-internal path.
//
// Archives are a convenient way to ship a whole corpus as a single reviewable
// file, and the format the loader's own fixtures use.
func (l *Loader) LoadArchive(archivePath string) (*LoadResult, error) {
	ar, err := txtar.ParseFile(archivePath)
	if err != nil {
		return nil, &sgerrors.LoadError{Path: archivePath, Message: "failed to parse archive", Cause: err}
	}
	return l.loadArchive(ar)
}

// LoadArchiveBytes reads a corpus from txtar archive contents.
func (l *Loader) LoadArchiveBytes(data []byte) (*LoadResult, error) {
	return l.loadArchive(txtar.Parse(data))
}

func (l *Loader) loadArchive(ar *txtar.Archive) (*LoadResult, error) {
	start := time.Now()

	files := make([]txtar.File, len(ar.Files))
	copy(files, ar.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	result := newLoadResult()
	for _, f := range files {
		l.loadBytes(result, path.Clean(f.Name), f.Data)
	}

	return l.finish(result, start)
}
