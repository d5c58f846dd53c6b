package issues

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// getStringBuilder retrieves a builder from the pool and resets it.
func getStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// putStringBuilder returns a builder to the pool.
func putStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	stringBuilderPool.Put(sb)
}

// FormatID builds a schema identifier from a document path and an optional
// local definition name, using the "path#Name" convention for definitions.
func FormatID(path, definition string) string {
	if definition == "" {
		return path
	}

	sb := getStringBuilder()
	sb.WriteString(path)
	sb.WriteByte('#')
	sb.WriteString(definition)
	result := sb.String()
	putStringBuilder(sb)
	return result
}

// SplitID is the inverse of FormatID: it separates a schema identifier into
// its document path and local definition name (empty for root schemas).
func SplitID(id string) (path, definition string) {
	if idx := strings.IndexByte(id, '#'); idx >= 0 {
		return id[:idx], id[idx+1:]
	}
	return id, ""
}
