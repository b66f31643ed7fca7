package storage

import (
	"strings"
	"time"
)

const (
	// KeyPrefix namespaces every voice upload. There is no separator
	// between the prefix and the date segment.
	KeyPrefix = "uploads/voice"

	// DefaultExtension is used when the file name has no dot
	DefaultExtension = ".m4a"

	dateLayout = "2006-01-02"
)

// Extension returns everything from the last dot in fileName, dot included,
// or DefaultExtension when there is no dot.
func Extension(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		return fileName[i:]
	}
	return DefaultExtension
}

// ObjectKey builds "uploads/voice<yyyy-MM-dd>/<id><ext>"
func ObjectKey(fileName string, now time.Time, id string) string {
	return KeyPrefix + now.Format(dateLayout) + "/" + id + Extension(fileName)
}
