package archive

import (
	"strings"

	"github.com/cslzchen/modular-file-renderer/internal/types"
)

const (
	// macosJunkFolderPrefix marks entries nested under the macOS resource-fork folder.
	macosJunkFolderPrefix = "__MACOSX/"
	// macosJunkFileName is the macOS Finder metadata file.
	macosJunkFileName = ".DS_Store"
	// macosJunkFileSuffix matches the Finder metadata file in nested folders.
	macosJunkFileSuffix = "/" + macosJunkFileName
)

// Sanitize removes macOS system and temporary entries from an archive listing.
// The filter is pure and order-preserving; entries it keeps are returned
// unmodified. Extend the predicate here if more junk file types turn up.
func Sanitize(entries []types.ArchiveEntry) []types.ArchiveEntry {
	sanitized := make([]types.ArchiveEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Path, macosJunkFolderPrefix) {
			continue
		}
		if entry.Path == macosJunkFileName || strings.HasSuffix(entry.Path, macosJunkFileSuffix) {
			continue
		}
		sanitized = append(sanitized, entry)
	}
	return sanitized
}
