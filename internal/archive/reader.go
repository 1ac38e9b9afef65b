// Package archive lists the contents of zip containers for tree rendering.
package archive

import (
	"archive/zip"
	"fmt"
	"os"

	"github.com/cslzchen/modular-file-renderer/internal/types"
)

const (
	// errorOpenArchiveFormat is used when the zip central directory cannot be read.
	errorOpenArchiveFormat = "opening archive %s: %w"

	// warningCloseArchiveFormat is used when the archive handle cannot be closed.
	warningCloseArchiveFormat = "Warning: failed to close %s: %v\n"
)

// ReadEntries opens the zip archive at archivePath and returns its entries in
// central directory order. Folder entries keep their trailing slash. A failure
// to open or parse the archive is fatal to the caller's render and is returned
// wrapped, never recovered here.
func ReadEntries(archivePath string) ([]types.ArchiveEntry, error) {
	zipReader, openError := zip.OpenReader(archivePath)
	if openError != nil {
		return nil, fmt.Errorf(errorOpenArchiveFormat, archivePath, openError)
	}
	defer func() {
		closeError := zipReader.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseArchiveFormat, archivePath, closeError)
		}
	}()

	entries := make([]types.ArchiveEntry, 0, len(zipReader.File))
	for _, archiveFile := range zipReader.File {
		entries = append(entries, types.ArchiveEntry{
			Path:      archiveFile.Name,
			Modified:  archiveFile.Modified,
			SizeBytes: int64(archiveFile.UncompressedSize64),
		})
	}
	return entries, nil
}
