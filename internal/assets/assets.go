// Package assets resolves icon asset URLs for rendered archive trees.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	imageDirectoryName  = "img"
	iconFileSuffix      = ".png"
	extensionIconPrefix = "file-ext-"
	folderIconFileName  = "folder.png"
	genericIconFileName = "file-ext-generic.png"
	archiveIconFileName = "file-ext-zip.png"
)

// IconSet resolves icon asset URLs against a static asset directory.
// Both the directory probed for per-extension icons and the URL base the
// browser fetches them from are explicit construction parameters.
type IconSet struct {
	assetDirectory string
	baseURL        string
}

// NewIconSet constructs an IconSet probing assetDirectory and producing URLs
// under baseURL. A trailing slash on baseURL is tolerated.
func NewIconSet(assetDirectory string, baseURL string) *IconSet {
	return &IconSet{
		assetDirectory: assetDirectory,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// IconExists reports whether a per-extension icon asset exists for the given
// file extension. The extension is lowercased before probing.
func (iconSet *IconSet) IconExists(extension string) bool {
	if extension == "" {
		return false
	}
	iconPath := filepath.Join(
		iconSet.assetDirectory,
		imageDirectoryName,
		extensionIconPrefix+strings.ToLower(extension)+iconFileSuffix,
	)
	fileInformation, statError := os.Stat(iconPath)
	return statError == nil && !fileInformation.IsDir()
}

// FolderIconPath returns the URL of the fixed folder icon.
func (iconSet *IconSet) FolderIconPath() string {
	return iconSet.iconURL(folderIconFileName)
}

// ArchiveIconPath returns the URL of the icon used for the synthetic root node.
func (iconSet *IconSet) ArchiveIconPath() string {
	return iconSet.iconURL(archiveIconFileName)
}

// FileIconPath returns the per-extension icon URL when the asset exists and
// the generic file icon URL otherwise.
func (iconSet *IconSet) FileIconPath(extension string) string {
	loweredExtension := strings.ToLower(extension)
	if iconSet.IconExists(loweredExtension) {
		return iconSet.iconURL(extensionIconPrefix + loweredExtension + iconFileSuffix)
	}
	return iconSet.iconURL(genericIconFileName)
}

func (iconSet *IconSet) iconURL(fileName string) string {
	return fmt.Sprintf("%s/%s/%s", iconSet.baseURL, imageDirectoryName, fileName)
}
