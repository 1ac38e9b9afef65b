// Package tree folds flat archive listings into single-rooted display trees.
package tree

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cslzchen/modular-file-renderer/internal/types"
	"github.com/cslzchen/modular-file-renderer/internal/utils"
)

const (
	pathSeparator      = "/"
	extensionSeparator = "."

	// warningTypeConflictMessage is logged when an entry terminates at a path
	// whose node was already created with a different kind. Archives are
	// untrusted input, so the conflict is recoverable: the existing node wins
	// and the entry is skipped.
	warningTypeConflictMessage = "conflicting entry kind for path already in tree, skipping entry"
)

// IconResolver supplies icon asset URLs for tree nodes. The archive viewer
// wires assets.IconSet here.
type IconResolver interface {
	FolderIconPath() string
	ArchiveIconPath() string
	FileIconPath(extension string) string
}

// Builder folds sanitized archive entries into display trees. A Builder is
// stateless between calls; concurrent BuildTree invocations share nothing but
// the resolver and logger.
type Builder struct {
	icons  IconResolver
	logger *zap.Logger
}

// NewBuilder constructs a Builder using the provided icon resolver. A nil
// logger disables conflict warnings.
func NewBuilder(icons IconResolver, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{icons: icons, logger: logger}
}

// BuildTree folds entries, one at a time in input order, into a tree rooted
// at a synthetic node labeled rootLabel. The root carries the archive icon
// and no metadata. Children keep first-discovery order and a label appears at
// most once among its siblings; an entry terminating at a path that an
// earlier entry already created refers to the same node.
func (builder *Builder) BuildTree(entries []types.ArchiveEntry, rootLabel string) *types.TreeNode {
	rootNode := &types.TreeNode{
		Label:    rootLabel,
		Kind:     types.NodeKindFolder,
		IconPath: builder.icons.ArchiveIconPath(),
		Children: []*types.TreeNode{},
	}
	for _, entry := range entries {
		builder.foldEntry(rootNode, entry)
	}
	return rootNode
}

// foldEntry walks one entry's path segments from the root, descending through
// existing folder nodes, creating bare folder nodes for missing intermediate
// segments, and attaching the entry's metadata at the terminal segment.
func (builder *Builder) foldEntry(rootNode *types.TreeNode, entry types.ArchiveEntry) {
	entryIsFolder := strings.HasSuffix(entry.Path, pathSeparator)
	segments := splitPathSegments(entry.Path)
	if len(segments) == 0 {
		// Malformed path or the archive root itself; nothing to add.
		return
	}

	parentNode := rootNode
	lastIndex := len(segments) - 1
	for index, segment := range segments {
		currentNode := findNodeAmongSiblings(segment, parentNode.Children)

		if currentNode != nil {
			if index == lastIndex {
				if currentNode.Kind != types.NodeKindFolder || !entryIsFolder {
					builder.logger.Warn(warningTypeConflictMessage,
						zap.String("path", entry.Path),
						zap.String("existingKind", currentNode.Kind))
					return
				}
				// The node is a placeholder created by an earlier descendant
				// entry; fill in this folder's own details.
				builder.attachMetadata(currentNode, entry, entryIsFolder)
				return
			}
			if currentNode.Kind != types.NodeKindFolder {
				builder.logger.Warn(warningTypeConflictMessage,
					zap.String("path", entry.Path),
					zap.String("existingKind", currentNode.Kind))
				return
			}
			parentNode = currentNode
			continue
		}

		newNode := &types.TreeNode{Label: segment, Kind: types.NodeKindFolder}
		if index == lastIndex {
			if !entryIsFolder {
				newNode.Kind = types.NodeKindFile
			}
			builder.attachMetadata(newNode, entry, entryIsFolder)
			parentNode.Children = append(parentNode.Children, newNode)
			return
		}
		// Bare intermediate folder: metadata stays absent unless a later
		// entry terminates exactly at this path.
		parentNode.Children = append(parentNode.Children, newNode)
		parentNode = newNode
	}
}

// attachMetadata fills in the display details of the node the entry terminates at.
func (builder *Builder) attachMetadata(node *types.TreeNode, entry types.ArchiveEntry, entryIsFolder bool) {
	sizeText := ""
	if entry.SizeBytes > 0 {
		sizeText = utils.FormatEntrySize(entry.SizeBytes)
	}
	node.Metadata = &types.NodeMetadata{
		DateText: utils.FormatEntryTimestamp(entry.Modified),
		SizeText: sizeText,
	}
	if entryIsFolder {
		node.IconPath = builder.icons.FolderIconPath()
		return
	}
	node.IconPath = builder.icons.FileIconPath(fileExtension(entry.Path))
}

// splitPathSegments splits an entry path on the separator, discarding empty
// segments produced by leading, trailing, or duplicate separators.
func splitPathSegments(entryPath string) []string {
	var segments []string
	for _, segment := range strings.Split(entryPath, pathSeparator) {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// findNodeAmongSiblings returns the first sibling whose label equals the
// segment, or nil. Linear first-match lookup; labels are unique among
// siblings so at most one node can match.
func findNodeAmongSiblings(segment string, siblings []*types.TreeNode) *types.TreeNode {
	for _, sibling := range siblings {
		if sibling.Label == segment {
			return sibling
		}
	}
	return nil
}

// fileExtension returns the lowercase text after the final dot of the last
// path segment, or the empty string when the segment has none. A leading dot
// alone does not count as an extension separator.
func fileExtension(entryPath string) string {
	baseName := strings.TrimSuffix(entryPath, pathSeparator)
	if slashIndex := strings.LastIndex(baseName, pathSeparator); slashIndex >= 0 {
		baseName = baseName[slashIndex+1:]
	}
	dotIndex := strings.LastIndex(baseName, extensionSeparator)
	if dotIndex <= 0 {
		return ""
	}
	return strings.ToLower(baseName[dotIndex+1:])
}
