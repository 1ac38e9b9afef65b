// Package types defines every cross‑package data structure used by the zipview tool.
package types

import (
	"encoding/xml"
	"time"
)

const (
	NodeKindFolder = "folder"
	NodeKindFile   = "file"

	FormatHTML = "html"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatRaw  = "raw"
)

// ValidatedArchive is an absolute archive path that already passed existence checks.
type ValidatedArchive struct {
	AbsolutePath string
}

// ArchiveEntry is one record of an archive's directory listing, as produced
// by the archive reader. Folder entries carry a trailing slash in Path.
type ArchiveEntry struct {
	Path      string
	Modified  time.Time
	SizeBytes int64
}

// NodeMetadata holds the display details attached to a terminal tree node.
// The synthetic root never carries metadata.
type NodeMetadata struct {
	DateText string `json:"date" xml:"date"`
	SizeText string `json:"size" xml:"size"`
}

// TreeNode is a node of the display tree built from an archive listing.
// The JSON field names match the browser tree widget consumed by the viewer
// template ("text", "icon", "children", "data").
type TreeNode struct {
	XMLName  xml.Name      `json:"-" xml:"node"`
	Label    string        `json:"text" xml:"label"`
	Kind     string        `json:"type" xml:"type,attr"`
	IconPath string        `json:"icon" xml:"icon"`
	Metadata *NodeMetadata `json:"data,omitempty" xml:"metadata,omitempty"`
	Children []*TreeNode   `json:"children,omitempty" xml:"children>node,omitempty"`
}
