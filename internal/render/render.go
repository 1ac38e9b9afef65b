// Package render turns display trees into markup and machine-readable output.
package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"

	"github.com/cslzchen/modular-file-renderer/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
)

// RenderTreeJSON marshals the tree as a JSON array holding the single root
// node, the shape the browser tree widget consumes.
func RenderTreeJSON(rootNode *types.TreeNode) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent([]*types.TreeNode{rootNode}, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded), nil
}

// RenderTreeXML marshals the tree as an XML document rooted at the single node.
func RenderTreeXML(rootNode *types.TreeNode) (string, error) {
	encoded, xmlEncodeError := xml.MarshalIndent(rootNode, indentPrefix, indentSpacer)
	if xmlEncodeError != nil {
		return "", xmlEncodeError
	}
	return xml.Header + string(encoded), nil
}

// RenderTreeRaw renders the tree as plain text using box-drawing connectors,
// with each node's date and size appended when present.
func RenderTreeRaw(rootNode *types.TreeNode) string {
	var buffer bytes.Buffer
	buffer.WriteString(rootNode.Label + "\n")
	writeRawChildren(&buffer, rootNode, "")
	return buffer.String()
}

func writeRawChildren(buffer *bytes.Buffer, parentNode *types.TreeNode, prefix string) {
	numberOfChildren := len(parentNode.Children)
	for index, childNode := range parentNode.Children {
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if index == numberOfChildren-1 {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		buffer.WriteString(prefix + connector + childNode.Label + rawMetadataSuffix(childNode) + "\n")
		writeRawChildren(buffer, childNode, childPrefix)
	}
}

func rawMetadataSuffix(node *types.TreeNode) string {
	if node.Metadata == nil {
		return ""
	}
	suffix := " (" + node.Metadata.DateText
	if node.Metadata.SizeText != "" {
		suffix += ", " + node.Metadata.SizeText
	}
	return suffix + ")"
}
