package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/cslzchen/modular-file-renderer/internal/types"
)

const viewerTemplateName = "viewer"

//go:embed templates/viewer.html.tmpl
var defaultViewerTemplate string

const (
	errorParseTemplateFileFormat = "parsing viewer template %s: %w"
	errorParseDefaultTemplate    = "parsing built-in viewer template: %w"
	errorExecuteTemplateFormat   = "rendering viewer template: %w"
)

// HTMLOptions configures an HTMLRenderer. The zero value uses the built-in
// viewer template.
type HTMLOptions struct {
	// TemplatePath optionally points at a template file replacing the
	// built-in viewer markup.
	TemplatePath string
}

// HTMLRenderer renders display trees into viewer markup. Templates are parsed
// at construction, never at package init.
type HTMLRenderer struct {
	viewerTemplate *template.Template
}

// viewerData is the data handed to the viewer template.
type viewerData struct {
	Tree *types.TreeNode
	Base string
}

// NewHTMLRenderer constructs an HTMLRenderer from the provided options.
func NewHTMLRenderer(options HTMLOptions) (*HTMLRenderer, error) {
	if options.TemplatePath != "" {
		parsedTemplate, parseError := template.ParseFiles(options.TemplatePath)
		if parseError != nil {
			return nil, fmt.Errorf(errorParseTemplateFileFormat, options.TemplatePath, parseError)
		}
		return &HTMLRenderer{viewerTemplate: parsedTemplate}, nil
	}
	parsedTemplate, parseError := template.New(viewerTemplateName).Parse(defaultViewerTemplate)
	if parseError != nil {
		return nil, fmt.Errorf(errorParseDefaultTemplate, parseError)
	}
	return &HTMLRenderer{viewerTemplate: parsedTemplate}, nil
}

// RenderTreeHTML executes the viewer template over the tree, with assetsBase
// as the URL base the browser loads icons and styles from.
func (renderer *HTMLRenderer) RenderTreeHTML(rootNode *types.TreeNode, assetsBase string) (string, error) {
	var builder strings.Builder
	executeError := renderer.viewerTemplate.Execute(&builder, viewerData{
		Tree: rootNode,
		Base: strings.TrimSuffix(assetsBase, "/"),
	})
	if executeError != nil {
		return "", fmt.Errorf(errorExecuteTemplateFormat, executeError)
	}
	return builder.String(), nil
}
