package render_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cslzchen/modular-file-renderer/internal/render"
	"github.com/cslzchen/modular-file-renderer/internal/types"
)

func sampleTree() *types.TreeNode {
	return &types.TreeNode{
		Label:    "bundle.zip",
		Kind:     types.NodeKindFolder,
		IconPath: "/assets/img/file-ext-zip.png",
		Children: []*types.TreeNode{
			{
				Label:    "docs",
				Kind:     types.NodeKindFolder,
				IconPath: "/assets/img/folder.png",
				Metadata: &types.NodeMetadata{DateText: "2024-03-05 10:30:00", SizeText: ""},
				Children: []*types.TreeNode{
					{
						Label:    "guide.txt",
						Kind:     types.NodeKindFile,
						IconPath: "/assets/img/file-ext-txt.png",
						Metadata: &types.NodeMetadata{DateText: "2024-03-05 10:30:00", SizeText: "1.2 KB"},
					},
				},
			},
		},
	}
}

func TestRenderTreeJSON(t *testing.T) {
	rendered, renderError := render.RenderTreeJSON(sampleTree())
	if renderError != nil {
		t.Fatalf("rendering JSON: %v", renderError)
	}

	var decoded []map[string]any
	if decodeError := json.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		t.Fatalf("decoding rendered JSON: %v", decodeError)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected a single-element root array, got %d elements", len(decoded))
	}
	rootObject := decoded[0]
	if rootObject["text"] != "bundle.zip" {
		t.Fatalf("expected root text bundle.zip, got %v", rootObject["text"])
	}
	if rootObject["icon"] != "/assets/img/file-ext-zip.png" {
		t.Fatalf("unexpected root icon %v", rootObject["icon"])
	}
	if _, hasMetadata := rootObject["data"]; hasMetadata {
		t.Fatal("root must not serialize metadata")
	}
}

func TestRenderTreeXML(t *testing.T) {
	rendered, renderError := render.RenderTreeXML(sampleTree())
	if renderError != nil {
		t.Fatalf("rendering XML: %v", renderError)
	}
	if !strings.HasPrefix(rendered, "<?xml") {
		t.Fatalf("expected XML header, got %q", rendered[:20])
	}
	for _, fragment := range []string{`type="folder"`, `type="file"`, "<label>guide.txt</label>", "<size>1.2 KB</size>"} {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("expected fragment %q in rendered XML:\n%s", fragment, rendered)
		}
	}
}

func TestRenderTreeRaw(t *testing.T) {
	rendered := render.RenderTreeRaw(sampleTree())
	expectedLines := []string{
		"bundle.zip",
		"└── docs (2024-03-05 10:30:00)",
		"    └── guide.txt (2024-03-05 10:30:00, 1.2 KB)",
	}
	actualLines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	if len(actualLines) != len(expectedLines) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expectedLines), len(actualLines), rendered)
	}
	for index, expectedLine := range expectedLines {
		if actualLines[index] != expectedLine {
			t.Fatalf("line %d: expected %q, got %q", index, expectedLine, actualLines[index])
		}
	}
}

func TestRenderTreeHTML(t *testing.T) {
	renderer, rendererError := render.NewHTMLRenderer(render.HTMLOptions{})
	if rendererError != nil {
		t.Fatalf("constructing HTML renderer: %v", rendererError)
	}
	rendered, renderError := renderer.RenderTreeHTML(sampleTree(), "/assets/")
	if renderError != nil {
		t.Fatalf("rendering HTML: %v", renderError)
	}
	for _, fragment := range []string{
		`href="/assets/css/zip-viewer.css"`,
		`src="/assets/img/file-ext-txt.png"`,
		`<span class="zip-node-label">guide.txt</span>`,
		`<span class="zip-node-size">1.2 KB</span>`,
		`zip-node-folder`,
	} {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("expected fragment %q in rendered HTML:\n%s", fragment, rendered)
		}
	}
}

func TestRenderTreeHTMLEscapesLabels(t *testing.T) {
	renderer, rendererError := render.NewHTMLRenderer(render.HTMLOptions{})
	if rendererError != nil {
		t.Fatalf("constructing HTML renderer: %v", rendererError)
	}
	hostileTree := &types.TreeNode{
		Label:    "<script>alert(1)</script>.zip",
		Kind:     types.NodeKindFolder,
		IconPath: "/assets/img/file-ext-zip.png",
	}
	rendered, renderError := renderer.RenderTreeHTML(hostileTree, "/assets")
	if renderError != nil {
		t.Fatalf("rendering HTML: %v", renderError)
	}
	if strings.Contains(rendered, "<script>alert(1)</script>") {
		t.Fatal("labels must be HTML-escaped")
	}
}

func TestNewHTMLRendererWithTemplatePath(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "custom.tmpl")
	customTemplate := "custom:{{.Tree.Label}}@{{.Base}}"
	if writeError := os.WriteFile(templatePath, []byte(customTemplate), 0o600); writeError != nil {
		t.Fatalf("writing custom template: %v", writeError)
	}

	renderer, rendererError := render.NewHTMLRenderer(render.HTMLOptions{TemplatePath: templatePath})
	if rendererError != nil {
		t.Fatalf("constructing HTML renderer: %v", rendererError)
	}
	rendered, renderError := renderer.RenderTreeHTML(sampleTree(), "/assets")
	if renderError != nil {
		t.Fatalf("rendering HTML: %v", renderError)
	}
	if rendered != "custom:bundle.zip@/assets" {
		t.Fatalf("unexpected custom render %q", rendered)
	}
}

func TestNewHTMLRendererMissingTemplatePath(t *testing.T) {
	_, rendererError := render.NewHTMLRenderer(render.HTMLOptions{TemplatePath: filepath.Join(t.TempDir(), "missing.tmpl")})
	if rendererError == nil {
		t.Fatal("expected an error for a missing template file")
	}
}
