package cli

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeFixtureArchive(t *testing.T, archivePath string, entryPaths ...string) {
	t.Helper()
	archiveFile, createError := os.Create(archivePath)
	if createError != nil {
		t.Fatalf("creating archive file: %v", createError)
	}
	zipWriter := zip.NewWriter(archiveFile)
	for _, entryPath := range entryPaths {
		header := &zip.FileHeader{
			Name:     entryPath,
			Method:   zip.Deflate,
			Modified: time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC),
		}
		entryWriter, headerError := zipWriter.CreateHeader(header)
		if headerError != nil {
			t.Fatalf("creating entry %s: %v", entryPath, headerError)
		}
		if !strings.HasSuffix(entryPath, "/") {
			if _, writeError := entryWriter.Write([]byte("content")); writeError != nil {
				t.Fatalf("writing entry %s: %v", entryPath, writeError)
			}
		}
	}
	if closeError := zipWriter.Close(); closeError != nil {
		t.Fatalf("closing zip writer: %v", closeError)
	}
	if closeError := archiveFile.Close(); closeError != nil {
		t.Fatalf("closing archive file: %v", closeError)
	}
}

func TestResolveAndValidateArchives(t *testing.T) {
	temporaryDirectory := t.TempDir()
	archivePath := filepath.Join(temporaryDirectory, "bundle.zip")
	writeFixtureArchive(t, archivePath, "a.txt")

	t.Run("valid archive", func(t *testing.T) {
		validated, validationError := resolveAndValidateArchives([]string{archivePath})
		if validationError != nil {
			t.Fatalf("validating archive: %v", validationError)
		}
		if len(validated) != 1 || validated[0].AbsolutePath != archivePath {
			t.Fatalf("unexpected validation result %+v", validated)
		}
	})

	t.Run("duplicates removed", func(t *testing.T) {
		validated, validationError := resolveAndValidateArchives([]string{archivePath, archivePath})
		if validationError != nil {
			t.Fatalf("validating archives: %v", validationError)
		}
		if len(validated) != 1 {
			t.Fatalf("expected one validated archive, got %d", len(validated))
		}
	})

	t.Run("missing archive", func(t *testing.T) {
		_, validationError := resolveAndValidateArchives([]string{filepath.Join(temporaryDirectory, "missing.zip")})
		if validationError == nil {
			t.Fatal("expected an error for a missing archive")
		}
	})

	t.Run("directory rejected", func(t *testing.T) {
		_, validationError := resolveAndValidateArchives([]string{temporaryDirectory})
		if validationError == nil {
			t.Fatal("expected an error for a directory")
		}
	})
}

func TestRunRenderJSONToFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	temporaryDirectory := t.TempDir()
	archivePath := filepath.Join(temporaryDirectory, "bundle.zip")
	writeFixtureArchive(t, archivePath, "docs/", "docs/guide.txt", "__MACOSX/junk.txt")
	outputPath := filepath.Join(temporaryDirectory, "tree.json")

	options := renderOptions{
		format:        "json",
		assetsBase:    "/assets",
		iconDirectory: temporaryDirectory,
		outputPath:    outputPath,
	}
	if renderError := runRender(zap.NewNop(), options, []string{archivePath}); renderError != nil {
		t.Fatalf("rendering archive: %v", renderError)
	}

	renderedBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading rendered output: %v", readError)
	}
	rendered := string(renderedBytes)
	if !strings.Contains(rendered, `"text": "bundle.zip"`) {
		t.Fatalf("expected root label in output:\n%s", rendered)
	}
	if !strings.Contains(rendered, `"text": "guide.txt"`) {
		t.Fatalf("expected file node in output:\n%s", rendered)
	}
	if strings.Contains(rendered, "junk.txt") {
		t.Fatalf("junk entries must be sanitized away:\n%s", rendered)
	}
}

func TestRunRenderKeepJunk(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	temporaryDirectory := t.TempDir()
	archivePath := filepath.Join(temporaryDirectory, "bundle.zip")
	writeFixtureArchive(t, archivePath, "kept.txt", ".DS_Store")
	outputPath := filepath.Join(temporaryDirectory, "tree.json")

	options := renderOptions{
		format:        "json",
		assetsBase:    "/assets",
		iconDirectory: temporaryDirectory,
		outputPath:    outputPath,
		keepJunk:      true,
	}
	if renderError := runRender(zap.NewNop(), options, []string{archivePath}); renderError != nil {
		t.Fatalf("rendering archive: %v", renderError)
	}

	renderedBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading rendered output: %v", readError)
	}
	if !strings.Contains(string(renderedBytes), ".DS_Store") {
		t.Fatal("expected junk entry to survive with keep-junk set")
	}
}

func TestRenderCommandRejectsUnknownFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	temporaryDirectory := t.TempDir()
	archivePath := filepath.Join(temporaryDirectory, "bundle.zip")
	writeFixtureArchive(t, archivePath, "a.txt")

	renderCommand := createRenderCommand(zap.NewNop())
	renderCommand.SetArgs([]string{"--format", "yaml", archivePath})
	if executionError := renderCommand.Execute(); executionError == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestRenderCommandHTMLToFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	temporaryDirectory := t.TempDir()
	archivePath := filepath.Join(temporaryDirectory, "bundle.zip")
	writeFixtureArchive(t, archivePath, "docs/", "docs/guide.txt")
	outputPath := filepath.Join(temporaryDirectory, "viewer.html")

	renderCommand := createRenderCommand(zap.NewNop())
	renderCommand.SetArgs([]string{
		"--format", "html",
		"--assets-base", "https://mfr.osf.io/assets",
		"--output", outputPath,
		archivePath,
	})
	if executionError := renderCommand.Execute(); executionError != nil {
		t.Fatalf("executing render command: %v", executionError)
	}

	renderedBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading rendered output: %v", readError)
	}
	rendered := string(renderedBytes)
	if !strings.Contains(rendered, "https://mfr.osf.io/assets/css/zip-viewer.css") {
		t.Fatalf("expected asset base in markup:\n%s", rendered)
	}
	if !strings.Contains(rendered, "guide.txt") {
		t.Fatalf("expected file label in markup:\n%s", rendered)
	}
}
