// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cslzchen/modular-file-renderer/internal/archive"
	"github.com/cslzchen/modular-file-renderer/internal/assets"
	"github.com/cslzchen/modular-file-renderer/internal/config"
	"github.com/cslzchen/modular-file-renderer/internal/render"
	"github.com/cslzchen/modular-file-renderer/internal/services/clipboard"
	"github.com/cslzchen/modular-file-renderer/internal/tree"
	"github.com/cslzchen/modular-file-renderer/internal/types"
	"github.com/cslzchen/modular-file-renderer/internal/utils"
)

const (
	formatFlagName     = "format"
	assetsBaseFlagName = "assets-base"
	templateFlagName   = "template"
	iconDirFlagName    = "icon-dir"
	outputFlagName     = "output"
	copyFlagName       = "copy"
	keepJunkFlagName   = "keep-junk"
	configFlagName     = "config"
	versionFlagName    = "version"

	versionTemplate      = "zipview version: %s\n"
	rootUse              = "zipview"
	rootShortDescription = "zipview command line interface"
	rootLongDescription  = `zipview renders the file listing of zip archives as a browsable tree.
Use --format to select html, json, xml, or raw output.`
	versionFlagDescription = "display application version"

	renderUse              = "render <archives...>"
	renderAlias            = "r"
	renderShortDescription = "render archive listings (" + renderAlias + ")"
	renderLongDescription  = `Build and render the file tree of one or more zip archives.
macOS junk entries (__MACOSX folders and .DS_Store files) are removed unless --keep-junk is set.
Use --format to select html, json, xml, or raw output.`
	renderUsageExample = `  # Render an archive as viewer markup
  zipview render bundle.zip

  # Render the tree as JSON with a custom asset base
  zipview render --format json --assets-base https://mfr.osf.io/assets bundle.zip`

	formatFlagDescription     = "output format"
	assetsBaseFlagDescription = "URL base the browser loads icons and styles from"
	templateFlagDescription   = "viewer template file replacing the built-in markup"
	iconDirFlagDescription    = "static asset directory probed for per-extension icons"
	outputFlagDescription     = "write rendered output to a file instead of stdout"
	copyFlagDescription       = "copy rendered output to the system clipboard"
	keepJunkFlagDescription   = "keep macOS junk entries in the tree"
	configFlagDescription     = "configuration file path"

	defaultFormat        = types.FormatHTML
	defaultAssetsBase    = "/assets"
	defaultIconDirectory = "static"

	invalidFormatMessage     = "Invalid format value '%s'"
	renderedOutputSeparator  = "\n"
	outputFilePermissions    = 0o600
	errorWriteOutputFormat   = "writing rendered output to %s: %w"
	errorClipboardFormat     = "copying rendered output to clipboard: %w"
	errorRenderArchiveFormat = "rendering %s: %w"

	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorArchiveMissingFormat reports a missing archive path.
	errorArchiveMissingFormat = "archive '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorArchiveIsDirectoryFormat reports a directory where an archive was expected.
	errorArchiveIsDirectoryFormat = "archive '%s' is a directory"
	// errorNoValidArchives indicates that all archive paths are invalid.
	errorNoValidArchives = "no valid archives"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatHTML, types.FormatJSON, types.FormatXML, types.FormatRaw:
		return true
	default:
		return false
	}
}

// Execute runs the zipview application.
func Execute(applicationLogger *zap.Logger) error {
	rootCommand := createRootCommand(applicationLogger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(applicationLogger *zap.Logger) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(createRenderCommand(applicationLogger))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// renderOptions stores the resolved configuration of one render invocation.
type renderOptions struct {
	format          string
	assetsBase      string
	templatePath    string
	iconDirectory   string
	outputPath      string
	configPath      string
	copyToClipboard bool
	keepJunk        bool
}

// createRenderCommand returns the render subcommand.
func createRenderCommand(applicationLogger *zap.Logger) *cobra.Command {
	var options renderOptions

	renderCommand := &cobra.Command{
		Use:     renderUse,
		Aliases: []string{renderAlias},
		Short:   renderShortDescription,
		Long:    renderLongDescription,
		Example: renderUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applyConfigurationError := applyConfigurationDefaults(command, &options)
			if applyConfigurationError != nil {
				return applyConfigurationError
			}
			options.format = strings.ToLower(options.format)
			if !isSupportedFormat(options.format) {
				return fmt.Errorf(invalidFormatMessage, options.format)
			}
			return runRender(applicationLogger, options, arguments)
		},
	}

	renderCommand.Flags().StringVar(&options.format, formatFlagName, defaultFormat, formatFlagDescription)
	renderCommand.Flags().StringVar(&options.assetsBase, assetsBaseFlagName, defaultAssetsBase, assetsBaseFlagDescription)
	renderCommand.Flags().StringVar(&options.templatePath, templateFlagName, "", templateFlagDescription)
	renderCommand.Flags().StringVar(&options.iconDirectory, iconDirFlagName, defaultIconDirectory, iconDirFlagDescription)
	renderCommand.Flags().StringVar(&options.outputPath, outputFlagName, "", outputFlagDescription)
	renderCommand.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	renderCommand.Flags().BoolVar(&options.keepJunk, keepJunkFlagName, false, keepJunkFlagDescription)
	renderCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	return renderCommand
}

// applyConfigurationDefaults overlays configuration file values onto flags the
// user did not set explicitly. Flags always win over configuration files.
func applyConfigurationDefaults(command *cobra.Command, options *renderOptions) error {
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return loadError
	}
	renderConfiguration := configuration.Render

	flagSet := command.Flags()
	if !flagSet.Changed(formatFlagName) && renderConfiguration.Format != "" {
		options.format = renderConfiguration.Format
	}
	if !flagSet.Changed(assetsBaseFlagName) && renderConfiguration.AssetsBase != "" {
		options.assetsBase = renderConfiguration.AssetsBase
	}
	if !flagSet.Changed(templateFlagName) && renderConfiguration.TemplatePath != "" {
		options.templatePath = renderConfiguration.TemplatePath
	}
	if !flagSet.Changed(iconDirFlagName) && renderConfiguration.IconDirectory != "" {
		options.iconDirectory = renderConfiguration.IconDirectory
	}
	if !flagSet.Changed(outputFlagName) && renderConfiguration.OutputPath != "" {
		options.outputPath = renderConfiguration.OutputPath
	}
	if !flagSet.Changed(copyFlagName) && renderConfiguration.Clipboard != nil {
		options.copyToClipboard = *renderConfiguration.Clipboard
	}
	if !flagSet.Changed(keepJunkFlagName) && renderConfiguration.KeepJunk != nil {
		options.keepJunk = *renderConfiguration.KeepJunk
	}
	return nil
}

// runRender renders every archive and emits the combined output. Archives are
// rendered concurrently; each render builds its own tree, so the invocations
// share nothing but the icon set and logger. Output keeps argument order.
func runRender(applicationLogger *zap.Logger, options renderOptions, archivePaths []string) error {
	validatedArchives, validationError := resolveAndValidateArchives(archivePaths)
	if validationError != nil {
		return validationError
	}

	iconSet := assets.NewIconSet(options.iconDirectory, options.assetsBase)
	treeBuilder := tree.NewBuilder(iconSet, applicationLogger)

	var htmlRenderer *render.HTMLRenderer
	if options.format == types.FormatHTML {
		createdRenderer, rendererError := render.NewHTMLRenderer(render.HTMLOptions{
			TemplatePath: options.templatePath,
		})
		if rendererError != nil {
			return rendererError
		}
		htmlRenderer = createdRenderer
	}

	renderedOutputs := make([]string, len(validatedArchives))
	var group errgroup.Group
	for archiveIndex, validatedArchive := range validatedArchives {
		archiveIndex, validatedArchive := archiveIndex, validatedArchive
		group.Go(func() error {
			renderedOutput, renderError := renderArchive(treeBuilder, htmlRenderer, options, validatedArchive.AbsolutePath)
			if renderError != nil {
				return fmt.Errorf(errorRenderArchiveFormat, validatedArchive.AbsolutePath, renderError)
			}
			renderedOutputs[archiveIndex] = renderedOutput
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return waitError
	}

	combinedOutput := strings.Join(renderedOutputs, renderedOutputSeparator)
	return emitRenderedOutput(combinedOutput, options)
}

// renderArchive reads one archive, folds its sanitized listing into a tree,
// and renders it in the requested format.
func renderArchive(treeBuilder *tree.Builder, htmlRenderer *render.HTMLRenderer, options renderOptions, archivePath string) (string, error) {
	entries, readError := archive.ReadEntries(archivePath)
	if readError != nil {
		return "", readError
	}
	if !options.keepJunk {
		entries = archive.Sanitize(entries)
	}

	rootNode := treeBuilder.BuildTree(entries, filepath.Base(archivePath))

	switch options.format {
	case types.FormatHTML:
		return htmlRenderer.RenderTreeHTML(rootNode, options.assetsBase)
	case types.FormatJSON:
		return render.RenderTreeJSON(rootNode)
	case types.FormatXML:
		return render.RenderTreeXML(rootNode)
	default:
		return render.RenderTreeRaw(rootNode), nil
	}
}

// emitRenderedOutput writes the combined output to the configured destination
// and optionally places it on the system clipboard.
func emitRenderedOutput(combinedOutput string, options renderOptions) error {
	if options.outputPath != "" {
		writeError := os.WriteFile(options.outputPath, []byte(combinedOutput), outputFilePermissions)
		if writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, options.outputPath, writeError)
		}
	} else {
		fmt.Println(combinedOutput)
	}

	if options.copyToClipboard {
		copier := clipboard.NewService()
		if copyError := copier.Copy(combinedOutput); copyError != nil {
			return fmt.Errorf(errorClipboardFormat, copyError)
		}
	}
	return nil
}

// resolveAndValidateArchives converts archive paths to absolute paths, checks
// existence, rejects directories, and removes duplicates.
func resolveAndValidateArchives(archivePaths []string) ([]types.ValidatedArchive, error) {
	uniquePaths := make(map[string]struct{})
	var validatedArchives []types.ValidatedArchive
	for _, archivePath := range archivePaths {
		absolutePath, absoluteError := filepath.Abs(archivePath)
		if absoluteError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, archivePath, absoluteError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, exists := uniquePaths[cleanPath]; exists {
			continue
		}
		fileInformation, statError := os.Stat(cleanPath)
		if statError != nil {
			if os.IsNotExist(statError) {
				return nil, fmt.Errorf(errorArchiveMissingFormat, archivePath)
			}
			return nil, fmt.Errorf(errorStatFormat, archivePath, statError)
		}
		if fileInformation.IsDir() {
			return nil, fmt.Errorf(errorArchiveIsDirectoryFormat, archivePath)
		}
		uniquePaths[cleanPath] = struct{}{}
		validatedArchives = append(validatedArchives, types.ValidatedArchive{AbsolutePath: cleanPath})
	}
	if len(validatedArchives) == 0 {
		return nil, fmt.Errorf(errorNoValidArchives)
	}
	return validatedArchives, nil
}
