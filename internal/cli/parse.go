package cli

import (
	"fmt"

	"resumeparse/internal/common"
	"resumeparse/internal/fetch"
	"resumeparse/internal/parser"
	"resumeparse/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file-or-url]",
	Short: "Extract structured data from a PDF resume",
	Long: `Extract structured candidate data from a PDF resume.
The command takes one argument: the path or URL of the resume PDF.
It extracts contact fields, experience, education, skills and other
sections, and reports ATS compliance for the document.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var parseConfig common.CommandConfig

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	logger.Info("Starting resume parsing",
		"source", args[0],
		"output_format", parseConfig.OutputFormat)

	pipeline := parser.New(parser.Options{
		MinWords:      cfg.Pipeline.MinWords,
		NameScanLines: cfg.Pipeline.NameScanLines,
	})
	fetcher := fetch.New(&cfg.Fetch, logger)

	parseOperation := func(pages []string) (types.ResumeRecord, types.DocumentStats, error) {
		record, err := pipeline.ExtractPages(pages)
		return record, parser.Stats(pages), err
	}

	err := common.RunDocumentCommand(
		cmd.Context(),
		logger,
		parseConfig,
		args[0],
		fetcher,
		parseOperation,
	)

	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume parsing completed successfully")
	return nil
}
