package cli

import (
	"fmt"

	"resumeparse/internal/common"
	"resumeparse/internal/fetch"
	"resumeparse/internal/parser"
	"resumeparse/internal/types"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [resume-file-or-url]",
	Short: "Check a PDF resume for readability and ATS compliance",
	Long: `Check whether a PDF resume is machine-readable and ATS compliant.
The command takes one argument: the path or URL of the resume PDF.
A resume is readable when its extracted text carries enough words;
the compliance report covers contact fields and standard resume sections.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if checkConfig.OutputFormat == "" {
			checkConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(checkConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runCheck,
}

var checkConfig common.CommandConfig

func init() {
	checkCmd.Flags().StringVarP(&checkConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	checkCmd.Flags().StringVar(&checkConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = checkCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	logger.Info("Starting document check",
		"source", args[0],
		"min_words", cfg.Pipeline.MinWords,
		"output_format", checkConfig.OutputFormat)

	pipeline := parser.New(parser.Options{
		MinWords:      cfg.Pipeline.MinWords,
		NameScanLines: cfg.Pipeline.NameScanLines,
	})
	fetcher := fetch.New(&cfg.Fetch, logger)

	checkOperation := func(pages []string) (types.DocumentCheck, types.DocumentStats, error) {
		return pipeline.CheckPages(pages), parser.Stats(pages), nil
	}

	err := common.RunDocumentCommand(
		cmd.Context(),
		logger,
		checkConfig,
		args[0],
		fetcher,
		checkOperation,
	)

	if err != nil {
		return fmt.Errorf("failed to check resume: %w", err)
	}
	logger.Info("Document check completed successfully")
	return nil
}
