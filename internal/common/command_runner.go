package common

import (
	"context"

	"resumeparse/internal/errors"
	"resumeparse/internal/extract"
	"resumeparse/internal/fetch"
	"resumeparse/internal/types"
)

// DocumentOperationFunc runs a pipeline operation over the extracted
// page texts of a document and reports size statistics alongside the
// result.
type DocumentOperationFunc[Output any] func(pages []string) (Output, types.DocumentStats, error)

// RunDocumentCommand encapsulates the shared flow of document-based CLI
// commands: fetch the document, extract its pages, run the operation,
// and hand the result to the output handler.
func RunDocumentCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	source string,
	fetcher *fetch.Fetcher,
	operation DocumentOperationFunc[Output],
) error {
	if err := ValidateSource(source); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"invalid document source", err)
	}

	outputHandler := NewOutputHandler(logger)

	data, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return err
	}

	pages, err := extract.PageTexts(data)
	if err != nil {
		return err
	}

	result, stats, err := operation(pages)
	if err != nil {
		return err
	}

	logger.Info("Document processed",
		"source", source,
		"pages", stats.Pages,
		"words", stats.Words)

	return outputHandler.HandleOutput(result, cmdConfig)
}
