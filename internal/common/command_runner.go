package common

import (
	"context"
	"fmt"

	"jobmatch/internal/errors"
)

// CreateInputFunc defines how to create the specific pipeline input from file contents.
type CreateInputFunc[Input any] func(contents []string) (Input, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// PipelineOperationFunc is a generic function signature for any matching pipeline operation.
type PipelineOperationFunc[Input, Output any] func(context.Context, Input) (Output, error)

// RunPipelineCommand encapsulates the common logic for file-based CLI commands.
// Input files are read through the resume extractor, so PDF and DOCX
// arguments work the same as plain text.
func RunPipelineCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	args []string,
	createInput CreateInputFunc[Input],
	operation PipelineOperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	// Pass the logger when creating helpers
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	contents := make([]string, len(args))
	for i, filename := range args {
		content, err := fileProcessor.ReadResume(filename)
		if err != nil {
			return err
		}
		contents[i] = content
	}

	input, err := createInput(contents)
	if err != nil {
		return fmt.Errorf("failed to create input from file contents: %w", err)
	}

	logDetails(input, cmdConfig)

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
