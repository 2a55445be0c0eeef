// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AleutianAI/crosstab/cmd/crosstab/config"
	"github.com/AleutianAI/crosstab/pkg/dataset"
	"github.com/AleutianAI/crosstab/pkg/logging"
	"github.com/AleutianAI/crosstab/pkg/table"
	"github.com/AleutianAI/crosstab/pkg/ux"
	"github.com/spf13/cobra"
)

// runBrowse wires the config, logger, sink and input reader into a
// BrowseRunner and runs it to completion.
func runBrowse(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := config.Global

	// Config-level personality only applies when neither the flag nor
	// the environment decided already.
	if personalityLevel == "" && os.Getenv("CROSSTAB_PERSONALITY") == "" &&
		cfg.Display.Personality != "" {
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(cfg.Display.Personality))
	}

	logger, err := logging.New(logging.Config{
		Level:   logging.ParseLevel(firstNonEmpty(logLevelFlag, cfg.Logging.Level)),
		LogDir:  cfg.Logging.Dir,
		Service: "browse",
		JSON:    cfg.Logging.JSON,
		Quiet:   true, // log to file only; stderr stays clean for the REPL
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Close()

	sink, err := NewExportSink(firstNonEmpty(exportPath, cfg.Export.Path))
	if err != nil {
		return fmt.Errorf("resolve export path: %w", err)
	}

	console := ux.NewConsole()
	machine := console.Level() == ux.PersonalityMachine

	runner := NewBrowseRunner(BrowseRunnerConfig{
		Reader:      newSessionReader(machine),
		Console:     console,
		Sink:        sink,
		Logger:      logger,
		Glyphs:      table.GlyphsByName(firstNonEmpty(glyphName, cfg.Display.Glyphs)),
		ClearScreen: ux.IsTerminal() && !machine,
	})

	// Dataset from the command line wins over the configured default.
	datasetPath := cfg.Dataset.Path
	if len(args) > 0 {
		datasetPath = args[0]
	}
	console.Header(datasetPath)
	if datasetPath != "" {
		if err := dataset.LoadFile(runner.Dataset(), datasetPath); err != nil {
			// Startup load failure is not fatal; the user can `load`
			// another file at the prompt.
			console.Error(err.Error())
			logger.Warn("startup dataset load failed", "path", datasetPath, "error", err)
		} else {
			logger.Info("startup dataset loaded", "path", datasetPath)
		}
	}

	if err := runner.Run(context.Background()); err != nil {
		logger.Error("browse session failed", "error", err)
		return err
	}
	return nil
}

// newSessionReader picks the input reader: interactive with history on
// a TTY, plain buffered stdin otherwise. Machine personality always
// gets the plain reader so output stays parseable.
func newSessionReader(machine bool) InputReader {
	if machine {
		return NewStdinReader()
	}
	return NewInteractiveInputReader(50)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
