// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/AleutianAI/crosstab/pkg/ux"
	"github.com/spf13/cobra"
)

// Version is stamped by the build; the default marks dev builds.
var Version = "0.1.0-dev"

// --- Global Command Variables ---
var (
	personalityLevel string // UX personality level (full/standard/minimal/machine)
	glyphName        string // table border set override (ascii/box)
	exportPath       string // export file override
	logLevelFlag     string // log level override

	rootCmd = &cobra.Command{
		Use:   "crosstab",
		Short: "An interactive browser for small relational datasets",
		Long: `Crosstab loads a text dataset of classed elements and pairwise
				relations, then lets you cross-tabulate and score classes
				against each other at an interactive prompt.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize UX personality from flag or environment
			if personalityLevel != "" {
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
			} else {
				ux.InitPersonality()
			}
		},
		// Bare `crosstab` starts a browse session.
		RunE:          runBrowse,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the final error once
	}

	browseCmd = &cobra.Command{
		Use:   "browse [dataset file]",
		Short: "Start an interactive browse session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBrowse, // Defined in cmd_browse.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the crosstab version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("crosstab", Version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "ux", "",
		"output personality: full, standard, minimal, or machine")
	rootCmd.PersistentFlags().StringVar(&glyphName, "glyphs", "",
		"table border set: ascii or box (overrides config)")
	rootCmd.PersistentFlags().StringVar(&exportPath, "export", "",
		"export file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"log level: debug, info, warn, or error (overrides config)")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)
}
