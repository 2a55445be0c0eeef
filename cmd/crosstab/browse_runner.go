// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// This file contains the BrowseRunner, the two-state REPL at the center
// of the program.
//
// State machine:
//
//	Main --(relation / scoring command)--> TableView
//	TableView --(break, SIGINT)--> Main
//
// Concurrency model: the engine and renderer are synchronous pure
// computations; the only concurrency is the interrupt boundary. Input
// lines arrive over a channel from a reader goroutine and the loop
// selects on {line, SIGINT, ctx.Done}. SIGINT inside TableView drops
// back to Main; in Main it ends the session. A command always runs to
// completion before the next line is taken, so no table is ever half
// rendered.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/AleutianAI/crosstab/pkg/dataset"
	"github.com/AleutianAI/crosstab/pkg/logging"
	"github.com/AleutianAI/crosstab/pkg/table"
	"github.com/AleutianAI/crosstab/pkg/ux"
)

type browseState int

const (
	stateMain browseState = iota
	stateTableView
)

func (s browseState) promptName() string {
	if s == stateTableView {
		return "table"
	}
	return ""
}

// BrowseRunnerConfig groups the collaborators of a BrowseRunner.
type BrowseRunnerConfig struct {
	// Reader supplies input lines; tests use MockInputReader.
	Reader InputReader

	// Console is the only write path to the user.
	Console *ux.Console

	// Sink receives saved table renderings.
	Sink *ExportSink

	// Logger records loads, queries and saves. Optional; defaults to a
	// stderr logger.
	Logger *logging.Logger

	// Glyphs is the table border character set.
	Glyphs table.Glyphs

	// ClearScreen enables erasing the previously drawn table before a
	// redraw. Only sensible on a real TTY; never set it for machine
	// personality.
	ClearScreen bool
}

// BrowseRunner drives the interactive browse session.
//
// # Thread Safety
//
// Not thread-safe. One runner per session; Run must not be called
// concurrently. The runner owns its Dataset and Session outright, so
// multiple runners in one process (as in tests) are fully independent.
type BrowseRunner struct {
	ds      *dataset.Dataset
	reader  InputReader
	console *ux.Console
	sink    *ExportSink
	logger  *logging.Logger
	glyphs  table.Glyphs
	clear   bool

	state      browseState
	session    *Session
	lastHeight int
}

// NewBrowseRunner creates a runner with an empty dataset.
func NewBrowseRunner(cfg BrowseRunnerConfig) *BrowseRunner {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &BrowseRunner{
		ds:      dataset.New(),
		reader:  cfg.Reader,
		console: cfg.Console,
		sink:    cfg.Sink,
		logger:  logger,
		glyphs:  cfg.Glyphs,
		clear:   cfg.ClearScreen,
	}
}

// Dataset exposes the runner's dataset, mainly for startup preloading.
func (r *BrowseRunner) Dataset() *dataset.Dataset { return r.ds }

// readResult carries one line (or terminal error) from the reader
// goroutine to the select loop.
type readResult struct {
	line string
	err  error
}

// Run executes the REPL until exit, EOF, SIGINT in Main, or a fatal
// error. Recoverable command errors are reported inline and never
// returned.
func (r *BrowseRunner) Run(ctx context.Context) error {
	// The derived cancel releases the reader goroutine when Run returns
	// for any reason.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan readResult)
	go func() {
		for {
			line, err := r.reader.ReadLine()
			select {
			case lines <- readResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			// An interrupt cancels one read, not the reader.
			if err != nil && !errors.Is(err, errInterrupted) {
				return
			}
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	for {
		r.prompt()
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-sig:
			if r.interrupt() {
				return nil
			}

		case res := <-lines:
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					return nil
				}
				// The interactive reader reports Ctrl+C this way;
				// SIGINT never reaches us while it holds the
				// terminal raw.
				if errors.Is(res.err, errInterrupted) {
					if r.interrupt() {
						return nil
					}
					continue
				}
				return fmt.Errorf("read input: %w", res.err)
			}
			done, err := r.dispatch(res.line)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// interrupt applies the cancellation contract: inside TableView the
// selection is dropped and the loop continues at the main prompt; at
// the main prompt the session ends. Reports whether to end the session.
func (r *BrowseRunner) interrupt() bool {
	r.console.Print("")
	if r.state == stateTableView {
		r.leaveTableView()
		r.console.Muted("Interrupted; back to the main prompt.")
		return false
	}
	r.console.Muted("Interrupted.")
	return true
}

// prompt displays (or installs) the state-specific prompt.
func (r *BrowseRunner) prompt() {
	text := r.console.Prompt(r.state.promptName())
	if p, ok := r.reader.(PromptingInputReader); ok {
		p.SetPrompt(text)
		return
	}
	r.console.Raw(text)
}

// dispatch parses and executes one input line. The returned error is
// fatal; recoverable problems are reported through the console.
func (r *BrowseRunner) dispatch(line string) (done bool, err error) {
	var cmd Command
	if r.state == stateTableView {
		cmd = ParseTable(line)
	} else {
		cmd = ParseMain(line)
	}
	if cmd == nil {
		return false, nil
	}

	switch c := cmd.(type) {
	case ExitCommand:
		return true, nil
	case HelpCommand:
		r.printHelp()
	case UnknownCommand:
		r.console.Error(fmt.Sprintf("unrecognized command: %s", c.Input))

	case LoadCommand:
		r.runLoad(c.Path)
	case ClassesCommand:
		r.listClasses()
	case RelationsCommand:
		r.listRelations()
	case ShowClassCommand:
		r.showClass(c.Class)
	case RelateCommand, ScoreCommand:
		return false, r.enterTableView(cmd, line)

	case BreakCommand:
		r.leaveTableView()
		r.console.Muted("Selection discarded.")
	case DisplayCommand:
		return false, r.display()
	case SaveCommand:
		return false, r.runSave()
	case PageCommand:
		return false, r.turnPage(c)
	}
	return false, nil
}

// =============================================================================
// Main-state commands
// =============================================================================

func (r *BrowseRunner) runLoad(path string) {
	if err := dataset.LoadFile(r.ds, path); err != nil {
		// The dataset is cleared before parsing starts, so a failed
		// load leaves it empty.
		r.console.Error(err.Error())
		r.console.Warning("load failed; the dataset is now empty")
		r.logger.Warn("dataset load failed", "path", path, "error", err)
		return
	}
	classes := len(r.ds.Symbols.ClassNames())
	relations := len(r.ds.Relations.UnorderedPairs())
	r.console.Success(fmt.Sprintf("loaded %s: %d classes, %d relations", path, classes, relations))
	r.logger.Info("dataset loaded", "path", path, "classes", classes, "relations", relations)
}

func (r *BrowseRunner) listClasses() {
	classes := r.ds.Symbols.Classes()
	if len(classes) == 0 {
		r.console.Muted("No classes declared; use 'load <path>' first.")
		return
	}
	for _, c := range classes {
		r.console.Print(fmt.Sprintf("%s (%d elements)", c.Name(), c.Len()))
	}
}

func (r *BrowseRunner) listRelations() {
	rels := r.ds.Relations.UnorderedPairs()
	if len(rels) == 0 {
		r.console.Muted("No relations declared.")
		return
	}
	for _, rel := range rels {
		r.console.Print(fmt.Sprintf("%s <-> %s (%d pairs)", rel.KeyClass(), rel.ValClass(), rel.Len()))
	}
}

func (r *BrowseRunner) showClass(name string) {
	class, ok := r.ds.Symbols.Class(name)
	if !ok {
		r.console.Error(fmt.Sprintf("unknown class: %s", name))
		return
	}
	r.console.Info(fmt.Sprintf("%s (%d elements)", class.Name(), class.Len()))
	for _, m := range class.Members() {
		r.console.Print("  " + m.Name)
	}
}

// enterTableView builds the session and shows page 1. An empty view is
// reported and the runner stays in Main; there is nothing to page
// through.
func (r *BrowseRunner) enterTableView(cmd Command, input string) error {
	sess, err := newSession(r.ds, cmd, input)
	if err != nil {
		r.console.Error(err.Error())
		return nil
	}

	r.session = sess
	r.state = stateTableView
	r.lastHeight = 0
	r.logger.Info("selection opened",
		"key", sess.KeyClass, "val", sess.ValClass, "ref", sess.Ref,
		"dissimilarity", sess.Dissimilarity)

	// display() drops the selection again if the view turns out empty.
	return r.display()
}

// =============================================================================
// Table-view commands
// =============================================================================

func (r *BrowseRunner) leaveTableView() {
	r.session = nil
	r.state = stateMain
	r.lastHeight = 0
}

// display renders the current page. ConsistencyError is fatal and
// propagates; an empty view discards the selection with a warning.
func (r *BrowseRunner) display() error {
	s := r.session
	opts := table.Options{
		Header: s.KeyClass,
		Glyphs: r.glyphs,
		Mode:   table.ModePage,
		Page:   s.Page,
	}

	layout, err := table.Compute(s.View, opts)
	if err != nil {
		return r.handleRenderError(err)
	}
	s.Page = layout.Page // keep the stored page clamped

	lines, err := table.Render(s.View, opts)
	if err != nil {
		return r.handleRenderError(err)
	}

	if r.clear && r.lastHeight > 0 {
		// Erase the previous drawing plus its prompt line.
		r.console.Raw(fmt.Sprintf("\x1b[%dA\x1b[0J", r.lastHeight+1))
	}
	r.console.Lines(lines)
	r.lastHeight = layout.Height
	return nil
}

func (r *BrowseRunner) handleRenderError(err error) error {
	if errors.Is(err, table.ErrEmptyView) {
		r.console.Warning("nothing to display: one of the classes has no elements")
		r.leaveTableView()
		return nil
	}
	var cerr *table.ConsistencyError
	if errors.As(err, &cerr) {
		// Internal invariant broke; do not keep looping over bad state.
		r.logger.Error("view consistency violation", "error", cerr)
		return cerr
	}
	return err
}

func (r *BrowseRunner) turnPage(cmd PageCommand) error {
	s := r.session
	total := s.View.Columns
	page := s.Page
	switch cmd.Move {
	case PageNext:
		page++
	case PagePrev:
		page--
	case PageFirst:
		page = 1
	case PageLast:
		page = total
	case PageAbsolute:
		page = cmd.N
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	s.Page = page
	return r.display()
}

// runSave appends the full table, every column regardless of the page
// currently showing, to the export sink.
func (r *BrowseRunner) runSave() error {
	s := r.session
	lines, err := table.Render(s.View, table.Options{
		Header: s.KeyClass,
		Glyphs: r.glyphs,
		Mode:   table.ModeFull,
	})
	if err != nil {
		return r.handleRenderError(err)
	}
	if err := r.sink.Append(s.CommandText, lines); err != nil {
		r.console.Error(fmt.Sprintf("save failed: %v", err))
		r.logger.Error("export append failed", "path", r.sink.Path(), "error", err)
		return nil
	}
	r.console.Success(fmt.Sprintf("saved to %s", r.sink.Path()))
	r.logger.Info("export appended", "path", r.sink.Path(), "command", s.CommandText)
	return nil
}

// =============================================================================
// Help
// =============================================================================

const mainHelpText = `Commands:
  load <path>                    load a dataset file (replaces the current one)
  classes                        list declared classes
  relations                      list declared relations
  <Class>                        list the elements of a class
  <Key> v <Val>                  cross-tabulate two classes
  <Key> v <Val> . <Element>      rank by similarity to Element
  <Key> v <Val> ! <Element>      rank by dissimilarity to Element
  <Key> v <Val> = <Element>      similarity, cells show agreement
  <Key> v <Val> # <Element>      dissimilarity, cells show disagreement
  help                           this summary
  exit                           end the session
('x' works anywhere 'v' does.)`

const tableHelpText = `Table view:
  display | show                 redraw the current page
  pnext / pprev                  next / previous column page
  pfirst / plast / p<N>          jump to a page (clamped)
  save                           append the full table to the export file
  break                          discard the selection, back to the main prompt
  help                           this summary
  exit                           end the session`

func (r *BrowseRunner) printHelp() {
	if r.state == stateTableView {
		r.console.Print(tableHelpText)
		return
	}
	r.console.Print(mainHelpText)
}
