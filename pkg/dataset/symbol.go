// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package dataset holds the in-memory model of a loaded relation dataset:
// the symbol table (typed elements grouped into classes) and the relation
// store (directed pair sets between classes), plus the text loader that
// populates both.
//
// Single Responsibility:
//
//	This package only stores and parses. Cross-tabulation and scoring live
//	in pkg/query; rendering lives in pkg/table. Nothing here writes to the
//	terminal.
//
// Lifecycle:
//
//	A Dataset is created once per session and reset wholesale before each
//	file load. Symbols are immutable after creation and live until the
//	next reset.
package dataset

import (
	"fmt"
	"sort"
)

// =============================================================================
// Symbol
// =============================================================================

// Symbol is the canonical identity for one named element of one class.
//
// # Description
//
// At most one Symbol exists per (class, name) pair; the symbol table
// guarantees this. Equality is by (class, name), never by Marker.
//
// # Fields
//
//   - Class: owning class name.
//   - Name: element name, unique within the class.
//   - Marker: per-class sequence marker. The first element of a class gets
//     1 and each subsequent element gets the previous marker doubled,
//     producing a bit-position-like sequence. It is diagnostic only and
//     silently wraps to zero once a class exceeds 64 elements (known
//     limitation; nothing consults it for identity or ordering).
type Symbol struct {
	Class  string
	Name   string
	Marker uint64
}

// Qualified returns the "Class.Name" form used in dataset files.
func (s *Symbol) Qualified() string {
	return s.Class + "." + s.Name
}

// Equal reports identity by (class, name).
func (s *Symbol) Equal(o *Symbol) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Class == o.Class && s.Name == o.Name
}

func (s *Symbol) String() string {
	return s.Qualified()
}

// =============================================================================
// Class
// =============================================================================

// Class is a named, insertion-ordered collection of symbols.
type Class struct {
	name       string
	members    []*Symbol
	index      map[string]*Symbol
	nextMarker uint64
}

func newClass(name string) *Class {
	return &Class{
		name:       name,
		index:      make(map[string]*Symbol),
		nextMarker: 1,
	}
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Len returns the number of elements in the class.
func (c *Class) Len() int { return len(c.members) }

// Members returns the class elements in insertion order.
// The returned slice is shared; callers must not modify it.
func (c *Class) Members() []*Symbol { return c.members }

// Lookup finds an element by name.
func (c *Class) Lookup(name string) (*Symbol, bool) {
	s, ok := c.index[name]
	return s, ok
}

// add creates the symbol and assigns the next sequence marker.
// Marker doubling wraps silently past 64 elements.
func (c *Class) add(name string) *Symbol {
	s := &Symbol{Class: c.name, Name: name, Marker: c.nextMarker}
	c.nextMarker <<= 1
	c.members = append(c.members, s)
	c.index[name] = s
	return s
}

// =============================================================================
// Symbol Table
// =============================================================================

// Table interns (class, name) pairs into canonical Symbol identities.
//
// # Description
//
// Table owns every Class and Symbol of the loaded dataset. Two entry
// points exist on purpose:
//
//   - Declare is the loader-facing fresh declaration. Re-declaring an
//     existing element is an ErrDuplicateSymbol.
//   - Intern is the lookup-or-create path used while parsing relation
//     terms; it silently reuses an existing symbol.
//
// # Thread Safety
//
// Not safe for concurrent use. The REPL is single-threaded and processes
// one command to completion at a time, so no locking is carried here.
type Table struct {
	classes map[string]*Class
	order   []string
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{classes: make(map[string]*Class)}
}

// Reset clears all interned state. Called before each file load.
func (t *Table) Reset() {
	t.classes = make(map[string]*Class)
	t.order = nil
}

// DeclareClass creates an empty class, failing with ErrDuplicateSymbol if
// the class name is already taken.
func (t *Table) DeclareClass(name string) (*Class, error) {
	if _, ok := t.classes[name]; ok {
		return nil, fmt.Errorf("class %q: %w", name, ErrDuplicateSymbol)
	}
	c := newClass(name)
	t.classes[name] = c
	t.order = append(t.order, name)
	return c, nil
}

// Declare registers a fresh class element.
//
// The class is created if absent. Declaring the same (class, name) pair
// twice is an ErrDuplicateSymbol, distinct from Intern, which reuses
// silently.
func (t *Table) Declare(class, name string) (*Symbol, error) {
	c, ok := t.classes[class]
	if !ok {
		c = newClass(class)
		t.classes[class] = c
		t.order = append(t.order, class)
	}
	if _, exists := c.Lookup(name); exists {
		return nil, fmt.Errorf("%s.%s: %w", class, name, ErrDuplicateSymbol)
	}
	return c.add(name), nil
}

// Intern returns the canonical symbol for (class, name), creating it on
// first encounter. The class must already exist.
func (t *Table) Intern(class, name string) (*Symbol, error) {
	c, ok := t.classes[class]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", class, ErrUnknownClass)
	}
	if s, exists := c.Lookup(name); exists {
		return s, nil
	}
	return c.add(name), nil
}

// Lookup finds an existing element without creating anything.
func (t *Table) Lookup(class, name string) (*Symbol, error) {
	c, ok := t.classes[class]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", class, ErrUnknownClass)
	}
	s, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", class, name, ErrUnknownSymbol)
	}
	return s, nil
}

// Class returns a class by name.
func (t *Table) Class(name string) (*Class, bool) {
	c, ok := t.classes[name]
	return c, ok
}

// Classes returns all classes in declaration order.
func (t *Table) Classes() []*Class {
	out := make([]*Class, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.classes[name])
	}
	return out
}

// ClassNames returns the declared class names in declaration order.
func (t *Table) ClassNames() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// =============================================================================
// Dataset
// =============================================================================

// Dataset bundles the symbol table and relation store that one loaded
// file populates. The REPL owns exactly one Dataset per session and passes
// it explicitly; there are no package-level globals.
type Dataset struct {
	Symbols   *Table
	Relations *Store
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{
		Symbols:   NewTable(),
		Relations: NewStore(),
	}
}

// Reset clears both stores. A reload replaces everything wholesale.
func (d *Dataset) Reset() {
	d.Symbols.Reset()
	d.Relations.Reset()
}

// SortedClassNames returns class names sorted lexically, for stable help
// and diagnostic listings that should not depend on declaration order.
func (d *Dataset) SortedClassNames() []string {
	names := d.Symbols.ClassNames()
	sort.Strings(names)
	return names
}
