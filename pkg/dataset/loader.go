// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// This file contains the dataset text loader.
//
// File format, line oriented and comma-delimited:
//
//	# comment               (also //), blank lines ignored
//	Fruit, Apple, Pear      class declaration: name, then elements
//	Color, Red, Green
//	Fruit.Apple, Color.Red  relation declaration: exactly two qualified terms
//
// Class declarations come first, relation declarations after; a line is a
// relation line iff its first term is qualified with a dot. Every class
// referenced by a relation line must have been declared, a class never
// relates to itself, and duplicate declarations of any kind are rejected
// with a line-numbered error.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadFile loads a dataset file into ds.
//
// # Description
//
// The dataset is reset BEFORE parsing begins, so a failed load leaves an
// empty dataset, not the previous one. This is the documented contract:
// the caller must re-load after a failure.
//
// # Outputs
//
//   - error: nil on success, *ParseError describing the first bad line.
func LoadFile(ds *Dataset, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(ds, f, path)
}

// Load parses dataset text from r, using source in error messages.
func Load(ds *Dataset, r io.Reader, source string) error {
	ds.Reset()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	inRelations := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		terms := splitTerms(line)
		if len(terms) == 0 {
			continue
		}
		for _, term := range terms {
			if term == "" {
				return parseErrorf(source, lineNo, nil, "empty term")
			}
		}

		if strings.Contains(terms[0], ".") {
			inRelations = true
			if err := loadRelationLine(ds, source, lineNo, terms); err != nil {
				return err
			}
			continue
		}

		if inRelations {
			return parseErrorf(source, lineNo, nil,
				"class declaration %q after relations section", terms[0])
		}
		if err := loadClassLine(ds, source, lineNo, terms); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	return nil
}

// splitTerms splits a comma-delimited line into trimmed terms.
func splitTerms(line string) []string {
	raw := strings.Split(line, ",")
	terms := make([]string, 0, len(raw))
	for _, t := range raw {
		terms = append(terms, strings.TrimSpace(t))
	}
	return terms
}

// loadClassLine handles "ClassName, Elem1, Elem2, ...".
func loadClassLine(ds *Dataset, source string, lineNo int, terms []string) error {
	className := terms[0]
	if _, exists := ds.Symbols.Class(className); exists {
		return parseErrorf(source, lineNo, ErrDuplicateSymbol,
			"class %q declared twice", className)
	}
	if _, err := ds.Symbols.DeclareClass(className); err != nil {
		return parseErrorf(source, lineNo, err, "class %q: %v", className, err)
	}
	for _, elem := range terms[1:] {
		if strings.Contains(elem, ".") {
			return parseErrorf(source, lineNo, nil,
				"qualified term %q in class declaration", elem)
		}
		if _, err := ds.Symbols.Declare(className, elem); err != nil {
			return parseErrorf(source, lineNo, err,
				"element %s.%s declared twice", className, elem)
		}
	}
	return nil
}

// loadRelationLine handles "ClassA.ElemX, ClassB.ElemY".
//
// The forward and inverse pairs are both inserted here; the store only
// guarantees that both relation entries exist once declared.
func loadRelationLine(ds *Dataset, source string, lineNo int, terms []string) error {
	if len(terms) != 2 {
		return parseErrorf(source, lineNo, nil,
			"relation line needs exactly 2 terms, got %d", len(terms))
	}

	classA, nameA, err := splitQualified(terms[0])
	if err != nil {
		return parseErrorf(source, lineNo, nil, "bad term %q: %v", terms[0], err)
	}
	classB, nameB, err := splitQualified(terms[1])
	if err != nil {
		return parseErrorf(source, lineNo, nil, "bad term %q: %v", terms[1], err)
	}

	if classA == classB {
		return parseErrorf(source, lineNo, ErrSelfRelation,
			"class %q related to itself", classA)
	}
	for _, class := range []string{classA, classB} {
		if _, ok := ds.Symbols.Class(class); !ok {
			return parseErrorf(source, lineNo, ErrUnknownClass,
				"class %q not declared", class)
		}
	}

	if err := ds.Relations.Declare(classA, classB); err != nil {
		return parseErrorf(source, lineNo, err, "%v", err)
	}

	// Relation terms reuse existing symbols silently; a term naming an
	// element for the first time interns it into its declared class.
	a, err := ds.Symbols.Intern(classA, nameA)
	if err != nil {
		return parseErrorf(source, lineNo, err, "%v", err)
	}
	b, err := ds.Symbols.Intern(classB, nameB)
	if err != nil {
		return parseErrorf(source, lineNo, err, "%v", err)
	}

	if err := ds.Relations.AddPair(classA, classB, a, b); err != nil {
		return parseErrorf(source, lineNo, err,
			"pair %s, %s declared twice", a.Qualified(), b.Qualified())
	}
	if err := ds.Relations.AddPair(classB, classA, b, a); err != nil {
		return parseErrorf(source, lineNo, err,
			"pair %s, %s declared twice", b.Qualified(), a.Qualified())
	}
	return nil
}

// splitQualified splits "Class.Element" into its two parts.
func splitQualified(term string) (class, name string, err error) {
	parts := strings.SplitN(term, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected Class.Element")
	}
	return parts[0], parts[1], nil
}
