// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import "fmt"

// =============================================================================
// Relation
// =============================================================================

// Pair is one directed relation entry: Key belongs to the relation's key
// class, Val to its value class.
type Pair struct {
	Key *Symbol
	Val *Symbol
}

// Relation holds the ordered pair set for one direction (keyClass →
// valClass).
type Relation struct {
	keyClass string
	valClass string
	pairs    []Pair
	seen     map[[2]string]struct{}
}

func newRelation(keyClass, valClass string) *Relation {
	return &Relation{
		keyClass: keyClass,
		valClass: valClass,
		seen:     make(map[[2]string]struct{}),
	}
}

// KeyClass returns the key class name of this direction.
func (r *Relation) KeyClass() string { return r.keyClass }

// ValClass returns the value class name of this direction.
func (r *Relation) ValClass() string { return r.valClass }

// Len returns the number of pairs in this direction.
func (r *Relation) Len() int { return len(r.pairs) }

// Pairs returns the pairs in insertion order.
// The returned slice is shared; callers must not modify it.
func (r *Relation) Pairs() []Pair { return r.pairs }

// Contains reports whether (key, val) is in this direction, by name.
func (r *Relation) Contains(keyName, valName string) bool {
	_, ok := r.seen[[2]string{keyName, valName}]
	return ok
}

func (r *Relation) add(k, v *Symbol) error {
	id := [2]string{k.Name, v.Name}
	if _, dup := r.seen[id]; dup {
		return fmt.Errorf("%s - %s: %w", k.Qualified(), v.Qualified(), ErrDuplicatePair)
	}
	r.seen[id] = struct{}{}
	r.pairs = append(r.pairs, Pair{Key: k, Val: v})
	return nil
}

// =============================================================================
// Relation Store
// =============================================================================

type relationKey struct {
	key string
	val string
}

// Store holds every declared relation direction.
//
// # Description
//
// Relations are keyed by an ordered class pair. Declare always creates
// both the (A,B) and (B,A) entries together, so any mutation path keeps
// the two directions structurally in lockstep; inserting the mirrored
// *pair* remains the loader's job (it adds forward and inverse per input
// line). The store never infers pairs on its own.
//
// # Invariants
//
//   - A class never relates to itself (ErrSelfRelation from Declare).
//   - Has(A,B) == Has(B,A) at all times.
//   - No duplicate pair within one direction (ErrDuplicatePair).
//
// # Thread Safety
//
// Not safe for concurrent use; see Table.
type Store struct {
	relations map[relationKey]*Relation
	order     []relationKey
}

// NewStore creates an empty relation store.
func NewStore() *Store {
	return &Store{relations: make(map[relationKey]*Relation)}
}

// Reset drops every relation. Called before each file load.
func (s *Store) Reset() {
	s.relations = make(map[relationKey]*Relation)
	s.order = nil
}

// Declare creates the (a,b) and (b,a) entries as empty sets if absent.
// Declaring an existing pair is a no-op. Declaring (a,a) fails.
func (s *Store) Declare(classA, classB string) error {
	if classA == classB {
		return fmt.Errorf("class %q: %w", classA, ErrSelfRelation)
	}
	forward := relationKey{classA, classB}
	if _, ok := s.relations[forward]; ok {
		return nil
	}
	inverse := relationKey{classB, classA}
	s.relations[forward] = newRelation(classA, classB)
	s.relations[inverse] = newRelation(classB, classA)
	s.order = append(s.order, forward, inverse)
	return nil
}

// Has reports whether the (classA, classB) direction exists.
func (s *Store) Has(classA, classB string) bool {
	_, ok := s.relations[relationKey{classA, classB}]
	return ok
}

// Relation returns one declared direction.
func (s *Store) Relation(keyClass, valClass string) (*Relation, error) {
	r, ok := s.relations[relationKey{keyClass, valClass}]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", keyClass, valClass, ErrUnknownRelation)
	}
	return r, nil
}

// AddPair inserts one directed pair into the (keyClass, valClass) set.
//
// The direction must have been declared. Duplicate pairs fail with
// ErrDuplicatePair. The inverse pair is NOT inserted automatically; the
// loader adds both directions per declared line.
func (s *Store) AddPair(keyClass, valClass string, k, v *Symbol) error {
	r, err := s.Relation(keyClass, valClass)
	if err != nil {
		return err
	}
	return r.add(k, v)
}

// Pairs returns the insertion-ordered pair sequence of one direction.
func (s *Store) Pairs(keyClass, valClass string) ([]Pair, error) {
	r, err := s.Relation(keyClass, valClass)
	if err != nil {
		return nil, err
	}
	return r.Pairs(), nil
}

// Related reports membership of (keyName, valName) in the (keyClass,
// valClass) direction. Unknown directions are simply not related.
func (s *Store) Related(keyClass, valClass, keyName, valName string) bool {
	r, ok := s.relations[relationKey{keyClass, valClass}]
	if !ok {
		return false
	}
	return r.Contains(keyName, valName)
}

// Directions returns every declared direction in declaration order.
// Each declared class pair contributes two entries (forward then inverse).
func (s *Store) Directions() []*Relation {
	out := make([]*Relation, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.relations[k])
	}
	return out
}

// UnorderedPairs returns one Relation per declared class pair, in
// declaration order, skipping the automatically created inverse. Used by
// the "relations" listing, where showing both directions reads as
// duplication.
func (s *Store) UnorderedPairs() []*Relation {
	seen := make(map[relationKey]bool, len(s.order))
	out := make([]*Relation, 0, len(s.order)/2)
	for _, k := range s.order {
		if seen[relationKey{k.val, k.key}] {
			continue
		}
		seen[k] = true
		out = append(out, s.relations[k])
	}
	return out
}
