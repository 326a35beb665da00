/*
 * store.go, part of goconformer.
 *
 * Copyright 2023 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * goconformer is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package scan

import (
	"fmt"
	"math"

	v3 "github.com/rmera/goconformer/v3"
)

//Collision is the result of the steric check on a generated conformer.
//The zero value means the check was not run, which is deliberately
//distinct from "no collision found".
type Collision int8

const (
	CollisionUnknown Collision = iota //check skipped
	CollisionAbsent
	CollisionFound
)

func (c Collision) String() string {
	switch c {
	case CollisionAbsent:
		return "absent"
	case CollisionFound:
		return "found"
	default:
		return "unknown"
	}
}

//Record is one generated conformer: the torsion assignment that
//produced it, its coordinates, the collision flag, and its energy.
//The energy starts as NaN and stays NaN unless an evaluation succeeds
//for this record.
type Record struct {
	Angles    []float64
	Coords    *v3.Matrix
	Colliding Collision
	Energy    float64 //kcal/mol, NaN when not (successfully) evaluated
}

//Store holds the records of one scan, densely indexed in generation
//order, which is mesh order. After generation the store is frozen:
//records can't be added, removed or reordered, and of each record only
//the energy may still be set, once, through SetEnergy. That is what
//lets the parallel evaluation pass write results without locks: each
//worker owns disjoint indexes.
type Store struct {
	records []*Record
	frozen  bool
}

//NewStore returns an empty, unfrozen store.
func NewStore() *Store {
	return &Store{}
}

//Len returns the number of records in the store.
func (S *Store) Len() int {
	return len(S.records)
}

//Record returns the record at dense index i. It panics if i is out of
//range. The returned record is the store's own; treat it as read-only.
func (S *Store) Record(i int) *Record {
	if i < 0 || i >= len(S.records) {
		panic(fmt.Sprintf("goconformer/scan: record index %d out of range (len %d)", i, len(S.records)))
	}
	return S.records[i]
}

//Each calls f on every record, in dense-index order, until f returns
//false.
func (S *Store) Each(f func(i int, r *Record) bool) {
	for i, r := range S.records {
		if !f(i, r) {
			return
		}
	}
}

//SetEnergy sets the energy (kcal/mol) of record i. It panics if i is
//out of range. The store must be frozen; each index must be written by
//at most one goroutine.
func (S *Store) SetEnergy(i int, energy float64) {
	S.Record(i).Energy = energy
}

//Energy returns the energy of record i, NaN if it was never set.
func (S *Store) Energy(i int) float64 {
	return S.Record(i).Energy
}

//MinEnergy returns the index and energy of the lowest-energy record,
//skipping records with NaN energy. If no record has an energy it
//returns -1 and NaN.
func (S *Store) MinEnergy() (int, float64) {
	best := -1
	bestE := math.NaN()
	for i, r := range S.records {
		if math.IsNaN(r.Energy) {
			continue
		}
		if best == -1 || r.Energy < bestE {
			best = i
			bestE = r.Energy
		}
	}
	return best, bestE
}

//append adds a record during generation. Appending to a frozen store
//is a programming error.
func (S *Store) append(r *Record) {
	if S.frozen {
		panic("goconformer/scan: append to a frozen store")
	}
	S.records = append(S.records, r)
}

//freeze marks the end of generation.
func (S *Store) freeze() {
	S.frozen = true
}
