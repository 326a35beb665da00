/*
 * generate.go, part of goconformer.
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

	"github.com/rmera/goconformer"
	v3 "github.com/rmera/goconformer/v3"
)

//Conformer is the capability Generate needs from a molecule: one
//mutable geometry whose torsions can be set, read out, checked for
//steric collisions, and discovered. *conformer.Molecule implements it.
type Conformer interface {
	//SetTorsions sets all the given torsions to the given absolute
	//dihedral angles, in degrees, at once.
	SetTorsions(torsions []*conformer.Torsion, angles []float64) error

	//Positions returns a copy of the current coordinates.
	Positions() *v3.Matrix

	//HasCollidingAtoms reports a steric collision in the current
	//geometry.
	HasCollidingAtoms() bool

	//TorsionalModes returns the rotatable torsions of the molecule.
	TorsionalModes() []*conformer.Torsion
}

//Generate walks the whole mesh over the given conformer handle and
//fills store with one record per mesh point, in mesh order. For each
//assignment it sets all the torsions, copies the resulting coordinates
//out, and, if checkCollisions is true, runs the steric check; when the
//check is skipped the record carries CollisionUnknown, not
//CollisionAbsent. Energies start as NaN.
//
//The handle is mutated in place and Generate is its only writer during
//the pass; the handle is left at the last assignment of the mesh. A
//nil torsions slice means "use the handle's own torsional modes". A
//nil store means a fresh one; a non-empty store is refused, as dense
//indexes must coincide with mesh indexes. Any error from the handle
//aborts the pass: no mesh point is silently skipped, so a returned
//store with nil error always has exactly mesh.Len() records.
func Generate(handle Conformer, torsions []*conformer.Torsion, mesh *Mesh, store *Store, checkCollisions bool) (*Store, error) {
	if handle == nil || mesh == nil {
		return nil, Error{"nil conformer handle or mesh", []string{"scan.Generate"}}
	}
	if store == nil {
		store = NewStore()
	}
	if store.Len() != 0 {
		return nil, Error{"store already has records", []string{"scan.Generate"}}
	}
	if torsions == nil {
		torsions = handle.TorsionalModes()
	}
	if len(torsions) != mesh.Dims() {
		return nil, Error{fmt.Sprintf("%d torsions but mesh has %d dimensions", len(torsions), mesh.Dims()), []string{"scan.Generate"}}
	}
	mesh.Reset()
	assignment := make([]float64, mesh.Dims())
	for {
		a, ok := mesh.Next(assignment)
		if !ok {
			break
		}
		if err := handle.SetTorsions(torsions, a); err != nil {
			return nil, Error{fmt.Sprintf("record %d: %s", store.Len(), err.Error()), []string{"scan.Generate"}}
		}
		r := &Record{
			Angles: append([]float64{}, a...),
			Coords: handle.Positions(),
			Energy: math.NaN(),
		}
		if checkCollisions {
			if handle.HasCollidingAtoms() {
				r.Colliding = CollisionFound
			} else {
				r.Colliding = CollisionAbsent
			}
		}
		store.append(r)
	}
	store.freeze()
	return store, nil
}
