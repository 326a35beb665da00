/*
 * bonds.go, part of goconformer.
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

package conformer

import (
	"fmt"
	"sort"

	v3 "github.com/rmera/goconformer/v3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//Bond is a chemical bond between two atoms of a topology.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64
}

//Other returns the atom of the bond that is not origin. It panics if
//origin is in neither end of the bond, as that is a programming error.
func (B *Bond) Other(origin *Atom) *Atom {
	if origin.index == B.At1.index {
		return B.At2
	}
	if origin.index == B.At2.index {
		return B.At1
	}
	panic(PanicMsg("goconformer: atom given is not present in the bond"))
}

//removeBond takes the bond out of the bond lists of both its atoms.
func removeBond(b *Bond) {
	b.At1.Bonds = takefromslice(b.At1.Bonds, b.Index)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b.Index)
}

//return a new *Bond slice with the element id removed
func takefromslice(bonds []*Bond, id int) []*Bond {
	newb := make([]*Bond, 0, len(bonds)-1)
	for _, v := range bonds {
		if v.Index != id {
			newb = append(newb, v)
		}
	}
	return newb
}

//AssignBonds perceives the bonds of mol from the interatomic distances
//in coord, with a simple distance criterium similar to that described
//in DOI:10.1186/1758-2946-3-33. It might get slow for large systems;
//it's really not thought for proteins or macromolecules.
func AssignBonds(coord *v3.Matrix, mol *Topology) error {
	var t1, t2 *v3.Matrix
	var at1, at2 *Atom
	t3 := v3.Zeros(1)
	tot := mol.Len()
	var nextIndex int
	for i := 0; i < tot; i++ {
		mol.Atom(i).Bonds = nil //don't accumulate bonds on reassignment
	}
	for i := 0; i < tot; i++ {
		t1 = coord.VecView(i)
		at1 = mol.Atom(i)
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			return CError{fmt.Sprintf("Couldn't find the covalent radii for %s %d", at1.Symbol, i), []string{"AssignBonds"}}
		}
		for j := i + 1; j < tot; j++ {
			t2 = coord.VecView(j)
			at2 = mol.Atom(j)
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				return CError{fmt.Sprintf("Couldn't find the covalent radii for %s %d", at2.Symbol, j), []string{"AssignBonds"}}
			}
			t3.Sub(t2, t1)
			d := t3.Norm(2)
			if d < cov1+cov2+bondtol && d > tooclose {
				b := &Bond{Index: nextIndex, Dist: d, At1: at1, At2: at2}
				at1.Bonds = append(at1.Bonds, b)
				at2.Bonds = append(at2.Bonds, b)
				nextIndex++
			}
		}
	}
	//Now we check that no atom has too many bonds, and remove the
	//longest bonds of any that does.
	for i := 0; i < tot; i++ {
		at := mol.Atom(i)
		max := symbolMaxBonds[at.Symbol]
		if max == 0 { //means there is not a specified maximum for this element.
			continue
		}
		sort.Slice(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
		for len(at.Bonds) > max {
			removeBond(at.Bonds[len(at.Bonds)-1])
		}
	}
	return nil
}

//InRing reports whether the bond is part of a ring, i.e. whether its
//two atoms stay connected when the bond itself is ignored.
func (B *Bond) InRing() bool {
	visited := map[int]bool{B.At1.index: true}
	queue := []*Atom{B.At1}
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		for _, b := range at.Bonds {
			if b.Index == B.Index {
				continue
			}
			n := b.Other(at)
			if n.index == B.At2.index {
				return true
			}
			if !visited[n.index] {
				visited[n.index] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

//RotatableBonds returns the bonds of mol around which a torsional
//rotation is meaningful: bonds whose two atoms both have further
//neighbors, and which are not part of a ring. Bonds to methyl-like
//terminal groups do qualify.
func RotatableBonds(mol *Topology) []*Bond {
	var rot []*Bond
	seen := map[int]bool{}
	for i := 0; i < mol.Len(); i++ {
		for _, b := range mol.Atom(i).Bonds {
			if seen[b.Index] {
				continue
			}
			seen[b.Index] = true
			if len(b.At1.Bonds) < 2 || len(b.At2.Bonds) < 2 {
				continue
			}
			if b.InRing() {
				continue
			}
			rot = append(rot, b)
		}
	}
	sort.Slice(rot, func(i, j int) bool { return rot[i].Index < rot[j].Index })
	return rot
}
