/*
 * torsion.go, part of goconformer.
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
)

//Torsion is one torsional degree of freedom of a molecule: the dihedral
//angle A-B-C-D around the central bond B-C, plus the indexes of the
//atoms that move when the angle is changed. The moving set is the
//D side: every atom reachable from C without crossing back through B.
type Torsion struct {
	A, B, C, D int
	Moving     []int
}

func (T *Torsion) String() string {
	return fmt.Sprintf("torsion %d-%d-%d-%d (%d moving)", T.A, T.B, T.C, T.D, len(T.Moving))
}

//NewTorsion builds the torsion a-b-c-d on mol. The four indexes must be
//in range and distinct, a-b, b-c and c-d must be bonds of the molecule,
//and the central bond must not be part of a ring (a ring bond has no
//well-defined moving set). The moving set is derived from the bond
//graph at construction; it stays valid while the topology does.
func NewTorsion(mol *Molecule, a, b, c, d int) (*Torsion, error) {
	for _, i := range []int{a, b, c, d} {
		if i < 0 || i >= mol.Len() {
			return nil, CError{fmt.Sprintf("atom index %d out of range", i), []string{"NewTorsion"}}
		}
	}
	if a == b || a == c || a == d || b == c || b == d || c == d {
		return nil, CError{fmt.Sprintf("repeated atom in torsion %d-%d-%d-%d", a, b, c, d), []string{"NewTorsion"}}
	}
	if bondBetween(mol.Atom(a), mol.Atom(b)) == nil {
		return nil, CError{fmt.Sprintf("atoms %d and %d are not bonded", a, b), []string{"NewTorsion"}}
	}
	central := bondBetween(mol.Atom(b), mol.Atom(c))
	if central == nil {
		return nil, CError{fmt.Sprintf("atoms %d and %d are not bonded", b, c), []string{"NewTorsion"}}
	}
	if bondBetween(mol.Atom(c), mol.Atom(d)) == nil {
		return nil, CError{fmt.Sprintf("atoms %d and %d are not bonded", c, d), []string{"NewTorsion"}}
	}
	if central.InRing() {
		return nil, CError{fmt.Sprintf("central bond %d-%d is part of a ring", b, c), []string{"NewTorsion"}}
	}
	T := &Torsion{A: a, B: b, C: c, D: d}
	T.Moving = movingSet(mol, b, c)
	return T, nil
}

//bondBetween returns the bond connecting at1 and at2, or nil.
func bondBetween(at1, at2 *Atom) *Bond {
	for _, b := range at1.Bonds {
		if b.Other(at1).index == at2.index {
			return b
		}
	}
	return nil
}

//movingSet collects the atoms reachable from c without passing through
//b, c itself excluded. These are the atoms an A-B-C-D torsion rotation
//displaces. The result is sorted.
func movingSet(mol *Molecule, b, c int) []int {
	visited := map[int]bool{b: true, c: true}
	queue := []*Atom{mol.Atom(c)}
	var moving []int
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		for _, bond := range at.Bonds {
			n := bond.Other(at)
			if visited[n.index] {
				continue
			}
			visited[n.index] = true
			moving = append(moving, n.index)
			queue = append(queue, n)
		}
	}
	sort.Ints(moving)
	return moving
}
