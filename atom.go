/*
 * atom.go, part of goconformer.
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

	v3 "github.com/rmera/goconformer/v3"
)

//CollisionFactor scales the sum of van der Waals radii in the steric
//collision predicate. Two non-bonded atoms closer than
//CollisionFactor*(vdw1+vdw2) are taken as colliding.
const CollisionFactor = 0.6

//Atom contains the properties of one atom. The coordinates live
//separately, in a v3.Matrix, so one topology can describe many
//geometries.
type Atom struct {
	Name   string  //atom name, defaults to the element symbol
	Symbol string  //element symbol
	ID     int     //atom serial number, 1-based
	index  int     //internal index, 0-based
	Mass   float64 //atomic mass, g/mol
	Vdw    float64 //van der Waals radius, A
	Charge float64 //partial charge
	Bonds  []*Bond //bonds to other atoms
}

//Index returns the 0-based index of the atom in its topology.
func (A *Atom) Index() int {
	return A.index
}

//Copy returns a copy of the atom, without its bonds.
func (A *Atom) Copy() *Atom {
	return &Atom{Name: A.Name, Symbol: A.Symbol, ID: A.ID, index: A.index, Mass: A.Mass, Vdw: A.Vdw, Charge: A.Charge}
}

//Topology is an ordered list of atoms plus the total charge and
//multiplicity of the system. It implements AtomMultiCharger.
type Topology struct {
	atoms  []*Atom
	charge int
	multi  int
}

//NewTopology returns a topology with the given atoms, charge and
//multiplicity. It fills the internal indexes and the mass and vdW
//radius of every atom from the element tables, and fails if an element
//is not tabulated.
func NewTopology(atoms []*Atom, charge, multi int) (*Topology, error) {
	T := &Topology{atoms: atoms, charge: charge, multi: multi}
	for i, at := range atoms {
		at.index = i
		if at.Name == "" {
			at.Name = at.Symbol
		}
		if at.ID == 0 {
			at.ID = i + 1
		}
		mass, ok := symbolMass[at.Symbol]
		if !ok {
			return nil, CError{"no mass for element " + at.Symbol, []string{"NewTopology"}}
		}
		at.Mass = mass
		vdw, ok := symbolVdwrad[at.Symbol]
		if !ok {
			return nil, CError{"no van der Waals radius for element " + at.Symbol, []string{"NewTopology"}}
		}
		at.Vdw = vdw
	}
	return T, nil
}

//Atom returns the atom at index i. It panics if the index is out of
//range, as a programmer error.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic(PanicMsg(fmt.Sprintf("goconformer: atom index %d out of range", i)))
	}
	return T.atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

//Charge returns the total charge of the system.
func (T *Topology) Charge() int {
	return T.charge
}

//SetCharge sets the total charge of the system.
func (T *Topology) SetCharge(c int) {
	T.charge = c
}

//Multi returns the multiplicity of the system.
func (T *Topology) Multi() int {
	return T.multi
}

//SetMulti sets the multiplicity of the system.
func (T *Topology) SetMulti(m int) {
	T.multi = m
}

//Molecule is a topology with one mutable geometry, plus the pristine
//input geometry so the molecule can be reset. The geometry is owned by
//the Molecule and mutated in place by SetTorsions; use Positions to
//obtain independent copies.
type Molecule struct {
	*Topology
	coords   *v3.Matrix
	original *v3.Matrix
}

//NewMolecule builds a molecule from coordinates, atoms, total charge
//and multiplicity. The coordinates are copied. Bonds are perceived
//from interatomic distances.
func NewMolecule(coords *v3.Matrix, atoms []*Atom, charge, multi int) (*Molecule, error) {
	if coords == nil || atoms == nil {
		return nil, CError{"nil coordinates or atoms", []string{"NewMolecule"}}
	}
	if coords.NVecs() != len(atoms) {
		return nil, CError{fmt.Sprintf("%d atoms but %d coordinate rows", len(atoms), coords.NVecs()), []string{"NewMolecule"}}
	}
	top, err := NewTopology(atoms, charge, multi)
	if err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	M := &Molecule{Topology: top}
	M.coords = v3.Zeros(coords.NVecs())
	M.coords.Copy(coords)
	M.original = v3.Zeros(coords.NVecs())
	M.original.Copy(coords)
	if err := AssignBonds(M.coords, top); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return M, nil
}

//Positions returns a copy of the current coordinates. The copy is not
//affected by later mutations of the molecule.
func (M *Molecule) Positions() *v3.Matrix {
	ret := v3.Zeros(M.coords.NVecs())
	ret.Copy(M.coords)
	return ret
}

//Coords returns the molecule's own coordinate matrix. Mutating the
//returned matrix mutates the molecule.
func (M *Molecule) Coords() *v3.Matrix {
	return M.coords
}

//Reset restores the coordinates the molecule was built with.
func (M *Molecule) Reset() {
	M.coords.Copy(M.original)
}

//SetTorsions sets every given torsion to the corresponding absolute
//dihedral angle, in degrees, by rotating each torsion's moving set
//about its central bond. Angles are taken as-is, without
//normalization.
func (M *Molecule) SetTorsions(torsions []*Torsion, angles []float64) error {
	if len(torsions) != len(angles) {
		return CError{fmt.Sprintf("%d torsions but %d angles", len(torsions), len(angles)), []string{"Molecule.SetTorsions"}}
	}
	for i, tor := range torsions {
		if err := M.setTorsion(tor, angles[i]); err != nil {
			return errDecorate(err, "Molecule.SetTorsions")
		}
	}
	return nil
}

//setTorsion rotates the moving set of tor about its central bond so the
//dihedral A-B-C-D becomes angle degrees.
func (M *Molecule) setTorsion(tor *Torsion, angle float64) error {
	a := M.coords.VecView(tor.A)
	b := M.coords.VecView(tor.B)
	c := M.coords.VecView(tor.C)
	d := M.coords.VecView(tor.D)
	current := Dihedral(a, b, c, d)
	delta := Deg2Rad*angle - current
	moving := v3.Zeros(len(tor.Moving))
	moving.SomeVecs(M.coords, tor.Moving)
	rotated, err := RotateAbout(moving, b, c, delta)
	if err != nil {
		return errDecorate(err, "setTorsion")
	}
	M.coords.SetVecs(rotated, tor.Moving)
	return nil
}

//HasCollidingAtoms reports whether any two non-bonded atoms of the
//molecule, in its current geometry, are closer than CollisionFactor
//times the sum of their van der Waals radii. Pairs separated by one or
//two bonds are excluded. This is advisory: a colliding geometry is
//still a valid conformer, just unlikely to be a useful one.
func (M *Molecule) HasCollidingAtoms() bool {
	return len(M.CollidingPairs(CollisionFactor)) > 0
}

//CollidingPairs returns the index pairs of non-bonded atoms closer than
//factor times the sum of their van der Waals radii. Pairs separated by
//one or two bonds are excluded.
func (M *Molecule) CollidingPairs(factor float64) [][2]int {
	var pairs [][2]int
	t := v3.Zeros(1)
	for i := 0; i < M.Len(); i++ {
		ati := M.Atom(i)
		excluded := excluded13(ati)
		for j := i + 1; j < M.Len(); j++ {
			if excluded[j] {
				continue
			}
			atj := M.Atom(j)
			d := v3.Dist(M.coords.VecView(i), M.coords.VecView(j), t)
			if d < factor*(ati.Vdw+atj.Vdw) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

//excluded13 returns the set of atom indexes within two bonds of at,
//at itself included.
func excluded13(at *Atom) map[int]bool {
	ex := map[int]bool{at.index: true}
	for _, b := range at.Bonds {
		n := b.Other(at)
		ex[n.index] = true
		for _, b2 := range n.Bonds {
			ex[b2.Other(n).index] = true
		}
	}
	return ex
}

//TorsionalModes returns a torsion for every rotatable bond of the
//molecule: bonds between two non-terminal atoms that are not part of a
//ring. Methyl-like rotors are included. The outer atoms of each
//torsion are the lowest-index neighbors on each side, so the result is
//deterministic for a given topology.
func (M *Molecule) TorsionalModes() []*Torsion {
	var torsions []*Torsion
	for _, bond := range RotatableBonds(M.Topology) {
		b := bond.At1
		c := bond.At2
		a := lowestNeighbor(b, c)
		d := lowestNeighbor(c, b)
		tor, err := NewTorsion(M, a.index, b.index, c.index, d.index)
		if err != nil {
			continue //can't happen for a rotatable bond
		}
		torsions = append(torsions, tor)
	}
	return torsions
}

//lowestNeighbor returns the lowest-index neighbor of at other than skip.
func lowestNeighbor(at, skip *Atom) *Atom {
	var best *Atom
	for _, b := range at.Bonds {
		n := b.Other(at)
		if n == skip {
			continue
		}
		if best == nil || n.index < best.index {
			best = n
		}
	}
	return best
}
