/*
 * interfaces.go, part of goconformer.
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

//Atomer is the basic interface for a topology: an ordered collection of
//atoms.
type Atomer interface {
	//Atom returns the Atom at index i. It panics if the index is out
	//of range.
	Atom(i int) *Atom

	//Len returns the number of atoms.
	Len() int
}

//AtomMultiCharger is an Atomer that also knows the total charge and the
//multiplicity of the system. QM calculations require this.
type AtomMultiCharger interface {
	Atomer

	//Charge returns the total charge of the system.
	Charge() int

	//Multi returns the multiplicity of the system.
	Multi() int
}
