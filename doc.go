/*
 * doc.go, part of goconformer.
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

/*
Package conformer implements the molecule layer of goconformer: atoms,
topologies and molecules for small organic systems, distance-based bond
perception, discovery and mutation of torsional degrees of freedom, a
steric-collision predicate and XYZ input/output.

A Molecule is one topology plus one mutable geometry. The torsion
machinery mutates that single geometry in place; Positions returns
copies, so snapshots taken between mutations stay valid. The scan
subpackage drives a Molecule over a grid of torsion angles, the qm
subpackage evaluates the resulting conformers with an external program.
*/
package conformer
