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
Package scan generates conformer ensembles by systematic enumeration of
torsion angles. Samplings describe how each torsional dimension is
visited, Schedules turns them into absolute angle schedules, Mesh
enumerates their Cartesian product in a fixed row-major order, and
Generate drives a single molecule through every mesh point, collecting
one Record per point into a dense-indexed Store. The store can be
snapshotted to a compressed file and evaluated point by point with the
qm package.
*/
package scan
