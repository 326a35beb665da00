/*
 * mesh.go, part of goconformer.
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

import "fmt"

//Mesh enumerates the Cartesian product of a set of angle schedules, in
//row-major order: the last dimension varies fastest. The enumeration
//is lazy, so large meshes cost nothing until walked, and deterministic,
//so the dense index of an assignment identifies it across runs.
type Mesh struct {
	schedules [][]float64
	size      int
	next      int
}

//NewMesh builds a mesh over the given schedules. The schedules are
//copied, so later changes to the argument don't affect the mesh. A
//mesh with any empty schedule, or with no schedules, is empty.
func NewMesh(schedules [][]float64) *Mesh {
	M := &Mesh{schedules: make([][]float64, len(schedules))}
	size := 1
	if len(schedules) == 0 {
		size = 0
	}
	for i, s := range schedules {
		M.schedules[i] = make([]float64, len(s))
		copy(M.schedules[i], s)
		size *= len(s)
	}
	M.size = size
	return M
}

//Dims returns the number of dimensions of the mesh.
func (M *Mesh) Dims() int {
	return len(M.schedules)
}

//Len returns the total number of assignments in the mesh: the product
//of the schedule lengths.
func (M *Mesh) Len() int {
	return M.size
}

//Reset rewinds the mesh to its first assignment.
func (M *Mesh) Reset() {
	M.next = 0
}

//Next returns the next assignment of the mesh, and false once the mesh
//is exhausted. If dst has the right length the assignment is written
//into it and dst is returned, otherwise a fresh slice is allocated.
func (M *Mesh) Next(dst []float64) ([]float64, bool) {
	if M.next >= M.size {
		return nil, false
	}
	dst = M.Assignment(M.next, dst)
	M.next++
	return dst, true
}

//Assignment returns the ith assignment of the mesh, decoding the dense
//index in row-major order. It panics if i is out of range. If dst has
//the right length it is reused.
func (M *Mesh) Assignment(i int, dst []float64) []float64 {
	if i < 0 || i >= M.size {
		panic(fmt.Sprintf("goconformer/scan: mesh index %d out of range (size %d)", i, M.size))
	}
	if len(dst) != len(M.schedules) {
		dst = make([]float64, len(M.schedules))
	}
	for j := len(M.schedules) - 1; j >= 0; j-- {
		s := M.schedules[j]
		dst[j] = s[i%len(s)]
		i /= len(s)
	}
	return dst
}
