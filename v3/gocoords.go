/*
 * gocoords.go, part of goconformer.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//SomeVecs copies the vectors of A with the indexes in clist, in that order,
//into the receiver. The receiver must have len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if len(clist) != F.NVecs() {
		panic(ErrShape)
	}
	lenA := A.NVecs()
	for k, j := range clist {
		if j >= lenA {
			panic(ErrIndexOutOfRange)
		}
		for i := 0; i < 3; i++ {
			F.Set(k, i, A.At(j, i))
		}
	}
}

//SetVecs copies the consecutive vectors of A into the positions of the
//receiver given by clist. It is the scatter counterpart of SomeVecs.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	if len(clist) != A.NVecs() {
		panic(ErrShape)
	}
	lenF := F.NVecs()
	for k, j := range clist {
		if j >= lenF {
			panic(ErrIndexOutOfRange)
		}
		for i := 0; i < 3; i++ {
			F.Set(j, i, A.At(k, i))
		}
	}
}

//AddVec adds the row vector vec to each vector of A, putting the result
//in the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	vr, vc := vec.Dims()
	if vr != 1 || vc != 3 {
		panic(ErrShape)
	}
	ar := A.NVecs()
	if F.NVecs() < ar {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)+vec.At(0, j))
		}
	}
}

//SubVec subtracts the row vector vec from each vector of A, putting the
//result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	vr, vc := vec.Dims()
	if vr != 1 || vc != 3 {
		panic(ErrShape)
	}
	ar := A.NVecs()
	if F.NVecs() < ar {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-vec.At(0, j))
		}
	}
}

//Dot returns the dot product between the receiver and B, i.e. the sum of
//the products of the corresponding elements.
func (F *Matrix) Dot(B *Matrix) float64 {
	fr, fc := F.Dims()
	br, bc := B.Dims()
	if fr != br || fc != bc {
		panic(ErrShape)
	}
	var ret float64
	for i := 0; i < fr; i++ {
		for j := 0; j < fc; j++ {
			ret += F.At(i, j) * B.At(i, j)
		}
	}
	return ret
}

//Cross puts the cross product of a and b in the receiver. All three
//matrices must be 1x3.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() != 1 || b.NVecs() != 1 || F.NVecs() != 1 {
		panic(ErrNoCrossProduct)
	}
	F.Set(0, 0, a.At(0, 1)*b.At(0, 2)-a.At(0, 2)*b.At(0, 1))
	F.Set(0, 1, a.At(0, 2)*b.At(0, 0)-a.At(0, 0)*b.At(0, 2))
	F.Set(0, 2, a.At(0, 0)*b.At(0, 1)-a.At(0, 1)*b.At(0, 0))
}

//Cross returns the cross product of a and b in a newly allocated 1x3 matrix.
func Cross(a, b *Matrix) *Matrix {
	c := Zeros(1)
	c.Cross(a, b)
	return c
}

//Norm returns the n-norm of the receiver. For a row vector and n=2 this
//is the euclidean norm.
func (F *Matrix) Norm(n float64) float64 {
	return mat.Norm(F.Dense, n)
}

//Unit puts in the receiver the unit vector in the direction of A.
//It panics if A has (too close to) zero norm.
func (F *Matrix) Unit(A *Matrix) {
	norm := A.Norm(2)
	if norm <= appzero {
		panic(ErrNotEnoughElements)
	}
	F.Scale(1.0/norm, A)
}

//Dist returns the euclidean distance between the 1x3 vectors a and b.
//The temporary t is overwritten, which allows reusing one buffer across
//many pair-distance calls.
func Dist(a, b, t *Matrix) float64 {
	t.Sub(a, b)
	d := 0.0
	for i := 0; i < 3; i++ {
		d += t.At(0, i) * t.At(0, i)
	}
	return math.Sqrt(d)
}
