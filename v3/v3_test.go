/*
 * v3_test.go, part of goconformer.
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
	"testing"
)

func TestNewMatrix(t *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if A.NVecs() != 2 {
		t.Errorf("wrong number of vectors: %d", A.NVecs())
	}
	if A.At(1, 2) != 6 {
		t.Errorf("wrong element at 1,2: %f", A.At(1, 2))
	}
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		t.Errorf("slice of length 4 should not build a matrix")
	}
}

func TestVecView(t *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	if v.At(0, 0) != 4 {
		t.Errorf("view reads wrong data: %f", v.At(0, 0))
	}
	v.Set(0, 0, 40)
	if A.At(1, 0) != 40 {
		t.Errorf("view does not write through: %f", A.At(1, 0))
	}
}

func TestSomeSetVecs(t *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3})
	sub := Zeros(2)
	sub.SomeVecs(A, []int{3, 1})
	if sub.At(0, 0) != 3 || sub.At(1, 0) != 1 {
		t.Errorf("SomeVecs gathered wrong rows: %v", sub.RawMatrix().Data)
	}
	sub.Scale(10, sub)
	A.SetVecs(sub, []int{3, 1})
	if A.At(3, 2) != 30 || A.At(1, 2) != 10 || A.At(2, 2) != 2 {
		t.Errorf("SetVecs scattered wrong rows: %v", A.RawMatrix().Data)
	}
}

func TestCrossDotNorm(t *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Cross(x, y)
	if z.At(0, 2) != 1 || z.At(0, 0) != 0 || z.At(0, 1) != 0 {
		t.Errorf("x cross y should be z, got %v", z.RawMatrix().Data)
	}
	if x.Dot(y) != 0 {
		t.Errorf("x dot y should be 0")
	}
	v, _ := NewMatrix([]float64{3, 4, 0})
	if math.Abs(v.Norm(2)-5) > appzero {
		t.Errorf("wrong norm: %f", v.Norm(2))
	}
	u := Zeros(1)
	u.Unit(v)
	if math.Abs(u.Norm(2)-1) > appzero {
		t.Errorf("Unit did not normalize: %f", u.Norm(2))
	}
}

func TestAddSubVec(t *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	vec, _ := NewMatrix([]float64{1, 0, -1})
	B := Zeros(2)
	B.AddVec(A, vec)
	if B.At(0, 0) != 2 || B.At(1, 2) != 1 {
		t.Errorf("AddVec wrong: %v", B.RawMatrix().Data)
	}
	B.SubVec(B, vec)
	if B.At(0, 0) != 1 || B.At(1, 2) != 2 {
		t.Errorf("SubVec wrong: %v", B.RawMatrix().Data)
	}
}

func TestDist(t *testing.T) {
	a, _ := NewMatrix([]float64{0, 0, 0})
	b, _ := NewMatrix([]float64{1, 2, 2})
	tmp := Zeros(1)
	if math.Abs(Dist(a, b, tmp)-3) > appzero {
		t.Errorf("wrong distance: %f", Dist(a, b, tmp))
	}
}
