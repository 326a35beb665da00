/*
 * geometric.go, part of goconformer.
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
	"math"

	v3 "github.com/rmera/goconformer/v3"
	"gonum.org/v1/gonum/mat"
)

const (
	//Deg2Rad converts degrees to radians.
	Deg2Rad = 0.0174532925199433
	//Rad2Deg converts radians to degrees.
	Rad2Deg = 1 / Deg2Rad
	//H2Kcal converts Hartrees to kcal/mol.
	H2Kcal = 627.509
	appzero = 0.000000000001
)

//Angle takes 2 vectors and calculates the angle in radians between them.
//It does not check for correctness or return errors.
func Angle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.Norm(2) * v2.Norm(2)
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0
	}
	return angle
}

//Dihedral calculates the dihedral between the points a, b, c, d, where
//the first plane contains the first three and the second plane contains
//the last three points. The result is in radians, in (-pi, pi], with
//the eclipsed (cis) arrangement at 0.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	all := []*v3.Matrix{a, b, c, d}
	for _, point := range all {
		if point == nil {
			panic(PanicMsg("goconformer: Nil vector in dihedral"))
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			panic(PanicMsg("goconformer: Wrong vector for dihedral calculation"))
		}
	}
	b1 := v3.Zeros(1)
	b1.Sub(b, a)
	b2 := v3.Zeros(1)
	b2.Sub(c, b)
	b3 := v3.Zeros(1)
	b3.Sub(d, c)
	b1scaled := v3.Zeros(1)
	b1scaled.Scale(b2.Norm(2), b1)
	first := b1scaled.Dot(v3.Cross(b2, b3))
	second := v3.Cross(b1, b2).Dot(v3.Cross(b2, b3))
	dihedral := math.Atan2(first, second)
	return dihedral
}

//RotateAbout rotates the coordinates in coordsorig (Nx3) around the
//axis defined by the points ax1 and ax2, by angle radians, and returns
//the rotated coordinates. The rotation is right-handed about the
//direction ax1 -> ax2. coordsorig is not modified.
func RotateAbout(coordsorig, ax1, ax2 *v3.Matrix, angle float64) (*v3.Matrix, error) {
	axis := v3.Zeros(1)
	axis.Sub(ax2, ax1)
	norm := axis.Norm(2)
	if norm <= appzero {
		return nil, CError{"coincident axis points, rotation axis undefined", []string{"RotateAbout"}}
	}
	axis.Scale(1/norm, axis)
	r := coordsorig.NVecs()
	translated := v3.Zeros(r)
	translated.SubVec(coordsorig, ax1)
	ux := axis.At(0, 0)
	uy := axis.At(0, 1)
	uz := axis.At(0, 2)
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	//The transpose of the rotation matrix for column vectors, so the
	//row vectors in translated multiply it from the left.
	op := mat.NewDense(3, 3, []float64{
		c + t*ux*ux, s*uz + t*ux*uy, -s*uy + t*ux*uz,
		-s*uz + t*ux*uy, c + t*uy*uy, s*ux + t*uy*uz,
		s*uy + t*ux*uz, -s*ux + t*uy*uz, c + t*uz*uz,
	})
	rotated := v3.Zeros(r)
	rotated.Mul(translated, op)
	rotated.AddVec(rotated, ax1)
	return rotated, nil
}
