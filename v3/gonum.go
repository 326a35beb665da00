/*
 * gonum.go, part of goconformer.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of row vectors in 3D space, i.e. an Nx3 matrix where each
//row holds the cartesian coordinates of a point. It wraps a gonum Dense
//matrix, so all gonum methods remain available.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the gonum Dense matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a gonum Dense matrix into a Matrix. The Dense must
//have 3 columns; the function panics otherwise.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

//NVecs returns the number of vectors in the receiver.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//Len returns the number of vectors in the receiver. It is equivalent to
//NVecs and exists for compatibility with other interfaces in the library.
func (F *Matrix) Len() int {
	return F.NVecs()
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns. Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//Copy copies A into the receiver. The receiver must be at least as large
//as A.
func (F *Matrix) Copy(A *Matrix) {
	F.Dense.Copy(A.Dense)
}

//Sub subtracts B from A, putting the result in the receiver.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

//Add adds A and B, putting the result in the receiver.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

//Scale scales A by v, putting the result in the receiver.
func (F *Matrix) Scale(v float64, A *Matrix) {
	F.Dense.Scale(v, A.Dense)
}

//Mul multiplies A and B, putting the result in the receiver. It wraps
//the gonum function so a Matrix can be given directly for either argument.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if C, ok := A.(*Matrix); ok {
		A = C.Dense
	}
	if C, ok := B.(*Matrix); ok {
		B = C.Dense
	}
	F.Dense.Mul(A, B)
}

//Errors

//Error is the error type for the v3 package. It implements the
//Decorate method so callers can add information as the error
//goes up the stack.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate adds the dec string to the decoration slice of strings of the error,
//and returns the resulting slice. If dec is empty, the current decoration is
//returned unchanged.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics. It satisfies the error interface,
//but for regular errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("goconformer/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct    = PanicMsg("goconformer/v3: Invalid matrix for cross product")
	ErrNotEnoughElements = PanicMsg("goconformer/v3: not enough elements in Matrix")
	ErrShape             = PanicMsg("goconformer/v3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("goconformer/v3: index out of range")
)
