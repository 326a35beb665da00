/*
 * sampling.go, part of goconformer.
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

import (
	"fmt"
)

//Error is the error type of the scan package. It implements the
//Decorate method of the library's errors, so callers can trace where
//an error came through.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration of the error and
//returns the resulting decoration.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true; scan errors are always critical.
func (err Error) Critical() bool { return true }

//A Sampling describes how one torsional dimension is to be sampled,
//as a set of offsets from a reference angle. All angles are in degrees.
type Sampling interface {
	//schedule returns the absolute angles to visit for the dimension,
	//given its reference angle. The returned slice is freshly
	//allocated and owned by the caller.
	schedule(ref float64) []float64
}

//StepCount samples a full turn in n equal integer-degree steps: the
//angles ref + k*floor(360/n) for k in [0,n). StepCount(0) samples only
//the reference angle itself, so a dimension can be held fixed. The
//step is the integer division floor(360/n); for counts that do not
//divide 360 the last gap is larger than the rest.
type StepCount int

func (s StepCount) schedule(ref float64) []float64 {
	n := int(s)
	if n <= 0 {
		return []float64{ref}
	}
	step := float64(360 / n)
	sched := make([]float64, n)
	for k := 0; k < n; k++ {
		sched[k] = ref + float64(k)*step
	}
	return sched
}

//Offsets samples exactly the given offsets from the reference, in the
//given order. Offsets need not be sorted, unique, or within [0,360).
type Offsets []float64

func (o Offsets) schedule(ref float64) []float64 {
	sched := make([]float64, len(o))
	for i, off := range o {
		sched[i] = ref + off
	}
	return sched
}

//Schedules builds the per-dimension angle schedules for a scan. The
//reference angles may be nil, in which case every reference is zero;
//otherwise ref must have exactly one angle per sampling, and a length
//mismatch is an immediate error. A nil element in samplings stands for
//a dimension held at its reference. Angles are not normalized into
//[0,360): a schedule can walk past a full turn, and the torsion setter
//doesn't care.
func Schedules(samplings []Sampling, ref []float64) ([][]float64, error) {
	if ref != nil && len(ref) != len(samplings) {
		return nil, Error{fmt.Sprintf("%d samplings but %d reference angles", len(samplings), len(ref)), []string{"scan.Schedules"}}
	}
	scheds := make([][]float64, len(samplings))
	for i, s := range samplings {
		r := 0.0
		if ref != nil {
			r = ref[i]
		}
		if s == nil {
			s = StepCount(0)
		}
		scheds[i] = s.schedule(r)
	}
	return scheds, nil
}
