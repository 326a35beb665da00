/*
 * qm.go, part of goconformer.
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

//Package qm evaluates conformer energies with external programs. It
//defines the Handle interface for a single engine and the parallel
//evaluation pass over a scan store. The only engine currently shipped
//is xtb, which must be obtained from Prof. Stefan Grimme's group;
//please cite the xtb references if you use it.
package qm

import (
	conformer "github.com/rmera/goconformer"
	v3 "github.com/rmera/goconformer/v3"
)

//Handle is a connection to an external program that can compute the
//energy of one geometry. A handle is single-use-at-a-time: set a name,
//build the input, run, collect the energy.
type Handle interface {

	//SetName sets the name for the job, used for input and output
	//files. The extensions depend on the program. The name may
	//contain a directory part, so concurrent jobs can each run in
	//their own directory.
	SetName(name string)

	//BuildInput builds an input for the program from the geometry,
	//the atom data (symbols, charge, multiplicity) and the
	//calculation settings.
	BuildInput(coords *v3.Matrix, atoms conformer.AtomMultiCharger, Q *Calc) error

	//Run runs the program for a calculation previously set up. It
	//waits or not for the result depending on wait.
	Run(wait bool) error

	//Energy returns the last energy of the calculation, in kcal/mol,
	//by parsing the program's output file.
	Energy() (float64, error)
}

//Calc holds the settings of a calculation, in program-independent
//terms. Each handle maps them to its program's options and is free to
//ignore what its program can't do.
type Calc struct {
	Method     string
	Dielectric float64 //for implicit solvation, 0 for gas phase
	Optimize   bool    //optimize the geometry before the energy
	Memory     int     //max memory to be used in MB
	Others     string  //extra program-specific options, passed as-is
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	if container == nil {
		return false
	}
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
