/*
 * errors.go, part of goconformer.
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

package qm

import "strings"

//Error is the error type of the qm package. It records which program
//and which job the error belongs to, so failures of parallel jobs can
//be told apart.
type Error struct {
	message   string
	program   string
	inputname string
	extra     string //any additional information
	deco      []string
	critical  bool
}

func (err Error) Error() string {
	s := strings.Join([]string{err.message, err.program, err.inputname, err.extra}, " ")
	return strings.TrimSpace(s)
}

//Decorate adds the dec string to the decoration of the error and
//returns the resulting decoration.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//Common error messages.
const (
	ErrNotRunning     = "Couldn't run the QM program"
	ErrCantInput      = "Couldn't build the input"
	ErrNoEnergy       = "Couldn't read the energy from the output"
	ErrNoGeometry     = "Couldn't read the geometry from the output"
	ErrMissingCharges = "Missing charges or coordinates"
)

//Names of the supported programs.
const (
	XTB = "XTB"
)
