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

package conformer

//Error is the interface for errors in the library. Functions in this
//library are expected to return (mostly) errors implementing it. As it
//goes up the stack, each caller can use Decorate to add its name, so
//the final error carries the full path it took.
type Error interface {
	Error() string
	Decorate(string) []string //Decorate optionally adds the given string to the error, and returns the current decoration.
	Critical() bool
}

//CError is the concrete error type of the conformer package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice. Pass an empty string to just
//read the current decoration.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true, as errors in this package are always critical.
func (err CError) Critical() bool { return true }

//PanicMsg is the type used for the text of panics raised on programmer
//errors in this package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

//errDecorate decorates err with dec if err implements Error, and
//returns it unchanged otherwise.
func errDecorate(err error, dec string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(dec)
	return err2
}
