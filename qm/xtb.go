/*
 * xtb.go, part of goconformer.
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

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	conformer "github.com/rmera/goconformer"
	v3 "github.com/rmera/goconformer/v3"
)

//XTBHandle runs energy calculations with the xtb semiempirical
//program. The defaults (and the default method) are not part of the
//API and can change between versions.
type XTBHandle struct {
	command   string
	inputname string
	nCPU      int
	options   []string
	gfnff     bool
}

//NewXTBHandle returns an XTBHandle with the default settings.
func NewXTBHandle() *XTBHandle {
	run := new(XTBHandle)
	run.SetDefaults()
	return run
}

//SetnCPU sets the number of CPUs each xtb run may use.
func (O *XTBHandle) SetnCPU(cpu int) {
	O.nCPU = cpu
}

//Command returns the command used to invoke xtb.
func (O *XTBHandle) Command() string {
	return O.command
}

//SetName sets the job name. It may contain a directory part, which
//will be created on BuildInput; that is how parallel jobs keep their
//files apart.
func (O *XTBHandle) SetName(name string) {
	O.inputname = name
}

//SetCommand sets the command used to invoke xtb.
func (O *XTBHandle) SetCommand(name string) {
	O.command = name
}

//SetDefaults sets the handle to use the xtb in the PATH with half the
//logical CPUs.
func (O *XTBHandle) SetDefaults() {
	O.command = os.ExpandEnv("xtb")
	cpu := runtime.NumCPU() / 2
	if cpu < 1 {
		cpu = 1
	}
	O.nCPU = cpu
}

//BuildInput writes the xyz input for xtb and assembles the command
//line options from Q. Only single-points and unconstrained
//optimizations are supported.
func (O *XTBHandle) BuildInput(coords *v3.Matrix, atoms conformer.AtomMultiCharger, Q *Calc) error {
	if O.inputname == "" {
		O.inputname = "goconformer"
	}
	if atoms == nil || coords == nil {
		return Error{ErrMissingCharges, XTB, O.inputname, "", []string{"BuildInput"}, true}
	}
	if dir := filepath.Dir(O.inputname); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Error{ErrCantInput, XTB, O.inputname, err.Error(), []string{"os.MkdirAll", "BuildInput"}, true}
		}
	}
	err := conformer.XYZWrite(O.inputname+".xyz", coords, atoms)
	if err != nil {
		return Error{ErrCantInput, XTB, O.inputname, err.Error(), []string{"BuildInput"}, true}
	}
	O.options = make([]string, 0, 6)
	O.options = append(O.options, O.command)
	if Q.Method == "gfnff" {
		O.gfnff = true
	}
	O.options = append(O.options, O.inputname+".xyz")
	O.options = append(O.options, fmt.Sprintf("-c %d", atoms.Charge()))
	O.options = append(O.options, fmt.Sprintf("-u %d", atoms.Multi()-1))
	if O.nCPU > 1 {
		O.options = append(O.options, fmt.Sprintf("-P %d", O.nCPU))
	}
	if !isInString([]string{"gfn1", "gfn2", "gfn0", "gfnff"}, Q.Method) {
		O.options = append(O.options, "--gfn 2") //default method
	} else if Q.Method != "gfnff" {
		m := strings.ReplaceAll(Q.Method, "gfn", "") //so m should be "0", "1" or "2"
		O.options = append(O.options, "--gfn "+m)
	}
	if Q.Dielectric > 0 && Q.Method != "gfn0" { //gfn0 doesn't support implicit solvation
		solvent, ok := dielectric2Solvent[int(Q.Dielectric)]
		if ok {
			O.options = append(O.options, "--alpb "+solvent)
		}
	}
	if Q.Optimize {
		O.options = append(O.options, "-o normal")
	}
	if Q.Others != "" {
		O.options = append(O.options, Q.Others)
	}
	return nil
}

//Options returns the current command line, mostly for testing and
//logging.
func (O *XTBHandle) Options() []string {
	return O.options
}

//Run runs xtb on the previously built input, waiting for the result or
//not depending on wait. Not waiting works only on unix-like systems,
//as it uses sh and nohup. Each job runs in the directory of its name,
//so parallel jobs with distinct directories don't step on each other's
//scratch files.
func (O *XTBHandle) Run(wait bool) (err error) {
	if O.options == nil {
		return Error{ErrNotRunning, XTB, O.inputname, "no input was built", []string{"Run"}, true}
	}
	dir := filepath.Dir(O.inputname)
	base := filepath.Base(O.inputname)
	var gfnff string
	if O.gfnff {
		gfnff = "--gfnff "
	}
	com := fmt.Sprintf("%s %s%s.xyz %s > %s.out 2>&1", O.command, gfnff, base, strings.Join(O.options[2:], " "), base)
	if dir != "." {
		com = fmt.Sprintf("cd %s && %s", dir, com)
	}
	if wait {
		command := exec.Command("sh", "-c", com)
		err = command.Run()
	} else {
		command := exec.Command("sh", "-c", "nohup "+com)
		err = command.Start()
	}
	if err != nil {
		return Error{ErrNotRunning, XTB, O.inputname, err.Error(), []string{"exec", "Run"}, true}
	}
	os.Remove(filepath.Join(dir, "xtbrestart"))
	return nil
}

//normalTermination checks that the xtb calculation ended normally.
func (O *XTBHandle) normalTermination() bool {
	out := O.inputname + ".out"
	return searchBackwards("normal termination of x", out) != "" ||
		searchBackwards("abnormal termination of x", out) == ""
}

//searchBackwards searches a file starting from the end for a string.
//It returns the line that contains the string, or an empty string.
func searchBackwards(str, filename string) string {
	var ini int64 = 0
	var end int64 = 0
	first := true
	buf := make([]byte, 1)
	f, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer f.Close()
	var i int64 = 1
	for ; ; i++ {
		if _, err := f.Seek(-1*i, 2); err != nil {
			return ""
		}
		if _, err := f.Read(buf); err != nil {
			return ""
		}
		if buf[0] == byte('\n') && !first {
			first = true
		} else if buf[0] == byte('\n') && end == 0 {
			end = i
		} else if buf[0] == byte('\n') && ini == 0 {
			ini = i
			f.Seek(-1*ini, 2)
			bufF := make([]byte, ini-end)
			f.Read(bufF)
			if strings.Contains(string(bufF), str) {
				return string(bufF)
			}
			end = 0
			ini = 0
		}
	}
}

//Energy returns the energy, in kcal/mol, of a previous xtb run. It
//fails if the output has no energy, which includes the case of an
//abnormally terminated run.
func (O *XTBHandle) Energy() (float64, error) {
	energyline := searchBackwards("total E       :", fmt.Sprintf("%s.out", O.inputname))
	if energyline == "" {
		return 0, Error{ErrNoEnergy, XTB, O.inputname, "", []string{"searchBackwards", "Energy"}, true}
	}
	split := strings.Fields(energyline)
	if len(split) < 4 {
		return 0, Error{ErrNoEnergy, XTB, O.inputname, energyline, []string{"Energy"}, true}
	}
	energy, err := strconv.ParseFloat(split[3], 64)
	if err != nil {
		return 0, Error{ErrNoEnergy, XTB, O.inputname, err.Error(), []string{"strconv.ParseFloat", "Energy"}, true}
	}
	return energy * conformer.H2Kcal, nil
}

var dielectric2Solvent = map[int]string{
	80: "h2o",
	5:  "chcl3",
	9:  "ch2cl2",
	21: "acetone",
	37: "acetonitrile",
	33: "methanol",
	2:  "toluene",
	7:  "thf",
	47: "dmso",
	38: "dmf",
}
