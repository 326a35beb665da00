/*
 * qm_test.go, part of goconformer.
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
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	conformer "github.com/rmera/goconformer"
	"github.com/rmera/goconformer/scan"
	v3 "github.com/rmera/goconformer/v3"
)

func optionsContain(opts []string, want string) bool {
	for _, o := range opts {
		if o == want {
			return true
		}
	}
	return false
}

func TestXTBBuildInput(Te *testing.T) {
	mol, err := conformer.XYZRead("../test/butane.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	xtb := NewXTBHandle()
	xtb.SetName(filepath.Join(dir, "conf0000", "point"))
	Q := &Calc{Method: "gfn2", Dielectric: 80}
	err = xtb.BuildInput(mol.Positions(), mol, Q)
	if err != nil {
		Te.Fatal(err)
	}
	//the job directory and the geometry must exist
	f, err := os.Open(filepath.Join(dir, "conf0000", "point.xyz"))
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	first, err := bufio.NewReader(f).ReadString('\n')
	if err != nil || strings.TrimSpace(first) != "14" {
		Te.Errorf("input geometry should start with the atom count, got %q", first)
	}
	opts := xtb.Options()
	for _, want := range []string{"-c 0", "-u 0", "--gfn 2", "--alpb h2o"} {
		if !optionsContain(opts, want) {
			Te.Errorf("options should contain %q: %v", want, opts)
		}
	}
	//an unknown method falls back to the default
	xtb2 := NewXTBHandle()
	xtb2.SetName(filepath.Join(dir, "other"))
	if err := xtb2.BuildInput(mol.Positions(), mol, &Calc{Method: "pm7"}); err != nil {
		Te.Fatal(err)
	}
	if !optionsContain(xtb2.Options(), "--gfn 2") {
		Te.Errorf("unknown method should fall back to gfn2: %v", xtb2.Options())
	}
	//nil coordinates are refused
	if err := xtb2.BuildInput(nil, mol, Q); err == nil {
		Te.Errorf("nil coordinates should be an error")
	}
}

func TestXTBEnergyParsing(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "job")
	out := []string{
		"some header",
		"   :: SUMMARY ::",
		"   total E       :    -5.070544440612",
		"   gradient norm :     0.000212",
		"normal termination of xtb",
	}
	err := os.WriteFile(name+".out", []byte(strings.Join(out, "\n")+"\n"), 0644)
	if err != nil {
		Te.Fatal(err)
	}
	xtb := NewXTBHandle()
	xtb.SetName(name)
	energy, err := xtb.Energy()
	if err != nil {
		Te.Fatal(err)
	}
	want := -5.070544440612 * conformer.H2Kcal
	if math.Abs(energy-want) > 1e-6 {
		Te.Errorf("wrong energy: got %f, want %f", energy, want)
	}
	//no energy line at all
	xtb.SetName(filepath.Join(dir, "nothing"))
	if _, err := xtb.Energy(); err == nil {
		Te.Errorf("missing output should be an error")
	}
}

//fakeEngine pretends to be a QM program: its "energy" is the backbone
//dihedral of the geometry it was given, and it can be told to fail for
//job names containing a marker.
type fakeEngine struct {
	name   string
	energy float64
	failOn string
	mu     *sync.Mutex
	names  *[]string
}

func (f *fakeEngine) SetName(name string) { f.name = name }

func (f *fakeEngine) BuildInput(coords *v3.Matrix, atoms conformer.AtomMultiCharger, Q *Calc) error {
	f.energy = conformer.Rad2Deg * conformer.Dihedral(coords.VecView(0), coords.VecView(1), coords.VecView(2), coords.VecView(3))
	f.mu.Lock()
	*f.names = append(*f.names, f.name)
	f.mu.Unlock()
	return nil
}

func (f *fakeEngine) Run(wait bool) error {
	if f.failOn != "" && strings.Contains(f.name, f.failOn) {
		return Error{ErrNotRunning, "fake", f.name, "", nil, true}
	}
	return nil
}

func (f *fakeEngine) Energy() (float64, error) {
	return f.energy, nil
}

func TestEvaluate(Te *testing.T) {
	mol, err := conformer.XYZRead("../test/butane.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	backbone, err := conformer.NewTorsion(mol, 0, 1, 2, 3)
	if err != nil {
		Te.Fatal(err)
	}
	mesh := scan.NewMesh([][]float64{{60, 180, 300}})
	store, err := scan.Generate(mol, []*conformer.Torsion{backbone}, mesh, nil, false)
	if err != nil {
		Te.Fatal(err)
	}
	var mu sync.Mutex
	var names []string
	newHandle := func() Handle {
		return &fakeEngine{failOn: "conf0001", mu: &mu, names: &names}
	}
	err = Evaluate(store, mol, &Calc{}, newHandle, 2, "butane")
	if err != nil {
		Te.Fatal(err)
	}
	//successful jobs landed in their own slots, with the energy the
	//engine computed from their own geometry
	e0 := store.Energy(0)
	if math.IsNaN(e0) || math.Abs(e0-60) > 1e-6 {
		Te.Errorf("record 0 should have energy 60, got %f", e0)
	}
	e2 := store.Energy(2)
	if math.IsNaN(e2) || math.Abs(math.Abs(e2)-60) > 1e-6 { //300 wraps to -60
		Te.Errorf("record 2 should have energy -60, got %f", e2)
	}
	//the failed job left NaN and didn't stop the rest
	if !math.IsNaN(store.Energy(1)) {
		Te.Errorf("failed record should keep NaN, got %f", store.Energy(1))
	}
	if len(names) != 3 {
		Te.Errorf("all 3 jobs should have been attempted, got %d", len(names))
	}
	for _, n := range names {
		if !strings.HasPrefix(n, "butane/conf") {
			Te.Errorf("job name should carry the prefix: %s", n)
		}
	}
}
