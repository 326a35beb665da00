/*
 * scan_test.go, part of goconformer.
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
	"math"
	"os"
	"testing"

	conformer "github.com/rmera/goconformer"
	v3 "github.com/rmera/goconformer/v3"
)

func slicesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestSchedules(Te *testing.T) {
	scheds, err := Schedules([]Sampling{StepCount(4)}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !slicesEqual(scheds[0], []float64{0, 90, 180, 270}) {
		Te.Errorf("wrong schedule for 4 steps: %v", scheds[0])
	}
	//7 does not divide 360: integer step, last gap larger
	scheds, err = Schedules([]Sampling{StepCount(7)}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !slicesEqual(scheds[0], []float64{0, 51, 102, 153, 204, 255, 306}) {
		Te.Errorf("wrong schedule for 7 steps: %v", scheds[0])
	}
	//0 steps holds the dimension at its reference
	scheds, err = Schedules([]Sampling{StepCount(0), StepCount(3)}, []float64{42, 10})
	if err != nil {
		Te.Fatal(err)
	}
	if !slicesEqual(scheds[0], []float64{42}) {
		Te.Errorf("0 steps should sample only the reference: %v", scheds[0])
	}
	if !slicesEqual(scheds[1], []float64{10, 130, 250}) {
		Te.Errorf("wrong referenced schedule: %v", scheds[1])
	}
	//explicit offsets keep their order, can be negative or beyond 360
	scheds, err = Schedules([]Sampling{Offsets{-30, 0, 45, 400}}, []float64{100})
	if err != nil {
		Te.Fatal(err)
	}
	if !slicesEqual(scheds[0], []float64{70, 100, 145, 500}) {
		Te.Errorf("wrong offset schedule: %v", scheds[0])
	}
	//a nil sampling holds its dimension too
	scheds, err = Schedules([]Sampling{nil}, []float64{7})
	if err != nil {
		Te.Fatal(err)
	}
	if !slicesEqual(scheds[0], []float64{7}) {
		Te.Errorf("nil sampling should sample only the reference: %v", scheds[0])
	}
	//reference length mismatch fails before any work
	_, err = Schedules([]Sampling{StepCount(2), StepCount(2)}, []float64{0})
	if err == nil {
		Te.Errorf("length mismatch should be an error")
	}
}

func TestMesh(Te *testing.T) {
	mesh := NewMesh([][]float64{{0, 90}, {0, 180}})
	if mesh.Len() != 4 || mesh.Dims() != 2 {
		Te.Fatalf("wrong mesh size: %d %d", mesh.Len(), mesh.Dims())
	}
	want := [][]float64{{0, 0}, {0, 180}, {90, 0}, {90, 180}}
	var got [][]float64
	for {
		a, ok := mesh.Next(nil)
		if !ok {
			break
		}
		got = append(got, append([]float64{}, a...))
	}
	if len(got) != 4 {
		Te.Fatalf("mesh yielded %d assignments", len(got))
	}
	for i := range want {
		if !slicesEqual(got[i], want[i]) {
			Te.Errorf("assignment %d should be %v, got %v", i, want[i], got[i])
		}
	}
	//exhausted until reset
	if _, ok := mesh.Next(nil); ok {
		Te.Errorf("exhausted mesh should not yield")
	}
	mesh.Reset()
	a, ok := mesh.Next(nil)
	if !ok || !slicesEqual(a, want[0]) {
		Te.Errorf("reset mesh should restart at %v, got %v", want[0], a)
	}
	//random access matches enumeration order
	for i := range want {
		if !slicesEqual(mesh.Assignment(i, nil), want[i]) {
			Te.Errorf("Assignment(%d) should be %v", i, want[i])
		}
	}
	//empty dimension, or no dimensions at all, empty mesh
	if NewMesh([][]float64{{0, 90}, {}}).Len() != 0 {
		Te.Errorf("mesh with an empty schedule should be empty")
	}
	if NewMesh(nil).Len() != 0 {
		Te.Errorf("mesh with no schedules should be empty")
	}
}

//fakeConformer records torsion assignments in its coordinates: row i
//holds the last angle set for torsion i. It "collides" whenever its
//first angle is at least 180.
type fakeConformer struct {
	angles []float64
	calls  int
	fail   bool
}

func newFakeConformer(ntors int) *fakeConformer {
	return &fakeConformer{angles: make([]float64, ntors)}
}

func (f *fakeConformer) SetTorsions(torsions []*conformer.Torsion, angles []float64) error {
	if f.fail {
		return Error{"made to fail", nil}
	}
	if len(torsions) != len(angles) || len(angles) != len(f.angles) {
		return Error{"wrong number of angles", nil}
	}
	copy(f.angles, angles)
	f.calls++
	return nil
}

func (f *fakeConformer) Positions() *v3.Matrix {
	ret := v3.Zeros(len(f.angles))
	for i, a := range f.angles {
		ret.Set(i, 0, a)
	}
	return ret
}

func (f *fakeConformer) HasCollidingAtoms() bool {
	return f.angles[0] >= 180
}

func (f *fakeConformer) TorsionalModes() []*conformer.Torsion {
	tors := make([]*conformer.Torsion, len(f.angles))
	for i := range tors {
		tors[i] = &conformer.Torsion{A: 0, B: 1, C: 2, D: 3}
	}
	return tors
}

func TestGenerate(Te *testing.T) {
	handle := newFakeConformer(2)
	mesh := NewMesh([][]float64{{0, 180}, {0, 120, 240}})
	store, err := Generate(handle, nil, mesh, nil, true)
	if err != nil {
		Te.Fatal(err)
	}
	if store.Len() != 6 {
		Te.Fatalf("store should have 6 records, got %d", store.Len())
	}
	if handle.calls != 6 {
		Te.Errorf("handle should have been set 6 times, got %d", handle.calls)
	}
	for i := 0; i < store.Len(); i++ {
		r := store.Record(i)
		want := mesh.Assignment(i, nil)
		if !slicesEqual(r.Angles, want) {
			Te.Errorf("record %d angles should be %v, got %v", i, want, r.Angles)
		}
		//coordinates were copied out at the record's own assignment
		if !slicesEqual([]float64{r.Coords.At(0, 0), r.Coords.At(1, 0)}, want) {
			Te.Errorf("record %d coordinates don't match its assignment", i)
		}
		wantColl := CollisionAbsent
		if want[0] >= 180 {
			wantColl = CollisionFound
		}
		if r.Colliding != wantColl {
			Te.Errorf("record %d collision should be %v, got %v", i, wantColl, r.Colliding)
		}
		if !math.IsNaN(r.Energy) {
			Te.Errorf("record %d should start with NaN energy", i)
		}
	}
	//the handle ends at the last assignment
	if !slicesEqual(handle.angles, []float64{180, 240}) {
		Te.Errorf("handle should end at the last assignment, got %v", handle.angles)
	}
}

func TestGenerateNoCollisionCheck(Te *testing.T) {
	handle := newFakeConformer(1)
	mesh := NewMesh([][]float64{{0, 180, 270}})
	store, err := Generate(handle, nil, mesh, nil, false)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < store.Len(); i++ {
		//a skipped check is not the same as "no collision"
		if store.Record(i).Colliding != CollisionUnknown {
			Te.Errorf("record %d should carry CollisionUnknown, got %v", i, store.Record(i).Colliding)
		}
	}
}

func TestGenerateErrors(Te *testing.T) {
	handle := newFakeConformer(2)
	mesh := NewMesh([][]float64{{0, 90}})
	//nil torsions take the handle's 2 modes, mesh has 1 dimension
	if _, err := Generate(handle, nil, mesh, nil, false); err == nil {
		Te.Errorf("dimension mismatch should be an error")
	}
	//a non-empty store would break the index correspondence
	handle1 := newFakeConformer(1)
	store, err := Generate(handle1, nil, mesh, nil, false)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := Generate(handle1, nil, mesh, store, false); err == nil {
		Te.Errorf("non-empty store should be refused")
	}
	//a failing handle aborts the pass instead of skipping points
	bad := newFakeConformer(1)
	bad.fail = true
	if _, err := Generate(bad, nil, mesh, nil, false); err == nil {
		Te.Errorf("handle failure should abort generation")
	}
}

func TestStoreEnergies(Te *testing.T) {
	handle := newFakeConformer(1)
	mesh := NewMesh([][]float64{{0, 120, 240}})
	store, err := Generate(handle, nil, mesh, nil, false)
	if err != nil {
		Te.Fatal(err)
	}
	if i, e := store.MinEnergy(); i != -1 || !math.IsNaN(e) {
		Te.Errorf("unevaluated store should have no minimum: %d %f", i, e)
	}
	store.SetEnergy(0, -3.5)
	store.SetEnergy(2, -7.25)
	if !math.IsNaN(store.Energy(1)) {
		Te.Errorf("record 1 should still be NaN")
	}
	i, e := store.MinEnergy()
	if i != 2 || e != -7.25 {
		Te.Errorf("wrong minimum: %d %f", i, e)
	}
	visited := 0
	store.Each(func(i int, r *Record) bool {
		visited++
		return true
	})
	if visited != 3 {
		Te.Errorf("Each should visit all 3 records, visited %d", visited)
	}
}

func TestButaneScan(Te *testing.T) {
	mol, err := conformer.XYZRead("../test/butane.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	backbone, err := conformer.NewTorsion(mol, 0, 1, 2, 3)
	if err != nil {
		Te.Fatal(err)
	}
	scheds, err := Schedules([]Sampling{Offsets{0, 120, 240}}, []float64{180})
	if err != nil {
		Te.Fatal(err)
	}
	mesh := NewMesh(scheds)
	store, err := Generate(mol, []*conformer.Torsion{backbone}, mesh, nil, true)
	if err != nil {
		Te.Fatal(err)
	}
	if store.Len() != 3 {
		Te.Fatalf("expected 3 conformers, got %d", store.Len())
	}
	//each stored geometry realizes its own assignment, including the
	//one past 360
	for i := 0; i < store.Len(); i++ {
		r := store.Record(i)
		c := r.Coords
		got := conformer.Rad2Deg * conformer.Dihedral(c.VecView(0), c.VecView(1), c.VecView(2), c.VecView(3))
		diff := math.Abs(got - r.Angles[0])
		for diff > 180 {
			diff = math.Abs(diff - 360)
		}
		if diff > 1e-6 {
			Te.Errorf("conformer %d: asked for %f, geometry has %f", i, r.Angles[0], got)
		}
		if r.Colliding == CollisionUnknown {
			Te.Errorf("conformer %d: collision check ran but flag is unknown", i)
		}
	}
}

func TestSnapshotRoundTrip(Te *testing.T) {
	handle := newFakeConformer(2)
	mesh := NewMesh([][]float64{{0, 180}, {-30, 45.5}})
	store, err := Generate(handle, nil, mesh, nil, true)
	if err != nil {
		Te.Fatal(err)
	}
	store.SetEnergy(1, -12.125)
	name := "../test/snapshot.stf"
	if err := SnapshotWrite(name, store); err != nil {
		Te.Fatal(err)
	}
	defer os.Remove(name)
	back, err := SnapshotRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != store.Len() {
		Te.Fatalf("round trip changed record count: %d", back.Len())
	}
	for i := 0; i < store.Len(); i++ {
		orig := store.Record(i)
		got := back.Record(i)
		if !slicesEqual(orig.Angles, got.Angles) {
			Te.Errorf("record %d angles changed: %v vs %v", i, orig.Angles, got.Angles)
		}
		if orig.Colliding != got.Colliding {
			Te.Errorf("record %d collision flag changed", i)
		}
		if math.IsNaN(orig.Energy) != math.IsNaN(got.Energy) {
			Te.Errorf("record %d NaN energy not preserved", i)
		}
		if !math.IsNaN(orig.Energy) && math.Abs(orig.Energy-got.Energy) > 1e-9 {
			Te.Errorf("record %d energy changed: %f vs %f", i, orig.Energy, got.Energy)
		}
		for j := 0; j < orig.Coords.NVecs(); j++ {
			for k := 0; k < 3; k++ {
				if math.Abs(orig.Coords.At(j, k)-got.Coords.At(j, k)) > 1e-4 {
					Te.Errorf("record %d coordinate %d,%d changed", i, j, k)
				}
			}
		}
	}
}
