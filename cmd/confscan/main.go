/*
 * main.go, part of goconformer.
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

//confscan runs a systematic torsion scan described by a YAML
//configuration file: it reads a geometry, enumerates conformers over a
//mesh of torsion angles, and optionally evaluates their energies with
//an external program, saves the ensemble and plots the profile.
package main

import (
	"fmt"
	"log"
	"math"
	"os"

	conformer "github.com/rmera/goconformer"
	"github.com/rmera/goconformer/cfg"
	"github.com/rmera/goconformer/confplot"
	"github.com/rmera/goconformer/qm"
	"github.com/rmera/goconformer/scan"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("The path of the configuration file must be specified in the arguments")
	}

	log.Printf("Reading configuration file `%s`\n", os.Args[1])
	c, err := cfg.New(os.Args[1])
	if err != nil {
		log.Fatal(fmt.Errorf("cfg.New: %w", err))
	}

	log.Printf("Reading geometry `%s`\n", c.Geometry)
	mol, err := conformer.XYZRead(c.Geometry)
	if err != nil {
		log.Fatal(err)
	}
	mol.SetCharge(c.Charge)
	mol.SetMulti(c.Multi)

	torsions, err := pickTorsions(mol, c)
	if err != nil {
		log.Fatal(err)
	}
	for _, t := range torsions {
		log.Println("Scanning", t)
	}

	scheds, err := scan.Schedules(c.ScanSamplings(), c.Reference)
	if err != nil {
		log.Fatal(err)
	}
	mesh := scan.NewMesh(scheds)
	log.Printf("Generating %d conformers\n", mesh.Len())
	store, err := scan.Generate(mol, torsions, mesh, nil, !c.NoCollisionCheck)
	if err != nil {
		log.Fatal(err)
	}

	if err := writeEnsemble(c.Out+"_all.xyz", store, mol); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s_all.xyz\n", c.Out)

	if c.Engine != "" {
		log.Printf("Evaluating energies with %s, %d workers\n", c.Engine, c.Workers)
		Q := &qm.Calc{Method: c.Method, Dielectric: c.Dielectric}
		newHandle := func() qm.Handle { return qm.NewXTBHandle() }
		if err := qm.Evaluate(store, mol, Q, newHandle, c.Workers, c.Out); err != nil {
			log.Fatal(err)
		}
		if err := writeEnergies(c.Out+"_energies.txt", store); err != nil {
			log.Fatal(err)
		}
		if i, e := store.MinEnergy(); i >= 0 {
			log.Printf("Lowest conformer: %d (%.3f kcal/mol)\n", i, e)
			r := store.Record(i)
			comment := fmt.Sprintf("conformer %d angles %v energy %.6f", i, r.Angles, e)
			if err := writeConformer(c.Out+"_min.xyz", r, mol, comment); err != nil {
				log.Fatal(err)
			}
		} else {
			log.Println("No conformer could be evaluated")
		}
	}

	if c.Snapshot != "" {
		if err := scan.SnapshotWrite(c.Snapshot, store); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote snapshot %s\n", c.Snapshot)
	}

	if c.Plot != "" {
		err := plotProfile(c.Plot, store, len(torsions))
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote plot %s\n", c.Plot)
	}

	log.Println("Done")
}

//pickTorsions builds the scanned torsions: the ones given in the
//configuration, or the molecule's own rotatable bonds.
func pickTorsions(mol *conformer.Molecule, c *cfg.Cfg) ([]*conformer.Torsion, error) {
	if len(c.Torsions) == 0 {
		torsions := mol.TorsionalModes()
		if len(torsions) != len(c.Samplings) {
			return nil, fmt.Errorf("molecule has %d rotatable bonds but %d samplings were given", len(torsions), len(c.Samplings))
		}
		return torsions, nil
	}
	torsions := make([]*conformer.Torsion, len(c.Torsions))
	for i, t := range c.Torsions {
		tor, err := conformer.NewTorsion(mol, t[0], t[1], t[2], t[3])
		if err != nil {
			return nil, err
		}
		torsions[i] = tor
	}
	return torsions, nil
}

//writeEnsemble writes all conformers as a multi-XYZ file, each frame
//commented with its index, angles and collision flag.
func writeEnsemble(name string, store *scan.Store, mol conformer.Atomer) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	var werr error
	store.Each(func(i int, r *scan.Record) bool {
		comment := fmt.Sprintf("conformer %d angles %v collision %v", i, r.Angles, r.Colliding)
		werr = conformer.XYZWriteTo(f, r.Coords, mol, comment)
		return werr == nil
	})
	return werr
}

//writeConformer writes one record as an XYZ file.
func writeConformer(name string, r *scan.Record, mol conformer.Atomer, comment string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return conformer.XYZWriteTo(f, r.Coords, mol, comment)
}

//writeEnergies writes a table of index, angles, collision flag and
//energy. Conformers that could not be evaluated show as NaN.
func writeEnergies(name string, store *scan.Store) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintf(f, "#index angles collision energy(kcal/mol)\n")
	store.Each(func(i int, r *scan.Record) bool {
		fmt.Fprintf(f, "%d %v %v %f\n", i, r.Angles, r.Colliding, r.Energy)
		return true
	})
	return nil
}

//plotProfile plots energy against angle for one-torsion scans, and
//against conformer index otherwise.
func plotProfile(name string, store *scan.Store, ntors int) error {
	if _, e := store.MinEnergy(); math.IsNaN(e) {
		return fmt.Errorf("nothing to plot: no conformer has an energy")
	}
	if ntors == 1 {
		return confplot.EnergyByAngle(store, "Torsion profile", name)
	}
	return confplot.EnergyByIndex(store, "Conformer energies", name)
}
