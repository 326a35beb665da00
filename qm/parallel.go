/*
 * parallel.go, part of goconformer.
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
	"log"
	"sync"

	conformer "github.com/rmera/goconformer"
	"github.com/rmera/goconformer/scan"
)

//Evaluate computes the energy of every record of a frozen store, using
//up to workers concurrent engine handles built by newHandle. Each job
//runs under its own name, prefix/confNNNN/point, so the engines'
//files stay apart. A failed job logs the failure and leaves NaN in its
//record; it never aborts the other jobs. Each record's energy slot is
//written by exactly one worker, so no locking is needed on the store.
//
//The store's coordinates are used as generated; the molecule handle
//that produced them is not touched here, only its topology (atoms,
//charge, multiplicity) through mol.
func Evaluate(store *scan.Store, mol conformer.AtomMultiCharger, Q *Calc, newHandle func() Handle, workers int, prefix string) error {
	if store == nil || store.Len() == 0 {
		return Error{"nothing to evaluate", "", prefix, "", []string{"qm.Evaluate"}, true}
	}
	if mol == nil || Q == nil || newHandle == nil {
		return Error{"nil molecule, settings or handle factory", "", prefix, "", []string{"qm.Evaluate"}, true}
	}
	if workers < 1 {
		workers = 1
	}
	if prefix == "" {
		prefix = "scan"
	}
	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				energy, err := evaluateOne(store.Record(i), mol, Q, newHandle(), fmt.Sprintf("%s/conf%04d/point", prefix, i))
				if err != nil {
					log.Printf("conformer %d failed, leaving NaN: %v", i, err)
					continue
				}
				store.SetEnergy(i, energy)
			}
		}()
	}
	for i := 0; i < store.Len(); i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
	return nil
}

//evaluateOne runs one record through one handle, waiting for the
//result.
func evaluateOne(r *scan.Record, mol conformer.AtomMultiCharger, Q *Calc, h Handle, name string) (float64, error) {
	h.SetName(name)
	if err := h.BuildInput(r.Coords, mol, Q); err != nil {
		return 0, err
	}
	if err := h.Run(true); err != nil {
		return 0, err
	}
	return h.Energy()
}
