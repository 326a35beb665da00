/*
 * confplot.go, part of goconformer.
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

//Package confplot draws energy profiles of a finished torsion scan.
package confplot

import (
	"fmt"
	"math"

	"github.com/rmera/goconformer/scan"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Relative energy (kcal/mol)"
	p.Add(plotter.NewGrid())
	return p
}

//relativeEnergies collects the evaluated records of the store as
//(x, energy-minimum) points, with x given by xval. Records without an
//energy are left out.
func relativeEnergies(store *scan.Store, xval func(i int, r *scan.Record) float64) (plotter.XYs, error) {
	if store == nil || store.Len() == 0 {
		return nil, fmt.Errorf("confplot: nothing to plot")
	}
	_, min := store.MinEnergy()
	if math.IsNaN(min) {
		return nil, fmt.Errorf("confplot: no record has an energy")
	}
	var pts plotter.XYs
	store.Each(func(i int, r *scan.Record) bool {
		if math.IsNaN(r.Energy) {
			return true
		}
		pts = append(pts, plotter.XY{X: xval(i, r), Y: r.Energy - min})
		return true
	})
	return pts, nil
}

//EnergyByIndex plots the relative energy of every evaluated conformer
//against its dense index, and saves the plot to plotname (the format
//is taken from the extension).
func EnergyByIndex(store *scan.Store, title, plotname string) error {
	pts, err := relativeEnergies(store, func(i int, r *scan.Record) float64 { return float64(i) })
	if err != nil {
		return err
	}
	p := basicPlot(title, "Conformer index")
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("confplot: %w", err)
	}
	p.Add(line, points)
	if err := p.Save(14*vg.Centimeter, 10*vg.Centimeter, plotname); err != nil {
		return fmt.Errorf("confplot: %w", err)
	}
	return nil
}

//EnergyByAngle plots the relative energy of a one-torsion scan against
//the scanned angle. It refuses stores with more than one torsion, as
//those have no single x axis.
func EnergyByAngle(store *scan.Store, title, plotname string) error {
	if store.Len() > 0 && len(store.Record(0).Angles) != 1 {
		return fmt.Errorf("confplot: only one-torsion scans can be plotted by angle")
	}
	pts, err := relativeEnergies(store, func(i int, r *scan.Record) float64 { return r.Angles[0] })
	if err != nil {
		return err
	}
	p := basicPlot(title, "Dihedral (degrees)")
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("confplot: %w", err)
	}
	p.Add(line, points)
	if err := p.Save(14*vg.Centimeter, 10*vg.Centimeter, plotname); err != nil {
		return fmt.Errorf("confplot: %w", err)
	}
	return nil
}
