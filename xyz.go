/*
 * xyz.go, part of goconformer.
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/goconformer/v3"
)

//XYZRead reads the first geometry of the XYZ file with the given name
//and returns it as a molecule with zero charge and multiplicity 1.
//Atom order in the file is preserved.
func XYZRead(xyzname string) (*Molecule, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, CError{err.Error(), []string{"os.Open", "XYZRead"}}
	}
	defer xyzfile.Close()
	mol, err := XYZReadFrom(xyzfile)
	if err != nil {
		return nil, errDecorate(err, "XYZRead "+xyzname)
	}
	return mol, nil
}

//XYZReadFrom reads one XYZ geometry from r.
func XYZReadFrom(r io.Reader) (*Molecule, error) {
	xyz := bufio.NewReader(r)
	atoms, coords, err := xyzReadSnap(xyz)
	if err != nil {
		return nil, errDecorate(err, "XYZReadFrom")
	}
	mol, err := NewMolecule(coords, atoms, 0, 1)
	if err != nil {
		return nil, errDecorate(err, "XYZReadFrom")
	}
	return mol, nil
}

//xyzReadSnap reads one frame from an XYZ stream: the atom count line,
//the comment line, and one "Symbol x y z" line per atom.
func xyzReadSnap(xyz *bufio.Reader) ([]*Atom, *v3.Matrix, error) {
	line, err := xyz.ReadString('\n')
	if err != nil {
		return nil, nil, CError{"Ill formatted XYZ file: " + err.Error(), []string{"xyzReadSnap"}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, nil, CError{"Ill formatted XYZ file: " + err.Error(), []string{"xyzReadSnap"}}
	}
	if _, err := xyz.ReadString('\n'); err != nil { //comment line
		return nil, nil, CError{"Ill formatted XYZ file: " + err.Error(), []string{"xyzReadSnap"}}
	}
	atoms := make([]*Atom, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			return nil, nil, CError{fmt.Sprintf("Line %d ill formed: %s", i, err.Error()), []string{"xyzReadSnap"}}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, nil, CError{fmt.Sprintf("Line %d ill formed", i), []string{"xyzReadSnap"}}
		}
		atoms[i] = &Atom{Symbol: fields[0], Name: fields[0], ID: i + 1}
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, nil, CError{fmt.Sprintf("Coordinate %d of line %d ill formed: %s", j, i, err.Error()), []string{"xyzReadSnap"}}
			}
		}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, nil, CError{err.Error(), []string{"v3.NewMatrix", "xyzReadSnap"}}
	}
	return atoms, mcoords, nil
}

//XYZWrite writes the given coordinates and atoms as an XYZ file with
//the given name, overwriting it if it exists.
func XYZWrite(xyzname string, coords *v3.Matrix, mol Atomer) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return CError{err.Error(), []string{"os.Create", "XYZWrite"}}
	}
	defer out.Close()
	if err := XYZWriteTo(out, coords, mol, ""); err != nil {
		return errDecorate(err, "XYZWrite "+xyzname)
	}
	return nil
}

//XYZWriteTo writes one XYZ frame to w, with the given comment line.
//It can be called repeatedly on the same writer to produce a multi-XYZ
//stream. Atom count and order are written exactly as in mol.
func XYZWriteTo(w io.Writer, coords *v3.Matrix, mol Atomer, comment string) error {
	if coords.NVecs() != mol.Len() {
		return CError{fmt.Sprintf("%d atoms but %d coordinate rows", mol.Len(), coords.NVecs()), []string{"XYZWriteTo"}}
	}
	if _, err := fmt.Fprintf(w, "%-4d\n%s\n", mol.Len(), comment); err != nil {
		return CError{err.Error(), []string{"XYZWriteTo"}}
	}
	for i := 0; i < mol.Len(); i++ {
		_, err := fmt.Fprintf(w, "%-2s  %12.6f%12.6f%12.6f\n", mol.Atom(i).Symbol, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
		if err != nil {
			return CError{err.Error(), []string{"XYZWriteTo"}}
		}
	}
	return nil
}
