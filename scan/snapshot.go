/*
 * snapshot.go, part of goconformer.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/goconformer/v3"
)

//The snapshot format is a zstd-compressed line-oriented text: a
//"** natoms ntors prec" header, then per record an "@"-prefixed angle
//line, an "&"-prefixed collision/energy line, natoms lines of
//fixed-precision integer coordinates, and a "*" terminator.

const snapshotPrec = 5 //decimals kept for each coordinate

//SnapshotWrite writes the whole store to the file with the given name,
//overwriting it if it exists. The store must be non-empty and all its
//records must have the same atom count.
func SnapshotWrite(name string, store *Store) error {
	if store == nil || store.Len() == 0 {
		return Error{"nothing to snapshot", []string{"scan.SnapshotWrite"}}
	}
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), []string{"os.Create", "scan.SnapshotWrite"}}
	}
	defer f.Close()
	h, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return Error{err.Error(), []string{"zstd.NewWriter", "scan.SnapshotWrite"}}
	}
	defer h.Close()
	natoms := store.Record(0).Coords.NVecs()
	ntors := len(store.Record(0).Angles)
	fmt.Fprintf(h, "** %d %d %d\n", natoms, ntors, snapshotPrec)
	p := math.Pow(10, snapshotPrec)
	var werr error
	store.Each(func(i int, r *Record) bool {
		if r.Coords.NVecs() != natoms || len(r.Angles) != ntors {
			werr = Error{fmt.Sprintf("record %d does not match the header", i), []string{"scan.SnapshotWrite"}}
			return false
		}
		fields := make([]string, ntors)
		for j, a := range r.Angles {
			fields[j] = strconv.FormatFloat(a, 'f', -1, 64)
		}
		fmt.Fprintf(h, "@ %s\n", strings.Join(fields, " "))
		fmt.Fprintf(h, "& %d %s\n", int(r.Colliding), strconv.FormatFloat(r.Energy, 'f', -1, 64))
		for j := 0; j < natoms; j++ {
			fmt.Fprintf(h, "%d %d %d\n",
				int(math.RoundToEven(r.Coords.At(j, 0)*p)),
				int(math.RoundToEven(r.Coords.At(j, 1)*p)),
				int(math.RoundToEven(r.Coords.At(j, 2)*p)))
		}
		fmt.Fprint(h, "*\n")
		return true
	})
	return werr
}

//SnapshotRead reads a snapshot file back into a frozen store.
func SnapshotRead(name string) (*Store, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), []string{"os.Open", "scan.SnapshotRead"}}
	}
	defer f.Close()
	z, err := zstd.NewReader(f)
	if err != nil {
		return nil, Error{err.Error(), []string{"zstd.NewReader", "scan.SnapshotRead"}}
	}
	defer z.Close()
	h := bufio.NewReader(z)
	line, err := h.ReadString('\n')
	if err != nil {
		return nil, Error{"can't read header: " + err.Error(), []string{"scan.SnapshotRead"}}
	}
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "**" {
		return nil, Error{"malformed header: " + strings.TrimSpace(line), []string{"scan.SnapshotRead"}}
	}
	natoms, err1 := strconv.Atoi(fields[1])
	ntors, err2 := strconv.Atoi(fields[2])
	prec, err3 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, Error{"malformed header: " + strings.TrimSpace(line), []string{"scan.SnapshotRead"}}
	}
	p := math.Pow(10, float64(prec))
	store := NewStore()
	for {
		r, err := snapshotReadRecord(h, natoms, ntors, p)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Error{fmt.Sprintf("record %d: %s", store.Len(), err.Error()), []string{"scan.SnapshotRead"}}
		}
		store.append(r)
	}
	store.freeze()
	return store, nil
}

func snapshotReadRecord(h *bufio.Reader, natoms, ntors int, p float64) (*Record, error) {
	line, err := h.ReadString('\n')
	if err != nil {
		return nil, io.EOF //a snapshot ends cleanly after a "*"
	}
	fields := strings.Fields(line)
	if len(fields) != ntors+1 || fields[0] != "@" {
		return nil, fmt.Errorf("malformed angle line: %s", strings.TrimSpace(line))
	}
	r := &Record{Angles: make([]float64, ntors), Energy: math.NaN()}
	for j := 0; j < ntors; j++ {
		r.Angles[j], err = strconv.ParseFloat(fields[j+1], 64)
		if err != nil {
			return nil, err
		}
	}
	line, err = h.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("truncated record")
	}
	fields = strings.Fields(line)
	if len(fields) != 3 || fields[0] != "&" {
		return nil, fmt.Errorf("malformed metadata line: %s", strings.TrimSpace(line))
	}
	coll, err := strconv.Atoi(fields[1])
	if err != nil || coll < 0 || coll > 2 {
		return nil, fmt.Errorf("malformed collision flag: %s", fields[1])
	}
	r.Colliding = Collision(coll)
	r.Energy, err = strconv.ParseFloat(fields[2], 64) //parses "NaN" too
	if err != nil {
		return nil, err
	}
	r.Coords = v3.Zeros(natoms)
	var x, y, z int
	for j := 0; j < natoms; j++ {
		line, err = h.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("truncated record")
		}
		if _, err = fmt.Sscanf(line, "%d %d %d", &x, &y, &z); err != nil {
			return nil, fmt.Errorf("malformed coordinate line: %s", strings.TrimSpace(line))
		}
		r.Coords.Set(j, 0, float64(x)/p)
		r.Coords.Set(j, 1, float64(y)/p)
		r.Coords.Set(j, 2, float64(z)/p)
	}
	line, err = h.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("missing record terminator")
	}
	if strings.TrimSpace(line) != "*" {
		return nil, fmt.Errorf("missing record terminator: %s", strings.TrimSpace(line))
	}
	return r, nil
}
