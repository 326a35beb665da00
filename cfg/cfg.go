/*
 * cfg.go, part of goconformer.
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

//Package cfg reads the YAML configuration of a torsion scan run.
package cfg

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rmera/goconformer/scan"
	"gopkg.in/yaml.v3"
)

// Sampling wraps a scan.Sampling so it can be read from YAML: a plain
// integer means a step count for the dimension, a list of numbers
// means explicit offsets from the reference.
type Sampling struct {
	S scan.Sampling
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (s *Sampling) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var count int
		if err := n.Decode(&count); err != nil {
			return fmt.Errorf("a scalar sampling must be an integer step count: %w", err)
		}
		if count < 0 {
			return fmt.Errorf("step count cannot be negative: %d", count)
		}
		s.S = scan.StepCount(count)
	case yaml.SequenceNode:
		var offsets []float64
		if err := n.Decode(&offsets); err != nil {
			return fmt.Errorf("a sequence sampling must be a list of offsets: %w", err)
		}
		s.S = scan.Offsets(offsets)
	default:
		return fmt.Errorf("a sampling must be an integer or a list of offsets")
	}
	return nil
}

// Cfg is a structure containing the parameters specified in the
// configuration file. It can be instanced through the New function or
// by "hand". If it is instanced by hand, please use the Check method
// to check if the Cfg meets the requirements.
type Cfg struct {
	// Geometry is the XYZ file with the input structure.
	Geometry string `yaml:"geometry"`

	// Charge is the total charge of the system.
	Charge int `yaml:"charge"`

	// Multi is the multiplicity of the system. 0 means 1.
	Multi int `yaml:"multi"`

	// Torsions are the torsions to scan, as four 0-based atom indexes
	// each. If empty, the rotatable bonds of the molecule are used.
	Torsions [][4]int `yaml:"torsions"`

	// Samplings describe how each torsion is sampled: an integer step
	// count or a list of offset angles, one entry per torsion.
	Samplings []Sampling `yaml:"samplings"`

	// Reference are the reference angles, one per torsion. If empty,
	// all references are zero.
	Reference []float64 `yaml:"reference"`

	// NoCollisionCheck skips the steric check on each conformer.
	NoCollisionCheck bool `yaml:"noCollisionCheck"`

	// Engine is the external energy program. Empty means no energy
	// evaluation. Currently only "xtb" is supported.
	Engine string `yaml:"engine"`

	// Method is the method for the engine (e.g. gfn2, gfnff).
	Method string `yaml:"method"`

	// Dielectric selects implicit solvation by dielectric constant.
	// 0 means gas phase.
	Dielectric float64 `yaml:"dielectric"`

	// Workers is the number of concurrent energy jobs. 0 means 1.
	Workers int `yaml:"workers"`

	// Out is the prefix for output files. Empty means "scan".
	Out string `yaml:"out"`

	// Snapshot, if set, is the file the finished store is saved to.
	Snapshot string `yaml:"snapshot"`

	// Plot, if set, is the PNG file the energy profile is plotted to.
	Plot string `yaml:"plot"`
}

// New opens and decodes the specified configuration file. The file
// must be a YAML file. This function automatically calls the Check
// method to check the integrity of Cfg.
func New(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Cfg
	r := bufio.NewReader(f)
	dec := yaml.NewDecoder(r)
	err = dec.Decode(&c)
	if err != nil {
		return nil, err
	}

	err = c.Check()
	if err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}

	return &c, nil
}

// Check checks if Cfg is correct. It returns an error if a field
// doesn't meet the requirements, before any work is done.
func (c *Cfg) Check() error {
	if c.Geometry == "" {
		return fmt.Errorf("a geometry file is required")
	}

	if len(c.Samplings) == 0 {
		return fmt.Errorf("at least one sampling is required")
	}

	if len(c.Torsions) != 0 && len(c.Torsions) != len(c.Samplings) {
		return fmt.Errorf("%d torsions but %d samplings", len(c.Torsions), len(c.Samplings))
	}

	if len(c.Reference) != 0 && len(c.Reference) != len(c.Samplings) {
		return fmt.Errorf("%d reference angles but %d samplings", len(c.Reference), len(c.Samplings))
	}

	if c.Multi < 0 || c.Workers < 0 {
		return fmt.Errorf("multi and workers cannot be negative")
	}

	if c.Engine != "" && c.Engine != "xtb" {
		return fmt.Errorf("unsupported engine: %s", c.Engine)
	}

	if c.Multi == 0 {
		c.Multi = 1
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Out == "" {
		c.Out = "scan"
	}

	return nil
}

// ScanSamplings returns the samplings as the scan package takes them.
func (c *Cfg) ScanSamplings() []scan.Sampling {
	ret := make([]scan.Sampling, len(c.Samplings))
	for i, s := range c.Samplings {
		ret[i] = s.S
	}
	return ret
}
