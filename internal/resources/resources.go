// Package resources describes the clock and power-domain inventory of each
// hardware generation of the codec accelerator. Built-in tables cover the
// three supported generations; a YAML file can override individual fields
// for bring-up on unreleased platform revisions.
package resources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version identifies the hardware generation of the accelerator.
type Version int

const (
	Version1 Version = 1
	Version3 Version = 3
	Version4 Version = 4
)

// Table lists the named resources one generation expects from the platform.
type Table struct {
	Version Version `yaml:"version"`

	// Clocks is the shared top-level clock list, in enable order.
	Clocks []string `yaml:"clocks,omitempty"`

	Core0Clock    string `yaml:"core0Clock,omitempty"`
	Core0BusClock string `yaml:"core0BusClock,omitempty"`
	Core1Clock    string `yaml:"core1Clock,omitempty"`
	Core1BusClock string `yaml:"core1BusClock,omitempty"`

	DomainShared string `yaml:"domainShared,omitempty"`
	DomainCore0  string `yaml:"domainCore0,omitempty"`
	DomainCore1  string `yaml:"domainCore1,omitempty"`

	// WrapperSize is the byte size of the wrapper register window.
	WrapperSize uint32 `yaml:"wrapperSize,omitempty"`
}

const defaultWrapperSize = 0x1000

var builtin = map[Version]Table{
	Version1: {
		Version:     Version1,
		Clocks:      []string{"core", "iface", "bus"},
		WrapperSize: defaultWrapperSize,
	},
	Version3: {
		Version:     Version3,
		Clocks:      []string{"core", "iface", "bus", "mbus"},
		Core0Clock:  "vdec_core",
		Core1Clock:  "venc_core",
		WrapperSize: defaultWrapperSize,
	},
	Version4: {
		Version:       Version4,
		Clocks:        []string{"core", "iface", "bus"},
		Core0Clock:    "vcodec0_core",
		Core0BusClock: "vcodec0_bus",
		Core1Clock:    "vcodec1_core",
		Core1BusClock: "vcodec1_bus",
		DomainShared:  "venus",
		DomainCore0:   "vcodec0",
		DomainCore1:   "vcodec1",
		WrapperSize:   defaultWrapperSize,
	},
}

// ForVersion returns the built-in table for a generation. Unrecognized
// generations fall back to the first-generation table, matching the
// sequencing strategy selection.
func ForVersion(v Version) Table {
	t, ok := builtin[v]
	if !ok {
		return builtin[Version1]
	}
	return t
}

// Load reads a table override from a YAML file. Fields left empty in the
// file are filled from the built-in table for the declared generation.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("resources: read %s: %w", path, err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("resources: parse %s: %w", path, err)
	}

	t.normalize()
	return t, nil
}

func (t *Table) normalize() {
	def := ForVersion(t.Version)
	t.Version = def.Version

	if len(t.Clocks) == 0 {
		t.Clocks = def.Clocks
	}
	if t.Core0Clock == "" {
		t.Core0Clock = def.Core0Clock
	}
	if t.Core0BusClock == "" {
		t.Core0BusClock = def.Core0BusClock
	}
	if t.Core1Clock == "" {
		t.Core1Clock = def.Core1Clock
	}
	if t.Core1BusClock == "" {
		t.Core1BusClock = def.Core1BusClock
	}
	if t.DomainShared == "" {
		t.DomainShared = def.DomainShared
	}
	if t.DomainCore0 == "" {
		t.DomainCore0 = def.DomainCore0
	}
	if t.DomainCore1 == "" {
		t.DomainCore1 = def.DomainCore1
	}
	if t.WrapperSize == 0 {
		t.WrapperSize = def.WrapperSize
	}
}
