package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NameTable supplies citizen names for the population systems.
type NameTable struct {
	First  []string `yaml:"first"`
	Family []string `yaml:"family"`
}

// LoadNameTable reads name pools from YAML.
func LoadNameTable(path string) (*NameTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name list %s: %w", path, err)
	}
	var t NameTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse name list: %w", err)
	}
	if len(t.First) == 0 || len(t.Family) == 0 {
		return nil, fmt.Errorf("name list %s: empty pool", path)
	}
	return &t, nil
}

// Pick returns a full name deterministically derived from n.
func (t *NameTable) Pick(n uint64) string {
	first := t.First[n%uint64(len(t.First))]
	family := t.Family[(n/uint64(len(t.First)))%uint64(len(t.Family))]
	return first + " " + family
}

// DefaultNameTable returns a small built-in pool.
func DefaultNameTable() *NameTable {
	return &NameTable{
		First:  []string{"Aldric", "Betha", "Corin", "Dena", "Edwin", "Fenna", "Garron", "Hilde", "Ivo", "Jora"},
		Family: []string{"Ashdown", "Briar", "Coldwell", "Dunmore", "Emberly", "Fallow", "Greystone", "Hollow"},
	}
}
