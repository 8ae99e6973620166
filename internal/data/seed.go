package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedSet holds the records each collection starts with.
type SeedSet struct {
	Books []Book `yaml:"books"`
	Todos []Todo `yaml:"todos"`
}

// DefaultSeed returns the built-in seed set: the default books and no todos.
func DefaultSeed() SeedSet {
	return SeedSet{Books: DefaultBooks()}
}

// LoadSeedFile reads a YAML seed file of the form
//
//	books:
//	  - title: Dune
//	    author: Frank Herbert
//	    ...
//	todos:
//	  - title: Read Dune
//	    ...
//
// An empty path returns DefaultSeed. A collection missing from the file
// starts empty. Unknown keys are rejected.
func LoadSeedFile(path string) (SeedSet, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedSet{}, fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedSet
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return SeedSet{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seed, nil
}
