package matcher

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iota-uz/camp-sdk/pkg/transform"
)

//go:embed aliases.yaml
var defaultAliases []byte

// AliasTable maps a normalized alternate spelling to the normalized canonical
// full name. It is static for the whole run.
type AliasTable map[string]string

type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

func ParseAliases(data []byte) (AliasTable, error) {
	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse aliases: %w", err)
	}
	t := make(AliasTable, len(f.Aliases))
	for alias, canonical := range f.Aliases {
		a, c := transform.NormalizeName(alias), transform.NormalizeName(canonical)
		if a == "" || c == "" || a == c {
			continue
		}
		t[a] = c
	}
	return t, nil
}

// DefaultAliases returns the table shipped with the binary.
func DefaultAliases() AliasTable {
	t, err := ParseAliases(defaultAliases)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadAliases reads path and layers it over the default table. An empty path
// yields the defaults.
func LoadAliases(path string) (AliasTable, error) {
	t := DefaultAliases()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}
	extra, err := ParseAliases(data)
	if err != nil {
		return nil, err
	}
	for k, v := range extra {
		t[k] = v
	}
	return t, nil
}

func (t AliasTable) Lookup(normalizedName string) (string, bool) {
	v, ok := t[normalizedName]
	return v, ok
}
