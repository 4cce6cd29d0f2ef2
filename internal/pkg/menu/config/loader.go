package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lemewp/Intervalomedio/internal/pkg/menu"
)

type YamlParameter struct {
	Name      string   `yaml:"name"`
	ID        int      `yaml:"id"`
	Type      string   `yaml:"type"`
	Value     float64  `yaml:"value"`
	Increment float64  `yaml:"increment"`
	States    []string `yaml:"states"`
	State     int      `yaml:"state"`
}

type YamlSection struct {
	Name       string          `yaml:"name"`
	Parameters []YamlParameter `yaml:"parameters"`
}

type YamlMenu struct {
	Sections []YamlSection `yaml:"sections"`
}

// Load reads and builds a menu definition file.
func Load(path string) ([]SectionDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading menu definition failed: %w", err)
	}
	return Parse(data)
}

// Parse builds sections from yaml data. The definition is validated up
// front: a broken file is rejected as a whole, the running menu keeps
// its previous layout.
func Parse(data []byte) ([]SectionDef, error) {
	var cfg YamlMenu
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing yaml failed: %w", err)
	}

	if len(cfg.Sections) == 0 {
		return nil, fmt.Errorf("menu definition has no sections")
	}

	var seen = make(map[int]string)
	var defs []SectionDef

	for _, ys := range cfg.Sections {
		if len(ys.Parameters) > menu.Capacity {
			return nil, fmt.Errorf(
				"[%s] %d parameters exceed section capacity of %d",
				ys.Name, len(ys.Parameters), menu.Capacity,
			)
		}

		section := menu.NewSection()

		for _, yp := range ys.Parameters {
			if yp.Name == "" {
				return nil, fmt.Errorf("[%s] parameter without a name", ys.Name)
			}
			if prev, ok := seen[yp.ID]; ok {
				return nil, fmt.Errorf("[%s] %s: duplicate id %d, already used by %s", ys.Name, yp.Name, yp.ID, prev)
			}
			seen[yp.ID] = yp.Name

			switch yp.Type {
			case TypeContinuous:
				section.Add(menu.NewContinuous(yp.Name, yp.ID, yp.Value, yp.Increment))
			case TypeEnumerated:
				if len(yp.States) == 0 {
					return nil, fmt.Errorf("[%s] %s: enumerated parameter without states", ys.Name, yp.Name)
				}
				section.Add(menu.NewEnumerated(yp.Name, yp.ID, yp.States, yp.State))
			default:
				return nil, fmt.Errorf("[%s] %s: unsupported parameter type: %q", ys.Name, yp.Name, yp.Type)
			}
		}

		defs = append(defs, SectionDef{Name: ys.Name, Section: section})
	}

	return defs, nil
}
