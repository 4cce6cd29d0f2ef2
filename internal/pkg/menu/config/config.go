// Package config loads menu definitions from yaml files and watches them
// for changes, so the menu layout can be adjusted without recompiling.
package config

import (
	"github.com/lemewp/Intervalomedio/internal/pkg/logger"
	"github.com/lemewp/Intervalomedio/internal/pkg/menu"
)

var log = logger.GetLogger()

const (
	TypeContinuous = "continuous"
	TypeEnumerated = "enumerated"
)

// SectionDef is one built section together with its declared name.
type SectionDef struct {
	Name    string
	Section *menu.Section
}
