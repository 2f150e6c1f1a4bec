package apps

import (
	"strings"
)

// AppConfig describes one installed application.
type AppConfig struct {
	// Name is the full dotted name of the application (e.g., "shop.catalog")
	Name string

	// Label is the short unique label (e.g., "catalog")
	Label string
}

// NewAppConfig creates an AppConfig whose label defaults to the last
// component of name.
func NewAppConfig(name string, label string) *AppConfig {
	if label == "" {
		label = name[strings.LastIndex(name, ".")+1:]
	}

	return &AppConfig{
		Name:  name,
		Label: label,
	}
}

func (c *AppConfig) String() string {
	return "<AppConfig: " + c.Label + ">"
}
