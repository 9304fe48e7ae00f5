package projfile

import (
	"fmt"

	"github.com/fbkclanna/asws/internal/asxml"
	"github.com/fbkclanna/asws/internal/location"
)

// SettingsFileName is the per-user settings file next to the descriptor.
const SettingsFileName = "LastUser.set"

// Settings is a parsed LastUser.set.
type Settings struct {
	path                location.Location
	activeConfiguration string
}

// ParseSettings parses a user settings file.
func ParseSettings(path location.Location, data []byte) (*Settings, error) {
	doc, err := asxml.Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.RootType != "ProjectSettings" {
		return nil, fmt.Errorf("projfile: %w: root element is <%s>, expected <ProjectSettings>", asxml.ErrInvariant, doc.RootType)
	}
	var raw struct {
		Manager struct {
			Active string `xml:"ActiveConfigurationName,attr"`
		} `xml:"ConfigurationManager"`
	}
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}
	return &Settings{path: path, activeConfiguration: raw.Manager.Active}, nil
}

// FilePath returns the settings file location.
func (s *Settings) FilePath() location.Location { return s.path }

// ActiveConfiguration returns the configuration selected in Automation
// Studio, or "" if none is recorded.
func (s *Settings) ActiveConfiguration() string { return s.activeConfiguration }
