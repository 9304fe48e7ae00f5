package projfile

import (
	"fmt"
	"strings"

	"github.com/fbkclanna/asws/internal/asxml"
	"github.com/fbkclanna/asws/internal/location"
)

// Extension is the file extension of project descriptors.
const Extension = ".apj"

// ErrNotProject is returned when a descriptor does not have a <Project> root.
// It wraps asxml.ErrInvariant.
var ErrNotProject = fmt.Errorf("not a project file: %w", asxml.ErrInvariant)

// Paths holds the standard directories of a project. All of them are
// derived from the descriptor location, none is checked for existence.
type Paths struct {
	ProjectRoot location.Location `json:"project_root" yaml:"project_root"`
	ProjectFile location.Location `json:"project_file" yaml:"project_file"`
	Physical    location.Location `json:"physical" yaml:"physical"`
	Logical     location.Location `json:"logical" yaml:"logical"`
	Temp        location.Location `json:"temp" yaml:"temp"`
	Binaries    location.Location `json:"binaries" yaml:"binaries"`
}

// PathsFor derives the project paths from a descriptor location.
func PathsFor(projectFile location.Location) Paths {
	root := projectFile.Parent()
	return Paths{
		ProjectRoot: root,
		ProjectFile: projectFile,
		Physical:    root.Join("Physical"),
		Logical:     root.Join("Logical"),
		Temp:        root.Join("Temp"),
		Binaries:    root.Join("Binaries"),
	}
}

// File is a parsed project descriptor.
type File struct {
	path        location.Location
	header      asxml.Header
	version     string
	edition     string
	description string
}

// Parse parses a project descriptor.
func Parse(path location.Location, data []byte) (*File, error) {
	doc, err := asxml.Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.RootType != "Project" {
		return nil, fmt.Errorf("projfile: %w: root element is <%s>", ErrNotProject, doc.RootType)
	}
	var raw projectXML
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}
	desc := raw.Description
	if desc == "" {
		desc = strings.TrimSpace(raw.DescriptionElem)
	}
	return &File{
		path:        path,
		header:      doc.Header,
		version:     raw.Version,
		edition:     raw.Edition,
		description: desc,
	}, nil
}

// Name returns the project name, the descriptor file name without extension.
func (f *File) Name() string {
	return strings.TrimSuffix(f.path.Base(), f.path.Ext())
}

// FilePath returns the descriptor location.
func (f *File) FilePath() location.Location { return f.path }

// Paths returns the standard project directories.
func (f *File) Paths() Paths { return PathsFor(f.path) }

// Header returns the Automation Studio version header.
func (f *File) Header() asxml.Header { return f.header }

// ASVersion returns the Automation Studio version that last saved the
// project, preferring the working version when present.
func (f *File) ASVersion() string {
	if f.header.WorkingVersion != "" {
		return f.header.WorkingVersion
	}
	return f.header.Version
}

// Version returns the project version attribute.
func (f *File) Version() string { return f.version }

// Edition returns the edition attribute (e.g. Standard).
func (f *File) Edition() string { return f.edition }

// Description returns the project description, if any.
func (f *File) Description() string { return f.description }

type projectXML struct {
	Version         string `xml:"Version,attr"`
	Edition         string `xml:"Edition,attr"`
	Description     string `xml:"Description,attr"`
	DescriptionElem string `xml:"Description"`
}
