package asxml

// Header holds the values of the <?AutomationStudio ...?> instruction.
type Header struct {
	Version        string `json:"version,omitempty" yaml:"version,omitempty"`
	WorkingVersion string `json:"working_version,omitempty" yaml:"working_version,omitempty"`
}

// ObjectDecl is one <Object> entry of an <Objects> list.
type ObjectDecl struct {
	Type        string
	Name        string
	Description string
}

// Document is a parsed file. Role specific content is read with Decode.
type Document struct {
	RootType  string
	Namespace string
	Header    Header
	Objects   []ObjectDecl

	content []byte
}
