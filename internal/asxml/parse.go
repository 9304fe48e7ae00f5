package asxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrMalformedXML is returned for content that is not well-formed XML.
	ErrMalformedXML = errors.New("malformed XML")
	// ErrNoRootElement is returned when the content has no single root element.
	ErrNoRootElement = errors.New("no single root element")
	// ErrUnexpectedStructure is returned when <Objects> is not a list of <Object>.
	ErrUnexpectedStructure = errors.New("unexpected structure")
	// ErrInvariant is returned when a document violates the structure its
	// file type requires, such as a wrong root element.
	ErrInvariant = errors.New("structural invariant violation")
)

const headerTarget = "AutomationStudio"

var headerAttr = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|(\S+))`)

// Parse reads content, checks it has exactly one root element and extracts
// the root type and the declared objects.
func Parse(content []byte) (*Document, error) {
	doc := &Document{content: content}
	if err := scan(content, doc); err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}
	objs, err := raw.objects()
	if err != nil {
		return nil, err
	}
	doc.Objects = objs
	return doc, nil
}

// Decode unmarshals the root element into v.
func (d *Document) Decode(v any) error {
	if err := newDecoder(d.content).Decode(v); err != nil {
		return fmt.Errorf("asxml: %w: %w", ErrUnexpectedStructure, err)
	}
	return nil
}

// scan walks the raw token stream. RawToken does not match start and end
// tags, so the element stack is tracked here.
func scan(content []byte, doc *Document) error {
	dec := newDecoder(content)
	var stack []string
	rootClosed := false

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("asxml: %w: %w", ErrMalformedXML, err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == headerTarget && doc.RootType == "" {
				doc.Header = parseHeader(string(t.Inst))
			}
		case xml.StartElement:
			if len(stack) == 0 {
				if rootClosed {
					return fmt.Errorf("asxml: %w: second top-level element <%s>", ErrNoRootElement, t.Name.Local)
				}
				doc.RootType = t.Name.Local
				doc.Namespace = namespace(t.Attr)
			}
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if len(stack) == 0 {
				return fmt.Errorf("asxml: %w: closing tag </%s> without root", ErrNoRootElement, t.Name.Local)
			}
			open := stack[len(stack)-1]
			if open != t.Name.Local {
				return fmt.Errorf("asxml: %w: element <%s> closed by </%s>", ErrMalformedXML, open, t.Name.Local)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				rootClosed = true
			}
		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("asxml: %w: text outside root element", ErrMalformedXML)
			}
		}
	}

	if len(stack) > 0 {
		return fmt.Errorf("asxml: %w: unexpected end of input inside <%s>", ErrMalformedXML, stack[len(stack)-1])
	}
	if doc.RootType == "" {
		return fmt.Errorf("asxml: %w", ErrNoRootElement)
	}
	return nil
}

func namespace(attrs []xml.Attr) string {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == "xmlns" {
			return a.Value
		}
	}
	return ""
}

// parseHeader reads `Version=4.6.5.78 SP` as well as the quoted
// `Version="4.10.3.60 FP" WorkingVersion="4.10"` form.
func parseHeader(inst string) Header {
	var h Header
	for _, m := range headerAttr.FindAllStringSubmatch(inst, -1) {
		val := m[2]
		if val == "" {
			val = m[3]
		}
		switch m[1] {
		case "Version":
			h.Version = strings.TrimSpace(val)
		case "WorkingVersion":
			h.WorkingVersion = strings.TrimSpace(val)
		}
	}
	return h
}

func newDecoder(content []byte) *xml.Decoder {
	r := transform.NewReader(bytes.NewReader(content), unicode.BOMOverride(transform.Nop))
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	return dec
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	name, _ := htmlindex.Name(enc)
	switch name {
	case "utf-8", "utf-16le", "utf-16be":
		// UTF-16 input was already converted by the BOM override.
		return input, nil
	}
	return enc.NewDecoder().Reader(input), nil
}

type rawDocument struct {
	XMLName xml.Name
	Objects []rawObjects `xml:"Objects"`
}

type rawObjects struct {
	Items []rawObject `xml:",any"`
}

type rawObject struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Text     string       `xml:",chardata"`
	Children []rawElement `xml:",any"`
}

type rawElement struct {
	XMLName xml.Name
}

func (r *rawDocument) objects() ([]ObjectDecl, error) {
	switch len(r.Objects) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("asxml: %w: %d <Objects> elements", ErrUnexpectedStructure, len(r.Objects))
	}

	items := r.Objects[0].Items
	out := make([]ObjectDecl, 0, len(items))
	for i, it := range items {
		if it.XMLName.Local != "Object" {
			return nil, fmt.Errorf("asxml: %w: <Objects> child %d is <%s>", ErrUnexpectedStructure, i, it.XMLName.Local)
		}
		if len(it.Children) > 0 {
			return nil, fmt.Errorf("asxml: %w: object %d contains <%s>", ErrUnexpectedStructure, i, it.Children[0].XMLName.Local)
		}
		decl := ObjectDecl{Name: strings.TrimSpace(it.Text)}
		hasType := false
		for _, a := range it.Attrs {
			if a.Name.Space != "" {
				continue
			}
			switch a.Name.Local {
			case "Type":
				decl.Type, hasType = a.Value, true
			case "Description":
				decl.Description = a.Value
			}
		}
		if !hasType || decl.Type == "" {
			return nil, fmt.Errorf("asxml: %w: object %d has no Type", ErrUnexpectedStructure, i)
		}
		if decl.Name == "" {
			return nil, fmt.Errorf("asxml: %w: object %d (%s) has no name", ErrUnexpectedStructure, i, decl.Type)
		}
		out = append(out, decl)
	}
	return out, nil
}
