package mimeutil

import (
	"strconv"
	"strings"

	"github.com/emersion/go-imap"
)

// Part is the service-owned view of a message body structure. The IMAP
// library's type is converted at the boundary so the decode pipeline never
// depends on third-party type gaps.
type Part struct {
	MIMEType    string
	MIMESubType string
	Params      map[string]string
	Encoding    string
	Children    []*Part
}

// FromIMAPBodyStructure adapts the library's body structure into the typed
// tree used by the decoder. Parameter keys are normalized to lower case.
func FromIMAPBodyStructure(bs *imap.BodyStructure) *Part {
	if bs == nil {
		return nil
	}

	part := &Part{
		MIMEType:    strings.ToLower(bs.MIMEType),
		MIMESubType: strings.ToLower(bs.MIMESubType),
		Encoding:    strings.ToLower(bs.Encoding),
		Params:      make(map[string]string, len(bs.Params)),
	}
	for key, value := range bs.Params {
		part.Params[strings.ToLower(key)] = value
	}

	for _, child := range bs.Parts {
		part.Children = append(part.Children, FromIMAPBodyStructure(child))
	}

	return part
}

func (p *Part) IsMultipart() bool {
	return p.MIMEType == "multipart" || len(p.Children) > 0
}

func (p *Part) Is(mimeType, subType string) bool {
	return p.MIMEType == mimeType && p.MIMESubType == subType
}

// Charset returns the declared charset of the part, defaulting to UTF-8.
func (p *Part) Charset() string {
	if charset, ok := p.Params["charset"]; ok && charset != "" {
		return charset
	}
	return "utf-8"
}

// ResolvePath maps a dotted body-part address ("1", "1.2", "2.1.3") to a node
// of the tree. A single non-multipart body is addressable as part "1". Returns
// nil when the address points outside the tree.
func (p *Part) ResolvePath(path string) *Part {
	indexes, err := parsePartPath(path)
	if err != nil {
		return nil
	}
	return p.resolve(indexes)
}

func (p *Part) resolve(indexes []int) *Part {
	if p == nil || len(indexes) == 0 {
		return p
	}

	n := indexes[0]
	if p.IsMultipart() {
		if n < 1 || n > len(p.Children) {
			return nil
		}
		return p.Children[n-1].resolve(indexes[1:])
	}

	// A non-multipart body is its own part "1"
	if n == 1 && len(indexes) == 1 {
		return p
	}
	return nil
}

// FindPart returns the dotted address and node of the first leaf with the
// given content type, searching depth first in positional order.
func (p *Part) FindPart(mimeType, subType string) (string, *Part) {
	if p == nil {
		return "", nil
	}

	if !p.IsMultipart() {
		if p.Is(mimeType, subType) {
			return "1", p
		}
		return "", nil
	}

	indexes := findInChildren(p, mimeType, subType)
	if indexes == nil {
		return "", nil
	}
	return formatPartPath(indexes), p.resolve(indexes)
}

func findInChildren(p *Part, mimeType, subType string) []int {
	for i, child := range p.Children {
		if child == nil {
			continue
		}
		if child.IsMultipart() {
			if sub := findInChildren(child, mimeType, subType); sub != nil {
				return append([]int{i + 1}, sub...)
			}
			continue
		}
		if child.Is(mimeType, subType) {
			return []int{i + 1}
		}
	}
	return nil
}

// HasHTMLPart reports whether any leaf advertises text/html. This is a
// metadata-only check, no body bytes are needed.
func (p *Part) HasHTMLPart() bool {
	_, part := p.FindPart("text", "html")
	return part != nil
}

func parsePartPath(path string) ([]int, error) {
	segments := strings.Split(path, ".")
	indexes := make([]int, 0, len(segments))
	for _, segment := range segments {
		n, err := strconv.Atoi(segment)
		if err != nil || n < 1 {
			return nil, strconv.ErrSyntax
		}
		indexes = append(indexes, n)
	}
	return indexes, nil
}

func formatPartPath(indexes []int) string {
	segments := make([]string, len(indexes))
	for i, n := range indexes {
		segments[i] = strconv.Itoa(n)
	}
	return strings.Join(segments, ".")
}
