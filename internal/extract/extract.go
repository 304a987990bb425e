package extract

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Extractor decodes an uploaded file into plain text. Implementations are
// responsible for one source format; the engine only ever sees the decoded
// text.
type Extractor interface {
	Extract(name string, data []byte) (string, error)
}

// Plain passes file bytes through as UTF-8 text.
type Plain struct{}

// Extract implements Extractor.
func (Plain) Extract(name string, data []byte) (string, error) {
	return string(data), nil
}

// HTML renders markup documents as plain text: text nodes are concatenated
// and block-level elements contribute a newline, so downstream line
// segmentation sees the document's visual structure.
type HTML struct{}

// Extract implements Extractor.
func (HTML) Extract(name string, data []byte) (string, error) {
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if isBlock(n.Data) {
				buf.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String(), nil
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "tr", "section", "article",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// Auto dispatches to the extractor matching the file's extension.
type Auto struct{}

// Extract implements Extractor.
func (Auto) Extract(name string, data []byte) (string, error) {
	return ForFile(name).Extract(name, data)
}

// ForFile picks an extractor by file extension, defaulting to plain text.
func ForFile(name string) Extractor {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return HTML{}
	default:
		return Plain{}
	}
}
