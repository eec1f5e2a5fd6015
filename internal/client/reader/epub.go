package reader

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const containerPath = "META-INF/container.xml"

type epubContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
	Manifest []struct {
		ID        string `xml:"id,attr"`
		Href      string `xml:"href,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"manifest>item"`
	Spine []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

func extractEPUB(ctx context.Context, p string) (string, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return "", fmt.Errorf("open epub: %w", err)
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	docs, err := spineDocuments(files)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		// No usable package document: fall back to every HTML file in
		// archive order.
		for _, f := range zr.File {
			if isHTML(f.Name) {
				docs = append(docs, f)
			}
		}
	}

	var sb strings.Builder
	for _, f := range docs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := appendHTMLText(&sb, f); err != nil {
			return "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

// spineDocuments resolves the reading order declared by the package
// document. A missing container is not an error.
func spineDocuments(files map[string]*zip.File) ([]*zip.File, error) {
	cf, ok := files[containerPath]
	if !ok {
		return nil, nil
	}

	var c epubContainer
	if err := decodeXML(cf, &c); err != nil {
		return nil, fmt.Errorf("parse container: %w", err)
	}
	if len(c.Rootfiles) == 0 {
		return nil, nil
	}

	opfPath := c.Rootfiles[0].FullPath
	of, ok := files[opfPath]
	if !ok {
		return nil, fmt.Errorf("package document %s missing", opfPath)
	}

	var pkg epubPackage
	if err := decodeXML(of, &pkg); err != nil {
		return nil, fmt.Errorf("parse package document: %w", err)
	}

	hrefs := make(map[string]string, len(pkg.Manifest))
	for _, item := range pkg.Manifest {
		hrefs[item.ID] = item.Href
	}

	base := path.Dir(opfPath)
	var docs []*zip.File
	for _, ref := range pkg.Spine {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		if u, err := url.PathUnescape(href); err == nil {
			href = u
		}
		if f, ok := files[path.Join(base, href)]; ok {
			docs = append(docs, f)
		}
	}
	return docs, nil
}

func decodeXML(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

func isHTML(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".html", ".htm":
		return true
	}
	return false
}

var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Blockquote: true, atom.Pre: true, atom.Tr: true, atom.Hr: true,
}

var skipTags = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Title: true,
}

// appendHTMLText writes the visible text of an (X)HTML document. Block
// elements are separated by blank lines.
func appendHTMLText(sb *strings.Builder, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	z := html.NewTokenizer(rc)
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return nil
			}
			return z.Err()
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			switch {
			case skipTags[tag]:
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
			case skip > 0:
			case blockTags[tag]:
				sb.WriteString("\n\n")
			case tag == atom.Br:
				sb.WriteString("\n")
			}
		case html.TextToken:
			if skip == 0 {
				writeCollapsed(sb, string(z.Text()))
			}
		}
	}
}

// writeCollapsed replaces whitespace runs with single spaces, keeping one
// space at either edge so inline elements do not run together.
func writeCollapsed(sb *strings.Builder, s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			sb.WriteByte(' ')
		}
		return
	}
	if isSpace(s[0]) {
		sb.WriteByte(' ')
	}
	sb.WriteString(strings.Join(fields, " "))
	if isSpace(s[len(s)-1]) {
		sb.WriteByte(' ')
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r' || b == '\f'
}
