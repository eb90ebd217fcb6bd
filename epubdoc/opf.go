package epubdoc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"path"
	"strings"
)

// OPF-related errors.
var (
	ErrNoOPF      = errors.New("epub: missing package document (OPF)")
	ErrInvalidOPF = errors.New("epub: invalid package document")
	ErrEmptySpine = errors.New("epub: no content in spine")
)

// opfPackage represents the OPF package document.
type opfPackage struct {
	XMLName  xml.Name `xml:"package"`
	Metadata struct {
		Title   []string `xml:"title"`
		Creator []string `xml:"creator"`
	} `xml:"metadata"`
	Manifest struct {
		Items []opfItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef  string `xml:"idref,attr"`
			Linear string `xml:"linear,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// spineInfo is the reading-order result of parsing the OPF: the chapter
// paths within the archive plus the book's metadata.
type spineInfo struct {
	Title    string
	Creators []string
	Chapters []string
}

// parseOPF parses the package document and resolves the spine to
// chapter paths. Non-linear spine entries and non-XHTML manifest items
// are skipped.
func parseOPF(files []*zip.File, opfPath string) (*spineInfo, error) {
	data, err := readZipFile(files, opfPath)
	if err != nil {
		return nil, ErrNoOPF
	}

	var opf opfPackage
	if err := xml.Unmarshal(data, &opf); err != nil {
		return nil, ErrInvalidOPF
	}

	baseDir := path.Dir(opfPath)
	if baseDir == "." {
		baseDir = ""
	}

	items := make(map[string]opfItem, len(opf.Manifest.Items))
	for _, item := range opf.Manifest.Items {
		items[item.ID] = item
	}

	info := &spineInfo{}
	if len(opf.Metadata.Title) > 0 {
		info.Title = strings.TrimSpace(opf.Metadata.Title[0])
	}
	for _, c := range opf.Metadata.Creator {
		if s := strings.TrimSpace(c); s != "" {
			info.Creators = append(info.Creators, s)
		}
	}

	for _, ref := range opf.Spine.ItemRefs {
		if ref.Linear == "no" {
			continue
		}
		item, ok := items[ref.IDRef]
		if !ok || item.Href == "" {
			continue
		}
		if !isDocumentMediaType(item.MediaType) {
			continue
		}
		href := item.Href
		if baseDir != "" {
			href = path.Join(baseDir, href)
		}
		info.Chapters = append(info.Chapters, href)
	}

	if len(info.Chapters) == 0 {
		return nil, ErrEmptySpine
	}
	return info, nil
}

func isDocumentMediaType(mediaType string) bool {
	switch mediaType {
	case "application/xhtml+xml", "text/html", "":
		return true
	default:
		return false
	}
}
