// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"io"
	"strings"

	"github.com/jcodagnone/cerca/utils/htmlutils"
	"golang.org/x/net/html"
)

// ParseBookmarks reads a browser bookmarks export (Netscape bookmark file
// format) and turns every anchor with a non-empty label into a record. The
// format is lenient HTML, so the regular parser handles it fine.
func ParseBookmarks(r io.Reader) ([]*Record, error) {
	node, err := htmlutils.AsNode(r)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, 32)
	visitBookmarks(node, &records)

	return records, nil
}

func visitBookmarks(n *html.Node, records *[]*Record) {
	if n.Type == html.ElementNode && strings.EqualFold("a", n.Data) {
		href := htmlutils.Attr(n, "href")

		sb := strings.Builder{}
		if err := htmlutils.Node2string(n, &sb); err == nil {
			name := sb.String()
			if name != "" && href != "" {
				*records = append(*records, &Record{Name: name, URL: href})
			}
		}

		return
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		visitBookmarks(child, records)
	}
}
