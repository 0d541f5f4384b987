// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package htmlutils

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestNode2string(t *testing.T) {
	tests := []struct {
		expected string
		input    string
	}{
		{"foo bar", "<div><pre>foo</pre><span>bar</span>"},
		{"", "<div>   </div>"},
		{"uno dos tres", "<p>uno <b>dos</b></p><p>tres</p>"},
	}

	for _, test := range tests {
		n, err := html.Parse(strings.NewReader(test.input))
		if err != nil {
			t.Fatalf("parsing HTML `%s': %s", test.input, err)
		}

		sb := strings.Builder{}
		if err = Node2string(n, &sb); err != nil {
			t.Errorf("unexpected error: %s", err)
		}

		if got := sb.String(); got != test.expected {
			t.Errorf("`%s': expected `%v' but got `%v'", test.input, test.expected, got)
		}
	}
}

func TestAsNode(t *testing.T) {
	n, err := AsNode(strings.NewReader("<html><body>hola</body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	sb := strings.Builder{}
	if err = Node2string(n, &sb); err != nil {
		t.Fatal(err)
	}

	if sb.String() != "hola" {
		t.Errorf("expected `hola' got `%s'", sb.String())
	}
}

func TestAttr(t *testing.T) {
	n, err := AsNode(strings.NewReader(`<a HREF="https://example.org">x</a>`))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	var anchor *html.Node

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			anchor = n
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(n)

	if anchor == nil {
		t.Fatal("no anchor found")
	}

	if got := Attr(anchor, "href"); got != "https://example.org" {
		t.Errorf("href = `%s'", got)
	}

	if got := Attr(anchor, "title"); got != "" {
		t.Errorf("expected empty, got `%s'", got)
	}
}
