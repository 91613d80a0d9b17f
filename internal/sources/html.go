// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
)

// link is one organic result parsed from a search results page.
type link struct {
	URL   string
	Title string
}

// parseResultLinks collects (url, title) pairs from every anchor in page.
// Redirect wrappers are unwrapped, relative links are resolved against base,
// links on the engine's own domain and untitled links are skipped, and a URL
// is kept only once.
func parseResultLinks(page string, base *url.URL) ([]link, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	engine := registrableDomain(base.Hostname())
	seen := make(map[string]bool)
	var links []link

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			target := resolveLink(getAttr(n, "href"), base)
			title := textContent(n)
			if target != nil && title != "" && !sameDomain(target.Hostname(), engine) && !seen[target.String()] {
				seen[target.String()] = true
				links = append(links, link{URL: target.String(), Title: title})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return links, nil
}

// resolveLink returns the absolute http(s) target of href, following
// DuckDuckGo style "/l/?uddg=" redirects. It returns nil for anything else.
func resolveLink(href string, base *url.URL) *url.URL {
	if href == "" || strings.HasPrefix(href, "#") {
		return nil
	}
	u, err := url.Parse(href)
	if err != nil {
		return nil
	}
	u = base.ResolveReference(u)
	if target := u.Query().Get("uddg"); target != "" && strings.HasPrefix(u.Path, "/l") {
		if u, err = url.Parse(target); err != nil {
			return nil
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	return u
}

// registrableDomain reduces a host to its public suffix plus one label
// (www.google.co.uk -> google.co.uk). IP addresses and hosts without a
// registrable part, such as single-label names, are returned unchanged.
func registrableDomain(host string) string {
	if net.ParseIP(host) != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

func sameDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

var (
	blankRunRe = regexp.MustCompile(`\n{3,}`)
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
)

// looksLikeHTML reports whether body should go through htmlToText.
func looksLikeHTML(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body")
}

// htmlToText renders a page as plain text with blank lines between blocks
// and fenced pre blocks, so paragraph splitting sees the page structure.
func htmlToText(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	writeText(doc, &sb, false)

	lines := strings.Split(sb.String(), "\n")
	inFence := false
	for i, line := range lines {
		if strings.TrimSpace(line) == "```" {
			inFence = !inFence
			lines[i] = "```"
			continue
		}
		if inFence {
			lines[i] = strings.TrimRight(line, " \t\r")
			continue
		}
		lines[i] = strings.TrimSpace(spaceRunRe.ReplaceAllString(line, " "))
	}
	out := blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out), nil
}

func writeText(n *html.Node, sb *strings.Builder, inPre bool) {
	switch n.Type {
	case html.TextNode:
		if inPre {
			sb.WriteString(n.Data)
		} else if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "iframe", "svg", "nav", "footer", "header", "form":
			return
		case "pre":
			sb.WriteString("\n\n```\n")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				writeText(c, sb, true)
			}
			sb.WriteString("\n```\n\n")
			return
		case "br":
			sb.WriteString("\n")
		case "p", "div", "section", "article", "li", "tr", "table", "blockquote",
			"h1", "h2", "h3", "h4", "h5", "h6":
			sb.WriteString("\n\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, sb, inPre)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "section", "article", "li", "tr", "table", "blockquote",
			"h1", "h2", "h3", "h4", "h5", "h6":
			sb.WriteString("\n\n")
		}
	}
}
