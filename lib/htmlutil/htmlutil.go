// Package htmlutil holds every assumption made about the shape of a parsed
// html tree, scrapers should locate nodes through these helpers instead of
// walking *html.Node themselves.
package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`[\s\p{Zs}]+`)

// NormalizeText drops non-printable runes, trims the ends and collapses
// runs of whitespace into a single space.
func NormalizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// GetCleanText is GetText followed by NormalizeText.
func GetCleanText(node *html.Node) string {
	return NormalizeText(GetText(node))
}

// Attr returns the value of the attribute `key` and whether it exists.
func Attr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Predicate decides if a node is a match during a tree walk.
type Predicate func(node *html.Node) bool

// AttrEquals matches element nodes whose attribute `key` is exactly `value`.
func AttrEquals(key, value string) Predicate {
	return func(node *html.Node) bool {
		if node.Type != html.ElementNode {
			return false
		}
		val, ok := Attr(node, key)
		return ok && val == value
	}
}

// HasClasses matches element nodes whose class list contains every one of
// `classes`, in any order and alongside any other classes.
func HasClasses(classes ...string) Predicate {
	return func(node *html.Node) bool {
		if node.Type != html.ElementNode {
			return false
		}
		val, ok := Attr(node, "class")
		if !ok {
			return false
		}
		have := strings.Fields(val)
		for _, want := range classes {
			found := false
			for _, h := range have {
				if h == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

// HasTag matches element nodes with the given tag name.
func HasTag(tag string) Predicate {
	return func(node *html.Node) bool {
		return node.Type == html.ElementNode && node.Data == tag
	}
}

// And matches nodes that satisfy every predicate.
func And(predicates ...Predicate) Predicate {
	return func(node *html.Node) bool {
		for _, p := range predicates {
			if !p(node) {
				return false
			}
		}
		return true
	}
}

// FindFirst returns the first descendant of `root` (in document order) that
// matches, or nil. `root` itself is never considered.
func FindFirst(root *html.Node, match Predicate) *html.Node {
	if root == nil {
		return nil
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			return child
		}
		found := FindFirst(child, match)
		if found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of `root` that matches, in document order.
// Matching nodes are still descended into, so nested matches are kept.
func FindAll(root *html.Node, match Predicate) []*html.Node {
	var out []*html.Node
	findAllRecursive(root, match, &out)
	return out
}

func findAllRecursive(root *html.Node, match Predicate, out *[]*html.Node) {
	if root == nil {
		return
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			*out = append(*out, child)
		}
		findAllRecursive(child, match, out)
	}
}

// Closest walks up from the parent of `node` and returns the first ancestor
// that matches, stopping (exclusive) at `boundary`. It returns nil when no
// ancestor below the boundary matches.
func Closest(node, boundary *html.Node, match Predicate) *html.Node {
	if node == nil {
		return nil
	}
	for current := node.Parent; current != nil && current != boundary; current = current.Parent {
		if match(current) {
			return current
		}
	}
	return nil
}
