package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const nestedDoc = `<html><body>
<div id="outer" class="box wide">
	<span class="tag">one</span>
	<div><div><p><span class="tag">two <b>bold</b></span></p></div></div>
	<ul>
		<li><span class="tag nested"><span class="tag">three</span></span></li>
	</ul>
</div>
<span class="tag">outside</span>
</body></html>`

func parse(t testing.TB, src string) *html.Node {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func texts(nodes []*html.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = GetCleanText(n)
	}
	return out
}

func TestFindAll(t *testing.T) {
	doc := parse(t, nestedDoc)
	outer := FindFirst(doc, AttrEquals("id", "outer"))
	require.NotNil(t, outer)

	found := FindAll(outer, HasClasses("tag"))
	require.Equal(t, []string{"one", "two bold", "three", "three"}, texts(found))

	found = FindAll(doc, HasClasses("tag"))
	require.Len(t, found, 5)

	require.Empty(t, FindAll(outer, HasClasses("missing")))
}

func TestFindFirst(t *testing.T) {
	doc := parse(t, nestedDoc)

	first := FindFirst(doc, HasClasses("tag"))
	require.NotNil(t, first)
	require.Equal(t, "one", GetCleanText(first))

	nested := FindFirst(doc, HasClasses("nested", "tag"))
	require.NotNil(t, nested)
	require.Equal(t, "three", GetCleanText(nested))

	require.Nil(t, FindFirst(doc, AttrEquals("id", "nope")))
	require.Nil(t, FindFirst(nil, HasTag("div")))
}

func TestFindFirstSkipsRoot(t *testing.T) {
	doc := parse(t, nestedDoc)
	outer := FindFirst(doc, AttrEquals("id", "outer"))
	require.Nil(t, FindFirst(outer, AttrEquals("id", "outer")))
}

func TestHasClasses(t *testing.T) {
	doc := parse(t, nestedDoc)
	outer := FindFirst(doc, AttrEquals("id", "outer"))

	testCases := []struct {
		classes []string
		expect  bool
	}{
		{classes: []string{"box"}, expect: true},
		{classes: []string{"wide", "box"}, expect: true},
		{classes: []string{"box", "narrow"}, expect: false},
		{classes: []string{"bo"}, expect: false},
	}
	for _, test := range testCases {
		require.Equal(t, test.expect, HasClasses(test.classes...)(outer), test.classes)
	}
}

func TestClosest(t *testing.T) {
	doc := parse(t, nestedDoc)
	outer := FindFirst(doc, AttrEquals("id", "outer"))
	inner := FindFirst(outer, HasClasses("nested"))

	require.Equal(t, outer, Closest(inner, doc, HasClasses("box")))
	require.Nil(t, Closest(inner, outer, HasClasses("box")))
	require.Equal(t, "li", Closest(inner, outer, HasTag("li")).Data)
}

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "  Example   Work \n", expected: "Example Work"},
		{input: "\tA\n\n B", expected: "A B"},
		{input: "zero\u200bwidth", expected: "zerowidth"},
		{input: "Author\u00a0\u00a0One", expected: "Author One"},
		{input: "\u00a0Example \u00a0Work\u00a0", expected: "Example Work"},
		{input: "", expected: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeText(test.input))
	}
}
