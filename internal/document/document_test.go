// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/pdiddy/getids/pkg/types"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>  Programs </title></head>
<body>
  <div class="card" id="a"><span class="card" id="nested">x</span></div>
  <div class="card" id=""></div>
  <section>
    <article class="wide card featured" id="b"></article>
  </section>
  <div class="card"></div>
  <div class="cardholder" id="not-a-card"></div>
  <p class="card" id="c"></p>
  <div id="plain"></div>
</body>
</html>`

func ids(els []types.Element) []string {
	out := make([]string, len(els))
	for i, e := range els {
		out[i] = e.ID
	}
	return out
}

func TestByClassDocumentOrder(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)

	els, err := doc.ByClass("card")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "nested", "", "b", "", "c"}, ids(els))
}

func TestByClassRecordsMissingID(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)

	els, err := doc.ByClass("card")
	require.NoError(t, err)
	require.Len(t, els, 6)

	assert.True(t, els[2].HasID, "empty id attribute is present")
	assert.False(t, els[4].HasID, "div without id attribute")
}

func TestByClassElementFields(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)

	els, err := doc.ByClass("featured")
	require.NoError(t, err)
	require.Len(t, els, 1)

	assert.Equal(t, "article", els[0].Tag)
	assert.Equal(t, []string{"wide", "card", "featured"}, els[0].Classes)
	assert.Equal(t, "b", els[0].ID)
}

func TestByClassNoMatches(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)

	els, err := doc.ByClass("missing")
	require.NoError(t, err)
	assert.NotNil(t, els)
	assert.Empty(t, els)
}

func TestByClassMatchesRootElement(t *testing.T) {
	doc, err := ParseString(`<html class="card" id="root"><body></body></html>`)
	require.NoError(t, err)

	els, err := doc.ByClass("card")
	require.NoError(t, err)
	assert.Equal(t, []string{"root"}, ids(els))
}

func TestByClassSpecialCharacters(t *testing.T) {
	doc, err := ParseString(`<div class="md:card" id="x"></div><div class="card" id="y"></div>`)
	require.NoError(t, err)

	els, err := doc.ByClass("md:card")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(els))
}

func TestByClassValidation(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)

	_, err = doc.ByClass("")
	assert.ErrorIs(t, err, ErrEmptyClass)

	_, err = doc.ByClass("two words")
	assert.ErrorIs(t, err, ErrInvalidClass)
}

func TestSelect(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)

	els, err := doc.Select("section .card, p.card")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(els))
}

func TestSelectInvalid(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)

	_, err = doc.Select("div[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "div[")
}

func TestQuery(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)

	els, applied, err := doc.Query("card", "")
	require.NoError(t, err)
	assert.Equal(t, ".card", applied)
	assert.Len(t, els, 6)

	els, applied, err = doc.Query("card", "#plain")
	require.NoError(t, err)
	assert.Equal(t, "#plain", applied)
	assert.Equal(t, []string{"plain"}, ids(els))
}

func TestTitle(t *testing.T) {
	doc, err := ParseString(samplePage)
	require.NoError(t, err)
	assert.Equal(t, "Programs", doc.Title())
}

func TestByClassCaseFolding(t *testing.T) {
	const body = `<div class="Card" id="upper"></div><div class="card" id="lower"></div><div class="CARDS" id="other"></div>`

	tests := []struct {
		name       string
		page       string
		wantQuirks bool
		want       []string
	}{
		{"no doctype folds case", body, true, []string{"upper", "lower"}},
		{"html doctype is exact", "<!DOCTYPE html>" + body, false, []string{"lower"}},
		{"legacy doctype name folds case", `<!DOCTYPE svg>` + body, true, []string{"upper", "lower"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuirks, doc.Quirks())

			els, err := doc.ByClass("card")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(els))
		})
	}
}

func TestSelectIsCaseSensitiveInQuirksMode(t *testing.T) {
	doc, err := ParseString(`<div class="Card" id="upper"></div><div class="card" id="lower"></div>`)
	require.NoError(t, err)
	require.True(t, doc.Quirks())

	els, err := doc.Select(".card")
	require.NoError(t, err)
	assert.Equal(t, []string{"lower"}, ids(els))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReaderError(t *testing.T) {
	_, err := Parse(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing HTML")
}

func TestClassMatcherFilter(t *testing.T) {
	root, err := html.Parse(strings.NewReader(`<div class="card"></div><div class="other"></div>`))
	require.NoError(t, err)

	all := newClassMatcher("card", false).MatchAll(root)
	require.Len(t, all, 1)

	var divs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			divs = append(divs, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	require.Len(t, divs, 2)

	assert.Equal(t, all, newClassMatcher("card", false).Filter(divs))
}
