package theme

import (
	"fmt"
	"slices"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"

	"cssg/css"
	"cssg/geom"
)

// Preview renders a small XHTML page exercising the generated styles: a
// heading, typeset samples for every feature the theme enables and an
// inventory of the selectors the stylesheet carries. cssRef is the
// stylesheet reference to link, title the already expanded page title.
func Preview(def *Definition, sheet *css.Stylesheet, page geom.Rect, cssRef, title string) *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xml:lang", def.Language)

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")
	link := head.CreateElement("link")
	link.CreateAttr("rel", "stylesheet")
	link.CreateAttr("type", "text/css")
	link.CreateAttr("href", cssRef)
	head.CreateElement("title").SetText(title)

	body := html.CreateElement("body")
	body.CreateElement("h1").SetText(def.Name)

	opener := body.CreateElement("p")
	if def.Features.DropCaps {
		opener.CreateAttr("class", "opener")
	}
	opener.SetText("The quick brown fox jumps over the lazy dog, pack my box with five dozen liquor jugs.")

	sample := body.CreateElement("p")
	sample.SetText("Follow ")
	anchor := sample.CreateElement("a")
	anchor.CreateAttr("href", "https://www.w3.org/Style/CSS/")
	anchor.SetText("this link")
	if def.Features.FootnoteMarkers {
		note := sample.CreateElement("a")
		note.CreateAttr("class", "footnote")
		note.CreateAttr("href", "#footnotes")
		note.SetText("1")
	}

	quote := body.CreateElement("blockquote")
	quote.CreateElement("p").SetText("Typography is the craft of endowing human language with a durable visual form.")

	q := body.CreateElement("p")
	q.CreateElement("q").SetText("Quoted inline text")

	body.CreateElement("hr")

	// Half-scale page box so the preview shows proportions without filling
	// the screen.
	half := page.Scale(0.5)
	thumb := body.CreateElement("div")
	thumb.CreateAttr("class", "page")
	thumb.CreateAttr("style", fmt.Sprintf("width: %s; height: %s", css.Px(half.Width), css.Px(half.Height)))
	thumb.CreateElement("code").SetText(page.String())

	if def.Features.FootnoteMarkers {
		footnotes := body.CreateElement("section")
		footnotes.CreateAttr("id", "footnotes")
		footnotes.CreateElement("p").SetText("1. Sample footnote text.")
	}

	body.CreateElement("h2").SetText("Selectors")
	selectors := sheet.Selectors()
	sort.Sort(natural.StringSlice(selectors))
	selectors = slices.Compact(selectors)
	list := body.CreateElement("ul")
	for _, s := range selectors {
		list.CreateElement("li").CreateElement("code").SetText(s)
	}

	return doc
}
