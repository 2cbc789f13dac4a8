package form

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLDocument 基于 goquery 解析的 HTML 页面
type HTMLDocument struct {
	doc *goquery.Document
}

var _ Document = (*HTMLDocument)(nil)

// ParseHTML 解析页面
func ParseHTML(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &HTMLDocument{doc: doc}, nil
}

// Value 读取 input 的 value、textarea 的文本或 select 的选中项
func (d *HTMLDocument) Value(id string) string {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return ""
	}
	switch goquery.NodeName(sel) {
	case "textarea":
		return sel.Text()
	case "select":
		opt := sel.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = sel.Find("option").First()
		}
		if opt.Length() == 0 {
			return ""
		}
		if v, ok := opt.Attr("value"); ok {
			return v
		}
		return strings.TrimSpace(opt.Text())
	default:
		return sel.AttrOr("value", "")
	}
}

func (d *HTMLDocument) Element(id string) (Element, bool) {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return nil, false
	}
	return htmlElement{sel: sel}, true
}

func (d *HTMLDocument) ElementsByClass(class string) []Element {
	return d.Find("." + class)
}

// Find 按 CSS 选择器查找元素
func (d *HTMLDocument) Find(selector string) []Element {
	var out []Element
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, htmlElement{sel: s})
	})
	return out
}

// AppendHTML 向指定 ID 的元素追加 HTML 片段
func (d *HTMLDocument) AppendHTML(id, fragment string) bool {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return false
	}
	sel.AppendHtml(fragment)
	return true
}

// HTML 输出（可能已修改的）页面
func (d *HTMLDocument) HTML() (string, error) {
	return d.doc.Html()
}

func (d *HTMLDocument) byID(id string) *goquery.Selection {
	return d.doc.Find(`[id="` + strings.ReplaceAll(id, `"`, `\"`) + `"]`).First()
}

type htmlElement struct {
	sel *goquery.Selection
}

func (e htmlElement) ID() string               { return e.sel.AttrOr("id", "") }
func (e htmlElement) Attr(name string) string  { return e.sel.AttrOr(name, "") }
func (e htmlElement) AddClass(class string)    { e.sel.AddClass(class) }
func (e htmlElement) RemoveClass(class string) { e.sel.RemoveClass(class) }
func (e htmlElement) HasClass(class string) bool {
	return e.sel.HasClass(class)
}
