package form

import "net/url"

// 表单控制器依赖的页面元素 ID 与 class
const (
	FieldTitle  = "movieTitle"
	FieldYear   = "movieYear"
	FieldType   = "movieType"
	FieldGenre  = "movieGenre"
	FieldPoster = "moviePoster"
	FieldNotes  = "movieNotes"
	FieldSearch = "searchInput"
	MovieGrid   = "movieGrid"

	FilterButtonClass = "filter-btn"
	ActiveClass       = "active"
)

// Document 表单控制器读取和修改的页面
type Document interface {
	// Value 返回指定 ID 字段的当前值，不存在时返回空字符串
	Value(id string) string
	Element(id string) (Element, bool)
	ElementsByClass(class string) []Element
}

// Element 页面上的单个控件
type Element interface {
	ID() string
	Attr(name string) string
	AddClass(class string)
	RemoveClass(class string)
	HasClass(class string) bool
}

// View 承接表单控制器对用户可见的效果
type View interface {
	// Alert 显示阻塞式提示
	Alert(message string)
	// Reload 从服务端整体刷新页面
	Reload()
}

// FormDocument 基于提交的表单值，没有可操作的元素
type FormDocument struct {
	values url.Values
}

var _ Document = (*FormDocument)(nil)

func NewFormDocument(values url.Values) *FormDocument {
	if values == nil {
		values = url.Values{}
	}
	return &FormDocument{values: values}
}

func (d *FormDocument) Value(id string) string {
	return d.values.Get(id)
}

func (d *FormDocument) Element(string) (Element, bool) {
	return nil, false
}

func (d *FormDocument) ElementsByClass(string) []Element {
	return nil
}
