package handler

import (
	"html"
	"log"

	"github.com/adanwillian46-design/trackflix2.0/internal/form"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AlertsContainer 页面中承载提示的元素 ID
const AlertsContainer = "alerts"

// pageView 服务端渲染下的 View：提示先收集，刷新时写入 Session flash 并重定向
type pageView struct {
	c        *gin.Context
	alerts   []string
	reloaded bool
}

var _ form.View = (*pageView)(nil)

func newPageView(c *gin.Context) *pageView {
	return &pageView{c: c, alerts: []string{}}
}

func (v *pageView) Alert(message string) {
	v.alerts = append(v.alerts, message)
}

func (v *pageView) Reload() {
	v.reloaded = true
}

// flush 把提示存入 flash，供重定向后的页面显示
func (v *pageView) flush() {
	session := sessions.Default(v.c)
	for _, msg := range v.alerts {
		session.AddFlash(msg)
	}
	if err := session.Save(); err != nil {
		log.Printf("[pageView] 保存 flash 失败: %v", err)
	}
}

// consumeFlashes 读取并清空 flash
func consumeFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return []string{}
	}
	if err := session.Save(); err != nil {
		log.Printf("[pageView] 清空 flash 失败: %v", err)
	}
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// domView 直接把提示写进已渲染的页面
type domView struct {
	doc *form.HTMLDocument
}

var _ form.View = domView{}

func (v domView) Alert(message string) {
	v.doc.AppendHTML(AlertsContainer, `<div class="alert">`+html.EscapeString(message)+`</div>`)
}

// Reload 已渲染的页面本身就是最新状态
func (v domView) Reload() {}
