package form

import (
	"context"
	"errors"
	"log"

	"github.com/adanwillian46-design/trackflix2.0/internal/client"
	"github.com/adanwillian46-design/trackflix2.0/internal/model"
	"github.com/go-playground/validator/v10"
)

// 面向用户的提示文案
const (
	MsgTitleRequired = "Please enter a title"
	MsgMovieAdded    = "Movie added successfully!"
	MsgUnknownError  = "Unknown error"
	MsgConnection    = "Could not connect to the server"
	errorPrefix      = "Error: "
)

// MovieCreator 把草稿提交到新增电影接口，由 *client.Client 实现
type MovieCreator interface {
	CreateMovie(ctx context.Context, draft model.MovieDraft) (*client.CreateResult, error)
}

var _ MovieCreator = (*client.Client)(nil)

// Controller 处理新增表单、搜索框和筛选按钮，调用之间不保存状态
type Controller struct {
	api      MovieCreator
	validate *validator.Validate
}

func NewController(api MovieCreator) *Controller {
	return &Controller{
		api:      api,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SubmitMovie 从表单组装草稿并只提交一次
// 成功时提示并刷新页面；失败时提示并返回错误，不刷新
func (c *Controller) SubmitMovie(ctx context.Context, doc Document, view View) (*model.Movie, error) {
	draft := model.MovieDraft{
		Title:  doc.Value(FieldTitle),
		Year:   doc.Value(FieldYear),
		Type:   doc.Value(FieldType),
		Genre:  doc.Value(FieldGenre),
		Poster: doc.Value(FieldPoster),
		Notes:  doc.Value(FieldNotes),
	}

	if err := c.validate.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			view.Alert(MsgTitleRequired)
			return nil, &ValidationError{Field: FieldTitle, Message: MsgTitleRequired}
		}
		return nil, err
	}

	log.Printf("[FormController] 提交电影: %q", draft.Title)

	result, err := c.api.CreateMovie(ctx, draft)
	if err != nil {
		log.Printf("[FormController] 请求失败: %v", err)
		view.Alert(MsgConnection)
		return nil, &RequestError{Message: MsgConnection, Err: err}
	}

	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = MsgUnknownError
		}
		view.Alert(errorPrefix + msg)
		return nil, &RequestError{Message: msg}
	}

	view.Alert(MsgMovieAdded)
	view.Reload()
	return result.Movie, nil
}

// SearchMovies 仅回显关键词，不执行搜索
func (c *Controller) SearchMovies(doc Document, view View) string {
	query := doc.Value(FieldSearch)
	view.Alert("Searching: " + query)
	return query
}

// FilterMovies 回显筛选状态，并把 trigger 设为唯一激活的筛选按钮，不执行筛选
func (c *Controller) FilterMovies(status string, trigger Element, doc Document, view View) {
	view.Alert("Filtering by: " + status)
	for _, btn := range doc.ElementsByClass(FilterButtonClass) {
		btn.RemoveClass(ActiveClass)
	}
	if trigger != nil {
		trigger.AddClass(ActiveClass)
	}
}

// Ready 页面就绪钩子，记录关键元素是否存在
func (c *Controller) Ready(doc Document) {
	log.Println("[FormController] 页面已就绪")
	for _, id := range []string{FieldSearch, FieldTitle, MovieGrid} {
		_, found := doc.Element(id)
		log.Printf("[FormController] - %s: %v", id, found)
	}
}
