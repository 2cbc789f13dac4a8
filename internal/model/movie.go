package model

// TimeLayout 日期字段的存储格式
const TimeLayout = "2006-01-02 15:04:05"

// 默认值
const (
	DefaultType   = "movie"
	DefaultStatus = "pending"
)

// Movie 片单中的一部电影或剧集
type Movie struct {
	ID          int     `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title"`
	Year        string  `json:"year"`
	Type        string  `json:"type"`
	Poster      string  `json:"poster"`
	Genre       string  `json:"genre"`
	Status      string  `json:"status" gorm:"index"`
	Rating      float64 `json:"rating"`
	Notes       string  `json:"notes"`
	DateAdded   string  `json:"date_added"`
	LastUpdated string  `json:"last_updated,omitempty"`
}

// MovieDraft 表单提交前的临时记录，每次提交时从表单字段重新构建
type MovieDraft struct {
	Title  string `json:"title" form:"title" validate:"required"`
	Year   string `json:"year" form:"year"`
	Type   string `json:"type" form:"type"`
	Genre  string `json:"genre" form:"genre"`
	Poster string `json:"poster" form:"poster"`
	Notes  string `json:"notes" form:"notes"`
	// 以下字段前端表单不提供，API 调用方可选传入
	Status string  `json:"status,omitempty" form:"-"`
	Rating float64 `json:"rating,omitempty" form:"-" validate:"gte=0"`
}

// RatingRequest 更新评分请求
type RatingRequest struct {
	Rating float64 `json:"rating" binding:"gte=0"`
}

// StatusRequest 更新状态请求
type StatusRequest struct {
	Status string `json:"status"`
}
