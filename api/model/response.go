package model

import (
	"time"

	"github.com/fyerfyer/doc-summary-system/internal/models"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`               // 响应状态码，0表示成功
	Message string      `json:"message"`            // 响应消息
	Data    interface{} `json:"data,omitempty"`     // 响应数据，可能为空
	TraceID string      `json:"trace_id,omitempty"` // 调用链追踪ID
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string) *Response {
	return &Response{
		Code:    code,
		Message: message,
	}
}

// SummarizeResponse 摘要生成响应
type SummarizeResponse struct {
	Summary        string   `json:"summary"`            // 摘要文本
	KeyPoints      []string `json:"key_points"`         // 关键要点列表
	Mode           string   `json:"mode"`               // 使用的摘要模式
	Length         string   `json:"length"`             // 使用的长度档位
	Filename       string   `json:"filename"`           // 文件名
	FileType       string   `json:"file_type"`          // 文件类型
	OriginalLength int      `json:"original_length"`    // 原文字符数
	SummaryLength  int      `json:"summary_length"`     // 摘要字符数
	SavedID        uint     `json:"saved_id,omitempty"` // 持久化后的记录ID
}

// SummaryDetailResponse 摘要记录详情响应
type SummaryDetailResponse struct {
	ID           uint      `json:"id"`            // 记录ID
	Filename     string    `json:"filename"`      // 文件名
	OriginalText string    `json:"original_text"` // 原始文本
	Summary      string    `json:"summary"`       // 摘要文本
	KeyPoints    []string  `json:"key_points"`    // 关键要点列表
	Mode         string    `json:"mode"`          // 摘要模式
	Length       string    `json:"length"`        // 长度档位
	FileType     string    `json:"file_type"`     // 文件类型
	CreatedAt    time.Time `json:"created_at"`    // 创建时间
}

// NewSummaryDetailResponse 从数据模型构造详情响应
func NewSummaryDetailResponse(s *models.Summary) *SummaryDetailResponse {
	return &SummaryDetailResponse{
		ID:           s.ID,
		Filename:     s.Filename,
		OriginalText: s.OriginalText,
		Summary:      s.Summary,
		KeyPoints:    s.GetKeyPoints(),
		Mode:         s.Mode,
		Length:       s.Length,
		FileType:     s.FileType,
		CreatedAt:    s.CreatedAt,
	}
}

// SummaryListItem 摘要列表项
type SummaryListItem struct {
	ID             uint      `json:"id"`              // 记录ID
	Filename       string    `json:"filename"`        // 文件名
	Mode           string    `json:"mode"`            // 摘要模式
	Length         string    `json:"length"`          // 长度档位
	FileType       string    `json:"file_type"`       // 文件类型
	CreatedAt      time.Time `json:"created_at"`      // 创建时间
	SummaryPreview string    `json:"summary_preview"` // 摘要预览
}

// SummaryListResponse 摘要列表响应
type SummaryListResponse struct {
	Total     int               `json:"total"`     // 返回条数
	Summaries []SummaryListItem `json:"summaries"` // 摘要列表
}

// NewSummaryListResponse 从数据模型构造列表响应
func NewSummaryListResponse(items []*models.SummaryListItem) *SummaryListResponse {
	list := make([]SummaryListItem, len(items))
	for i, item := range items {
		list[i] = SummaryListItem{
			ID:             item.ID,
			Filename:       item.Filename,
			Mode:           item.Mode,
			Length:         item.Length,
			FileType:       item.FileType,
			CreatedAt:      item.CreatedAt,
			SummaryPreview: item.SummaryPreview,
		}
	}
	return &SummaryListResponse{
		Total:     len(list),
		Summaries: list,
	}
}

// SummaryDeleteResponse 摘要删除响应
type SummaryDeleteResponse struct {
	Success bool `json:"success"` // 是否成功
	ID      uint `json:"id"`      // 记录ID
}

// AsyncSummarizeResponse 异步摘要响应
type AsyncSummarizeResponse struct {
	TaskID   string `json:"task_id"`  // 任务ID
	Filename string `json:"filename"` // 文件名
	Status   string `json:"status"`   // 初始任务状态
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`  // 服务状态
	Version string `json:"version"` // 版本号
}
