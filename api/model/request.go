package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BindingErrorMessage 将绑定校验错误转换为可读的提示信息
// 非校验类错误返回通用提示
func BindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request parameters"
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fieldErr.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fieldErr.Param()))
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(messages, "; ")
}

// SummarizeParams 摘要请求的查询参数
// 与JSON或表单中的文本内容配合使用
type SummarizeParams struct {
	Mode      string `form:"mode" binding:"omitempty,oneof=local online"`         // 摘要模式
	Length    string `form:"length" binding:"omitempty,oneof=short medium long"`  // 长度档位
	APIKey    string `form:"api_key" binding:"omitempty"`                         // 在线模式的API密钥
	Save      bool   `form:"save" binding:"omitempty"`                            // 是否持久化结果
	MaxPoints int    `form:"max_points" binding:"omitempty,min=1,max=20"`         // 关键要点数量上限
}

// SummarizeTextRequest JSON请求体中的文本内容
type SummarizeTextRequest struct {
	Text     string `json:"text" form:"text"`         // 待摘要的文本
	Filename string `json:"filename" form:"filename"` // 文件名（可选）
}

// SummaryIDRequest 摘要记录ID路径参数
type SummaryIDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"` // 记录ID
}

// SummaryListRequest 摘要列表查询参数
type SummaryListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"` // 返回条数上限
}

// GetLimit 获取返回条数，默认50
func (r *SummaryListRequest) GetLimit() int {
	if r.Limit <= 0 {
		return 50
	}
	return r.Limit
}

// ExportRequest 导出格式查询参数
type ExportRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=txt json"` // 导出格式
}

// TaskIDRequest 任务ID路径参数
type TaskIDRequest struct {
	ID string `uri:"id" binding:"required"` // 任务ID
}
