package taskqueue

import (
	"encoding/json"
	"time"
)

// TaskType 任务类型
type TaskType string

const (
	// TaskSummarize 文档摘要任务
	TaskSummarize TaskType = "summarize_document"
)

// TaskStatus 任务状态
type TaskStatus string

const (
	// StatusPending 等待处理
	StatusPending TaskStatus = "pending"
	// StatusProcessing 处理中
	StatusProcessing TaskStatus = "processing"
	// StatusCompleted 已完成
	StatusCompleted TaskStatus = "completed"
	// StatusFailed 处理失败
	StatusFailed TaskStatus = "failed"
)

// Task 任务基础结构
type Task struct {
	ID          string          `json:"id"`           // 任务唯一标识符
	Type        TaskType        `json:"type"`         // 任务类型
	DocumentID  string          `json:"document_id"`  // 关联的文档标识（文件ID或文件名）
	Status      TaskStatus      `json:"status"`       // 任务状态
	Payload     json.RawMessage `json:"payload"`      // 任务载荷数据，不同任务类型对应不同结构
	Result      json.RawMessage `json:"result"`       // 任务结果数据，不同任务类型对应不同结构
	Error       string          `json:"error"`        // 错误信息（如果处理失败）
	CreatedAt   time.Time       `json:"created_at"`   // 创建时间
	UpdatedAt   time.Time       `json:"updated_at"`   // 更新时间
	StartedAt   *time.Time      `json:"started_at"`   // 开始处理时间
	CompletedAt *time.Time      `json:"completed_at"` // 完成时间
	Attempts    int             `json:"attempts"`     // 尝试次数
	MaxRetries  int             `json:"max_retries"`  // 最大重试次数
}

// SummarizePayload 文档摘要任务载荷
// Text和FileID二选一：直接给文本，或者给存储中的文件ID由工作者解析
type SummarizePayload struct {
	Text      string `json:"text,omitempty"`    // 待摘要的文本
	FileID    string `json:"file_id,omitempty"` // 存储中的文件ID
	FileName  string `json:"file_name"`         // 文件名
	FileType  string `json:"file_type"`         // 文件类型: text/markdown/pdf/docx
	Mode      string `json:"mode"`              // 摘要模式: local/online
	Length    string `json:"length"`            // 长度档位: short/medium/long
	MaxPoints int    `json:"max_points"`        // 关键要点数量上限
	Save      bool   `json:"save"`              // 是否持久化结果
	APIKey    string `json:"api_key,omitempty"` // 在线模式的API密钥
}

// SummarizeResult 文档摘要任务结果
type SummarizeResult struct {
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
