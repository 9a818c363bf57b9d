package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Summary 摘要记录数据模型
// 持久化一次摘要调用的输入、输出和参数
type Summary struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"` // 自增主键
	Filename     string         `gorm:"size:255;not null" json:"filename"`  // 文件名，粘贴文本时为pasted_text
	OriginalText string         `gorm:"type:text" json:"original_text"`     // 原始文本
	Summary      string         `gorm:"type:text" json:"summary"`           // 摘要文本
	KeyPoints    datatypes.JSON `gorm:"type:json" json:"key_points"`        // 关键要点，JSON字符串数组
	Mode         string         `gorm:"size:10;not null" json:"mode"`       // 摘要模式：local或online
	Length       string         `gorm:"size:10;not null" json:"length"`     // 长度档位：short/medium/long
	FileType     string         `gorm:"size:10" json:"file_type"`           // 文件类型：text/markdown/pdf/docx
	FilePath     string         `gorm:"size:255" json:"file_path"`          // 上传文件的存储路径，粘贴文本时为空
	CreatedAt    time.Time      `gorm:"not null;index" json:"created_at"`   // 创建时间
}

// BeforeCreate GORM的钩子函数，创建记录前自动设置时间
func (s *Summary) BeforeCreate(tx *gorm.DB) (err error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return nil
}

// TableName 明确指定表名
func (Summary) TableName() string {
	return "summaries"
}

// SetKeyPoints 将要点列表序列化到JSON列
func (s *Summary) SetKeyPoints(points []string) error {
	if points == nil {
		points = []string{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return err
	}
	s.KeyPoints = datatypes.JSON(data)
	return nil
}

// GetKeyPoints 从JSON列反序列化要点列表
// 列内容损坏时返回空列表而不是错误
func (s *Summary) GetKeyPoints() []string {
	if len(s.KeyPoints) == 0 {
		return []string{}
	}
	var points []string
	if err := json.Unmarshal(s.KeyPoints, &points); err != nil {
		return []string{}
	}
	return points
}

// SummaryListItem 摘要列表项
// 列表视图使用的轻量记录，不携带原文全文
type SummaryListItem struct {
	ID             uint      `json:"id"`              // 主键
	Filename       string    `json:"filename"`        // 文件名
	Mode           string    `json:"mode"`            // 摘要模式
	Length         string    `json:"length"`          // 长度档位
	FileType       string    `json:"file_type"`       // 文件类型
	CreatedAt      time.Time `json:"created_at"`      // 创建时间
	SummaryPreview string    `json:"summary_preview"` // 摘要前200个字符
}
