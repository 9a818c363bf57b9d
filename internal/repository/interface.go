package repository

import "github.com/fyerfyer/doc-summary-system/internal/models"

// SummaryRepository 摘要仓储接口
// 负责摘要记录的存储和检索
type SummaryRepository interface {
	// Create 创建摘要记录，返回分配的ID
	Create(summary *models.Summary) (uint, error)

	// GetByID 根据ID获取摘要记录
	// 记录不存在时返回models.ErrSummaryNotFound
	GetByID(id uint) (*models.Summary, error)

	// List 列出摘要记录，最新的在前
	// 返回不含原文全文的轻量列表项
	List(limit int) ([]*models.SummaryListItem, error)

	// Delete 删除摘要记录
	// 返回是否确实删除了记录，删除不存在的记录不是错误
	Delete(id uint) (bool, error)

	// Count 统计摘要记录总数
	Count() (int64, error)
}
