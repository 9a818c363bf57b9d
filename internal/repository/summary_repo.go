package repository

import (
	"errors"

	"github.com/fyerfyer/doc-summary-system/internal/database"
	"github.com/fyerfyer/doc-summary-system/internal/models"
	"gorm.io/gorm"
)

// 列表预览截取的摘要字符数
const previewLength = 200

// summaryRepository 摘要仓储实现
type summaryRepository struct {
	db *gorm.DB // 数据库连接
}

// NewSummaryRepository 创建摘要仓储实例
func NewSummaryRepository() SummaryRepository {
	return &summaryRepository{
		db: database.MustDB(),
	}
}

// NewSummaryRepositoryWithDB 使用指定的数据库连接创建摘要仓储实例
func NewSummaryRepositoryWithDB(db *gorm.DB) SummaryRepository {
	if db == nil {
		db = database.MustDB()
	}
	return &summaryRepository{db: db}
}

// Create 创建摘要记录
func (r *summaryRepository) Create(summary *models.Summary) (uint, error) {
	if err := r.db.Create(summary).Error; err != nil {
		return 0, err
	}
	return summary.ID, nil
}

// GetByID 根据ID获取摘要记录
func (r *summaryRepository) GetByID(id uint) (*models.Summary, error) {
	var summary models.Summary
	err := r.db.Where("id = ?", id).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSummaryNotFound
		}
		return nil, err
	}
	return &summary, nil
}

// List 列出摘要记录，按创建时间降序
// 用SQL的substr截取预览，避免把原文全文读进内存
func (r *summaryRepository) List(limit int) ([]*models.SummaryListItem, error) {
	if limit <= 0 {
		limit = 50
	}

	var items []*models.SummaryListItem
	err := r.db.Model(&models.Summary{}).
		Select("id, filename, mode, length, file_type, created_at, substr(summary, 1, ?) as summary_preview", previewLength).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Delete 删除摘要记录
func (r *summaryRepository) Delete(id uint) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Summary{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count 统计摘要记录总数
func (r *summaryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Summary{}).Count(&count).Error
	return count, err
}
