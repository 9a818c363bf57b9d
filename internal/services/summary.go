package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fyerfyer/doc-summary-system/internal/cache"
	"github.com/fyerfyer/doc-summary-system/internal/document"
	"github.com/fyerfyer/doc-summary-system/internal/models"
	"github.com/fyerfyer/doc-summary-system/internal/repository"
	"github.com/fyerfyer/doc-summary-system/internal/summarizer"
	"github.com/fyerfyer/doc-summary-system/pkg/storage"
	"github.com/fyerfyer/doc-summary-system/pkg/taskqueue"
	"github.com/sirupsen/logrus"
)

// 默认参数，与请求未指定时的行为保持一致
const (
	defaultMode      = summarizer.ModeLocal
	defaultLength    = "medium"
	defaultMaxPoints = 5
	defaultFilename  = "pasted_text"
	defaultFileType  = "text"
)

// SummarizeRequest 摘要请求参数
type SummarizeRequest struct {
	Text      string // 待摘要的文本
	Filename  string // 文件名，粘贴文本时为pasted_text
	FileType  string // 文件类型: text/markdown/pdf/docx
	FilePath  string // 上传文件的存储路径（可选）
	Mode      string // 摘要模式: local/online
	Length    string // 长度档位: short/medium/long
	MaxPoints int    // 关键要点数量上限
	Save      bool   // 是否持久化结果
	APIKey    string // 在线模式的API密钥
}

// SummarizeResult 摘要结果
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

// SummaryService 摘要服务
// 负责协调解析、摘要生成、缓存和持久化
type SummaryService struct {
	repo      repository.SummaryRepository // 摘要仓储
	cache     cache.Cache                  // 缓存
	storage   storage.Storage              // 文件存储
	queue     taskqueue.Queue              // 任务队列（异步摘要用）
	resources *summarizer.Resources        // 本地摘要共享资源
	cacheTTL  time.Duration                // 缓存有效期
	logger    *logrus.Logger               // 日志记录器
}

// SummaryOption 摘要服务配置选项
type SummaryOption func(*SummaryService)

// NewSummaryService 创建摘要服务实例
func NewSummaryService(
	repo repository.SummaryRepository,
	cacheStore cache.Cache,
	opts ...SummaryOption,
) (*SummaryService, error) {
	service := &SummaryService{
		repo:     repo,
		cache:    cacheStore,
		cacheTTL: 24 * time.Hour, // 默认缓存24小时
		logger:   logrus.New(),
	}

	// 应用配置选项
	for _, opt := range opts {
		opt(service)
	}

	// 分词资源未注入时加载一份
	if service.resources == nil {
		res, err := summarizer.NewResources()
		if err != nil {
			return nil, fmt.Errorf("failed to load summarizer resources: %w", err)
		}
		service.resources = res
	}

	return service, nil
}

// WithStorage 设置文件存储
func WithStorage(s storage.Storage) SummaryOption {
	return func(svc *SummaryService) {
		svc.storage = s
	}
}

// WithTaskQueue 设置任务队列
func WithTaskQueue(q taskqueue.Queue) SummaryOption {
	return func(svc *SummaryService) {
		svc.queue = q
	}
}

// WithCacheTTL 设置缓存时间
func WithCacheTTL(ttl time.Duration) SummaryOption {
	return func(svc *SummaryService) {
		svc.cacheTTL = ttl
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *logrus.Logger) SummaryOption {
	return func(svc *SummaryService) {
		svc.logger = logger
	}
}

// WithResources 设置本地摘要共享资源
func WithResources(res *summarizer.Resources) SummaryOption {
	return func(svc *SummaryService) {
		svc.resources = res
	}
}

// normalize 填充请求的默认参数
func (req *SummarizeRequest) normalize() {
	if req.Mode == "" {
		req.Mode = defaultMode
	}
	if req.Length == "" {
		req.Length = defaultLength
	}
	if req.MaxPoints <= 0 {
		req.MaxPoints = defaultMaxPoints
	}
	if req.Filename == "" {
		req.Filename = defaultFilename
	}
	if req.FileType == "" {
		req.FileType = defaultFileType
	}
}

// Summarize 生成摘要和关键要点
// 空白文本返回summarizer.ErrEmptyInput，在线模式缺少密钥返回summarizer.ErrMissingCredentials
func (s *SummaryService) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResult, error) {
	req.normalize()

	if strings.TrimSpace(req.Text) == "" {
		return nil, summarizer.ErrEmptyInput
	}

	// 尝试从缓存获取，需要落库的请求跳过缓存以保证拿到saved_id
	cacheKey := cache.SummaryKey(req.Text, req.Mode, req.Length, req.MaxPoints)
	if !req.Save && s.cache != nil {
		if cached, found, err := s.cache.Get(cacheKey); err == nil && found {
			var result SummarizeResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				s.logger.WithField("cache_key", cacheKey).Debug("Summary cache hit")
				return &result, nil
			}
		}
	}

	// 创建摘要器
	sum, err := summarizer.New(req.Mode,
		summarizer.WithAPIKey(req.APIKey),
		summarizer.WithResources(s.resources),
	)
	if err != nil {
		return nil, err
	}

	// 生成摘要和关键要点
	summaryText, err := sum.Summarize(ctx, req.Text, req.Length)
	if err != nil {
		return nil, err
	}

	keyPoints, err := sum.ExtractKeyPoints(ctx, req.Text, req.MaxPoints)
	if err != nil {
		return nil, err
	}
	if keyPoints == nil {
		keyPoints = []string{}
	}

	result := &SummarizeResult{
		Summary:        summaryText,
		KeyPoints:      keyPoints,
		Mode:           req.Mode,
		Length:         req.Length,
		Filename:       req.Filename,
		FileType:       req.FileType,
		OriginalLength: utf8.RuneCountInString(req.Text),
		SummaryLength:  utf8.RuneCountInString(summaryText),
	}

	// 持久化
	if req.Save {
		record := &models.Summary{
			Filename:     req.Filename,
			OriginalText: req.Text,
			Summary:      summaryText,
			Mode:         req.Mode,
			Length:       req.Length,
			FileType:     req.FileType,
			FilePath:     req.FilePath,
		}
		if err := record.SetKeyPoints(keyPoints); err != nil {
			return nil, fmt.Errorf("failed to encode key points: %w", err)
		}

		id, err := s.repo.Create(record)
		if err != nil {
			return nil, fmt.Errorf("failed to save summary: %w", err)
		}
		result.SavedID = id

		s.logger.WithFields(logrus.Fields{
			"summary_id": id,
			"filename":   req.Filename,
			"mode":       req.Mode,
		}).Info("Summary saved")
	}

	// 缓存结果，不包含saved_id
	if s.cache != nil {
		cached := *result
		cached.SavedID = 0
		if data, err := json.Marshal(&cached); err == nil {
			if err := s.cache.Set(cacheKey, string(data), s.cacheTTL); err != nil {
				s.logger.WithError(err).Warn("Failed to cache summary result")
			}
		}
	}

	return result, nil
}

// ParseDocument 解析上传的文档，返回纯文本和文件类型
func (s *SummaryService) ParseDocument(ctx context.Context, r io.Reader, filename string) (string, string, error) {
	text, contentType, err := document.ParseReader(r, filename)
	if err != nil {
		return "", "", err
	}
	return text, string(contentType), nil
}

// SaveDocument 将上传的文档保存到存储中
func (s *SummaryService) SaveDocument(r io.Reader, filename string) (storage.FileInfo, error) {
	if s.storage == nil {
		return storage.FileInfo{}, fmt.Errorf("storage is not configured")
	}
	return s.storage.Save(r, filename)
}

// ParseStored 解析存储中已保存的文档
func (s *SummaryService) ParseStored(ctx context.Context, fileID string, filename string) (string, string, error) {
	if s.storage == nil {
		return "", "", fmt.Errorf("storage is not configured")
	}

	reader, err := s.storage.Get(fileID)
	if err != nil {
		return "", "", fmt.Errorf("failed to get stored file: %w", err)
	}
	defer reader.Close()

	return s.ParseDocument(ctx, reader, filename)
}

// GetSummary 根据ID获取摘要记录
func (s *SummaryService) GetSummary(id uint) (*models.Summary, error) {
	return s.repo.GetByID(id)
}

// ListSummaries 列出已保存的摘要
func (s *SummaryService) ListSummaries(limit int) ([]*models.SummaryListItem, error) {
	return s.repo.List(limit)
}

// DeleteSummary 删除摘要记录
func (s *SummaryService) DeleteSummary(id uint) (bool, error) {
	return s.repo.Delete(id)
}

// exportRecord 导出JSON时的字段布局
type exportRecord struct {
	ID           uint     `json:"id"`
	Filename     string   `json:"filename"`
	OriginalText string   `json:"original_text"`
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"key_points"`
	Mode         string   `json:"mode"`
	Length       string   `json:"length"`
	FileType     string   `json:"file_type"`
	CreatedAt    string   `json:"created_at"`
}

// ExportSummary 导出摘要记录
// format支持txt和json，记录不存在时返回models.ErrSummaryNotFound
func (s *SummaryService) ExportSummary(id uint, format string) (string, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(&exportRecord{
			ID:           record.ID,
			Filename:     record.Filename,
			OriginalText: record.OriginalText,
			Summary:      record.Summary,
			KeyPoints:    record.GetKeyPoints(),
			Mode:         record.Mode,
			Length:       record.Length,
			FileType:     record.FileType,
			CreatedAt:    record.CreatedAt.Format(time.RFC3339),
		}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal summary: %w", err)
		}
		return string(data), nil
	case "", "txt":
		return formatSummaryText(record), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// formatSummaryText 生成纯文本导出格式
func formatSummaryText(record *models.Summary) string {
	rule := strings.Repeat("=", 50)

	lines := []string{
		fmt.Sprintf("Document: %s", record.Filename),
		fmt.Sprintf("Date: %s", record.CreatedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Mode: %s | Length: %s", record.Mode, record.Length),
		"",
		rule,
		"SUMMARY",
		rule,
		record.Summary,
		"",
		rule,
		"KEY POINTS",
		rule,
	}

	for i, point := range record.GetKeyPoints() {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, point))
	}

	return strings.Join(lines, "\n")
}
