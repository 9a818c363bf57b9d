package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fyerfyer/doc-summary-system/pkg/taskqueue"
	"github.com/sirupsen/logrus"
)

// SummarizeAsync 将摘要任务加入队列，返回任务ID
// 调用方通过GetTaskInfo轮询任务状态和结果
func (s *SummaryService) SummarizeAsync(ctx context.Context, payload *taskqueue.SummarizePayload) (string, error) {
	if s.queue == nil {
		return "", fmt.Errorf("task queue is not configured")
	}
	if payload == nil {
		return "", taskqueue.ErrInvalidPayload
	}

	// 补齐默认参数，保证工作者侧行为一致
	if payload.Mode == "" {
		payload.Mode = defaultMode
	}
	if payload.Length == "" {
		payload.Length = defaultLength
	}
	if payload.MaxPoints <= 0 {
		payload.MaxPoints = defaultMaxPoints
	}
	if payload.FileName == "" {
		payload.FileName = defaultFilename
	}
	if payload.FileType == "" {
		payload.FileType = defaultFileType
	}

	documentID := payload.FileID
	if documentID == "" {
		documentID = payload.FileName
	}

	taskID, err := s.queue.Enqueue(ctx, taskqueue.TaskSummarize, documentID, payload)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue summarize task: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"task_id":  taskID,
		"filename": payload.FileName,
		"mode":     payload.Mode,
	}).Info("Summarize task enqueued")

	return taskID, nil
}

// GetTaskInfo 获取任务状态信息
func (s *SummaryService) GetTaskInfo(ctx context.Context, taskID string) (*taskqueue.TaskInfo, error) {
	if s.queue == nil {
		return nil, fmt.Errorf("task queue is not configured")
	}

	task, err := s.queue.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return taskqueue.NewTaskInfo(task), nil
}

// WaitForTask 等待任务完成并返回任务信息
func (s *SummaryService) WaitForTask(ctx context.Context, taskID string, timeout time.Duration) (*taskqueue.TaskInfo, error) {
	if s.queue == nil {
		return nil, fmt.Errorf("task queue is not configured")
	}

	task, err := s.queue.WaitForTask(ctx, taskID, timeout)
	if err != nil {
		return nil, err
	}

	return taskqueue.NewTaskInfo(task), nil
}

// ProcessTask 处理队列中的摘要任务，实现taskqueue.Handler接口
func (s *SummaryService) ProcessTask(ctx context.Context, task *taskqueue.Task) error {
	if task.Type != taskqueue.TaskSummarize {
		return fmt.Errorf("unsupported task type: %s", task.Type)
	}

	var payload taskqueue.SummarizePayload
	if err := taskqueue.UnmarshalPayload(task.Payload, &payload); err != nil {
		return taskqueue.ErrInvalidPayload
	}

	// 文本为空时从存储中解析文档
	text := payload.Text
	fileType := payload.FileType
	if text == "" && payload.FileID != "" {
		parsed, parsedType, err := s.ParseStored(ctx, payload.FileID, payload.FileName)
		if err != nil {
			return fmt.Errorf("failed to parse stored document: %w", err)
		}
		text = parsed
		fileType = parsedType
	}

	result, err := s.Summarize(ctx, SummarizeRequest{
		Text:      text,
		Filename:  payload.FileName,
		FileType:  fileType,
		Mode:      payload.Mode,
		Length:    payload.Length,
		MaxPoints: payload.MaxPoints,
		Save:      payload.Save,
		APIKey:    payload.APIKey,
	})
	if err != nil {
		return err
	}

	// 把结果写回任务记录，工作者随后会标记任务完成
	taskResult := &taskqueue.SummarizeResult{
		Summary:        result.Summary,
		KeyPoints:      result.KeyPoints,
		Mode:           result.Mode,
		Length:         result.Length,
		Filename:       result.Filename,
		FileType:       result.FileType,
		OriginalLength: result.OriginalLength,
		SummaryLength:  result.SummaryLength,
		SavedID:        result.SavedID,
	}
	if s.queue != nil {
		if err := s.queue.UpdateTaskStatus(ctx, task.ID, taskqueue.StatusProcessing, taskResult, ""); err != nil {
			s.logger.WithError(err).WithField("task_id", task.ID).Warn("Failed to store task result")
		}
	}

	return nil
}

// GetTaskTypes 返回支持的任务类型
func (s *SummaryService) GetTaskTypes() []taskqueue.TaskType {
	return []taskqueue.TaskType{taskqueue.TaskSummarize}
}
