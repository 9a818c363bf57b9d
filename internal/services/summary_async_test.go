package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fyerfyer/doc-summary-system/pkg/taskqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAsyncService 创建一个带miniredis任务队列的摘要服务
func setupAsyncService(t *testing.T) (*SummaryService, taskqueue.Queue) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	queue, err := taskqueue.NewRedisQueue(&taskqueue.Config{
		RedisAddr:   mr.Addr(),
		Concurrency: 1,
		RetryLimit:  1,
	})
	require.NoError(t, err, "Failed to create redis queue")
	t.Cleanup(func() { queue.Close() })

	service := setupService(t, WithTaskQueue(queue))
	return service, queue
}

func TestSummaryService_SummarizeAsync(t *testing.T) {
	service, _ := setupAsyncService(t)
	ctx := context.Background()

	payload := &taskqueue.SummarizePayload{
		Text:     sampleText,
		FileName: "async-test.txt",
	}

	taskID, err := service.SummarizeAsync(ctx, payload)
	require.NoError(t, err)
	assert.NotEmpty(t, taskID, "Enqueued task should have an ID")

	// 入队时补齐了默认参数
	assert.Equal(t, "local", payload.Mode)
	assert.Equal(t, "medium", payload.Length)
	assert.Equal(t, 5, payload.MaxPoints)

	// 任务初始状态为pending
	info, err := service.GetTaskInfo(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, taskqueue.StatusPending, info.Status)
	assert.Equal(t, "async-test.txt", info.DocumentID)
	assert.Equal(t, 0.0, info.Progress)
}

func TestSummaryService_SummarizeAsync_NoQueue(t *testing.T) {
	service := setupService(t)
	ctx := context.Background()

	_, err := service.SummarizeAsync(ctx, &taskqueue.SummarizePayload{Text: sampleText})
	assert.Error(t, err, "Async summarize without a queue should fail")
}

func TestSummaryService_ProcessTask(t *testing.T) {
	service, queue := setupAsyncService(t)
	ctx := context.Background()

	// 入队一个带持久化的摘要任务
	taskID, err := service.SummarizeAsync(ctx, &taskqueue.SummarizePayload{
		Text:     sampleText,
		FileName: "process-test.txt",
		Save:     true,
	})
	require.NoError(t, err)

	task, err := queue.GetTask(ctx, taskID)
	require.NoError(t, err)

	// 直接调用处理器，模拟工作者执行
	err = service.ProcessTask(ctx, task)
	require.NoError(t, err)

	// 结果应当已写回任务记录
	processed, err := queue.GetTask(ctx, taskID)
	require.NoError(t, err)
	assert.NotEmpty(t, processed.Result, "Task result should be stored")

	var result taskqueue.SummarizeResult
	err = taskqueue.UnmarshalPayload(processed.Result, &result)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Summary)
	assert.NotEmpty(t, result.KeyPoints)
	assert.NotZero(t, result.SavedID, "Save flag should persist the summary")

	// 持久化的记录可以取回
	record, err := service.GetSummary(result.SavedID)
	require.NoError(t, err)
	assert.Equal(t, "process-test.txt", record.Filename)
}

func TestSummaryService_ProcessTask_InvalidPayload(t *testing.T) {
	service, _ := setupAsyncService(t)
	ctx := context.Background()

	task := &taskqueue.Task{
		ID:      "bad-task",
		Type:    taskqueue.TaskSummarize,
		Payload: []byte("{not valid json"),
	}

	err := service.ProcessTask(ctx, task)
	assert.ErrorIs(t, err, taskqueue.ErrInvalidPayload)
}

func TestSummaryService_GetTaskTypes(t *testing.T) {
	service := setupService(t)
	assert.Equal(t, []taskqueue.TaskType{taskqueue.TaskSummarize}, service.GetTaskTypes())
}
