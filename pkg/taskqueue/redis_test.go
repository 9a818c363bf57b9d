package taskqueue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisTest 设置一个miniredis实例用于测试
// 返回Redis地址和一个清理函数
func setupRedisTest(t *testing.T) (string, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}

	return mr.Addr(), func() {
		mr.Close()
	}
}

func testConfig(redisAddr string) *Config {
	return &Config{
		RedisAddr:   redisAddr,
		Concurrency: 2,
		RetryLimit:  2,
		RetryDelay:  time.Second,
	}
}

func testPayload() *SummarizePayload {
	return &SummarizePayload{
		Text:      "The quick brown fox jumps over the lazy dog. It was a sunny day.",
		FileName:  "document.txt",
		FileType:  "text",
		Mode:      "local",
		Length:    "medium",
		MaxPoints: 5,
	}
}

// TestNewRedisQueue 测试创建Redis队列实例
func TestNewRedisQueue(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	assert.NoError(t, err)
	assert.NotNil(t, queue)

	err = queue.Close()
	assert.NoError(t, err)
}

// TestRedisQueue_Enqueue 测试队列入队功能
func TestRedisQueue_Enqueue(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()

	// 测试基本入队
	taskID, err := queue.Enqueue(ctx, TaskSummarize, "document.txt", testPayload())
	assert.NoError(t, err)
	assert.NotEmpty(t, taskID)

	// 验证任务已入队
	task, err := queue.GetTask(ctx, taskID)
	assert.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
	assert.Equal(t, TaskSummarize, task.Type)
	assert.Equal(t, "document.txt", task.DocumentID)
	assert.Equal(t, StatusPending, task.Status)
	assert.NotNil(t, task.Payload)

	// 载荷反序列化后字段保持一致
	var payload SummarizePayload
	err = UnmarshalPayload(task.Payload, &payload)
	assert.NoError(t, err)
	assert.Equal(t, "local", payload.Mode)
	assert.Equal(t, "medium", payload.Length)
	assert.Equal(t, 5, payload.MaxPoints)
}

// TestRedisQueue_EnqueueAt 测试延时入队功能
func TestRedisQueue_EnqueueAt(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()

	// 测试延时入队
	processAt := time.Now().Add(time.Second)
	taskID, err := queue.EnqueueAt(ctx, TaskSummarize, "document.txt", testPayload(), processAt)
	assert.NoError(t, err)
	assert.NotEmpty(t, taskID)

	// 验证任务已入队
	task, err := queue.GetTask(ctx, taskID)
	assert.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
	assert.Equal(t, TaskSummarize, task.Type)
	assert.Equal(t, StatusPending, task.Status)
}

// TestRedisQueue_EnqueueIn 测试延时入队功能
func TestRedisQueue_EnqueueIn(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()

	// 测试延时入队
	taskID, err := queue.EnqueueIn(ctx, TaskSummarize, "document.txt", testPayload(), time.Second)
	assert.NoError(t, err)
	assert.NotEmpty(t, taskID)

	// 验证任务已入队
	task, err := queue.GetTask(ctx, taskID)
	assert.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
	assert.Equal(t, StatusPending, task.Status)
}

// TestRedisQueue_GetTasksByDocument 测试获取文档相关任务
func TestRedisQueue_GetTasksByDocument(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()
	documentID := "report.pdf"

	// 为同一个文档入队多个任务（不同长度档位）
	for _, length := range []string{"short", "medium", "long"} {
		payload := testPayload()
		payload.Length = length
		_, err := queue.Enqueue(ctx, TaskSummarize, documentID, payload)
		require.NoError(t, err)
	}

	// 获取文档相关的任务
	tasks, err := queue.GetTasksByDocument(ctx, documentID)
	assert.NoError(t, err)
	assert.Len(t, tasks, 3)

	// 验证所有任务都关联到正确的文档
	for _, task := range tasks {
		assert.Equal(t, documentID, task.DocumentID)
	}

	// 测试获取不存在文档的任务
	emptyTasks, err := queue.GetTasksByDocument(ctx, "non-existent")
	assert.NoError(t, err)
	assert.Empty(t, emptyTasks)
}

// TestRedisQueue_UpdateTaskStatus 测试更新任务状态
func TestRedisQueue_UpdateTaskStatus(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()

	taskID, err := queue.Enqueue(ctx, TaskSummarize, "document.txt", testPayload())
	require.NoError(t, err)

	// 更新任务状态到处理中
	err = queue.UpdateTaskStatus(ctx, taskID, StatusProcessing, nil, "")
	assert.NoError(t, err)

	// 验证状态已更新
	task, err := queue.GetTask(ctx, taskID)
	assert.NoError(t, err)
	assert.Equal(t, StatusProcessing, task.Status)
	assert.NotNil(t, task.StartedAt)

	// 更新任务状态到已完成，带结果
	result := &SummarizeResult{
		Summary:        "The quick brown fox jumps over the lazy dog.",
		KeyPoints:      []string{"quick brown fox"},
		Mode:           "local",
		Length:         "medium",
		Filename:       "document.txt",
		FileType:       "text",
		OriginalLength: 64,
		SummaryLength:  44,
	}
	err = queue.UpdateTaskStatus(ctx, taskID, StatusCompleted, result, "")
	assert.NoError(t, err)

	// 验证状态和结果已更新
	task, err = queue.GetTask(ctx, taskID)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.NotNil(t, task.CompletedAt)
	assert.NotEmpty(t, task.Result)

	var gotResult SummarizeResult
	err = UnmarshalPayload(task.Result, &gotResult)
	assert.NoError(t, err)
	assert.Equal(t, result.Summary, gotResult.Summary)
	assert.Equal(t, result.KeyPoints, gotResult.KeyPoints)

	// 测试更新到失败状态
	failTaskID, err := queue.Enqueue(ctx, TaskSummarize, "document.txt", testPayload())
	require.NoError(t, err)

	errorMsg := "input text is empty"
	err = queue.UpdateTaskStatus(ctx, failTaskID, StatusFailed, nil, errorMsg)
	assert.NoError(t, err)

	// 验证失败状态
	failTask, err := queue.GetTask(ctx, failTaskID)
	assert.NoError(t, err)
	assert.Equal(t, StatusFailed, failTask.Status)
	assert.Equal(t, errorMsg, failTask.Error)
	assert.NotNil(t, failTask.CompletedAt)
}

// TestRedisQueue_DeleteTask 测试删除任务
func TestRedisQueue_DeleteTask(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()

	documentID := "delete-test.txt"
	taskID, err := queue.Enqueue(ctx, TaskSummarize, documentID, testPayload())
	require.NoError(t, err)

	// 确认任务和文档关联存在
	tasks, err := queue.GetTasksByDocument(ctx, documentID)
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)

	// 删除任务
	err = queue.DeleteTask(ctx, taskID)
	assert.NoError(t, err)

	// 验证任务已被删除
	_, err = queue.GetTask(ctx, taskID)
	assert.Error(t, err)
	assert.Equal(t, ErrTaskNotFound, err)

	// 验证文档关联也被删除
	tasks, err = queue.GetTasksByDocument(ctx, documentID)
	assert.NoError(t, err)
	assert.Empty(t, tasks)
}

// TestRedisQueue_NotifyTaskUpdate 测试任务更新通知
func TestRedisQueue_NotifyTaskUpdate(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()

	taskID, err := queue.Enqueue(ctx, TaskSummarize, "notify-test.txt", testPayload())
	require.NoError(t, err)

	// 测试通知更新
	err = queue.NotifyTaskUpdate(ctx, taskID)
	assert.NoError(t, err)
}

// TestRedisQueue_WaitForTask 测试等待任务完成
func TestRedisQueue_WaitForTask(t *testing.T) {
	redisAddr, cleanup := setupRedisTest(t)
	defer cleanup()

	queue, err := NewRedisQueue(testConfig(redisAddr))
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()

	taskID, err := queue.Enqueue(ctx, TaskSummarize, "wait-test.txt", testPayload())
	require.NoError(t, err)

	// 先标记完成，再等待应当立即返回
	err = queue.UpdateTaskStatus(ctx, taskID, StatusCompleted, nil, "")
	require.NoError(t, err)

	task, err := queue.WaitForTask(ctx, taskID, 2*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, task.Status)

	// 等待一直处于pending的任务应当超时
	pendingID, err := queue.Enqueue(ctx, TaskSummarize, "wait-test.txt", testPayload())
	require.NoError(t, err)

	_, err = queue.WaitForTask(ctx, pendingID, 100*time.Millisecond)
	assert.Equal(t, ErrTaskTimeout, err)
}

// TestTaskInfo 测试TaskInfo生成
func TestTaskInfo(t *testing.T) {
	now := time.Now()
	startedAt := now.Add(-5 * time.Minute)
	completedAt := now.Add(-1 * time.Minute)

	task := &Task{
		ID:          "task-123",
		Type:        TaskSummarize,
		DocumentID:  "document.txt",
		Status:      StatusCompleted,
		Error:       "",
		CreatedAt:   now.Add(-10 * time.Minute),
		UpdatedAt:   now,
		StartedAt:   &startedAt,
		CompletedAt: &completedAt,
		Attempts:    1,
		MaxRetries:  3,
	}

	info := NewTaskInfo(task)

	// 验证TaskInfo包含正确信息
	assert.Equal(t, task.ID, info.ID)
	assert.Equal(t, task.Type, info.Type)
	assert.Equal(t, task.DocumentID, info.DocumentID)
	assert.Equal(t, task.Status, info.Status)
	assert.Equal(t, task.Error, info.Error)
	assert.Equal(t, task.CreatedAt, info.CreatedAt)
	assert.Equal(t, task.StartedAt, info.StartedAt)
	assert.Equal(t, task.CompletedAt, info.CompletedAt)
	assert.Equal(t, 100.0, info.Progress) // 已完成状态进度为100%
}
