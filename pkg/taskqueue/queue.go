package taskqueue

import (
	"context"
	"encoding/json"
	"time"
)

// TaskError 任务错误类型
type TaskError string

// Error 实现error接口
func (e TaskError) Error() string {
	return string(e)
}

// 包级哨兵错误
var (
	ErrTaskNotFound   = TaskError("task not found")
	ErrTaskTimeout    = TaskError("task timed out")
	ErrInvalidPayload = TaskError("invalid task payload")
)

// Queue 任务队列接口
// 负责任务的入队、状态查询和结果获取
type Queue interface {
	// Enqueue 将任务加入队列
	Enqueue(ctx context.Context, taskType TaskType, documentID string, payload interface{}) (string, error)

	// EnqueueAt 在指定时间将任务加入队列
	EnqueueAt(ctx context.Context, taskType TaskType, documentID string, payload interface{}, processAt time.Time) (string, error)

	// EnqueueIn 在指定延迟后将任务加入队列
	EnqueueIn(ctx context.Context, taskType TaskType, documentID string, payload interface{}, delay time.Duration) (string, error)

	// GetTask 获取任务信息
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// GetTasksByDocument 获取文档相关的所有任务
	GetTasksByDocument(ctx context.Context, documentID string) ([]*Task, error)

	// WaitForTask 等待任务完成并返回结果
	// timeout为0表示不设置超时
	WaitForTask(ctx context.Context, taskID string, timeout time.Duration) (*Task, error)

	// DeleteTask 删除任务
	DeleteTask(ctx context.Context, taskID string) error

	// UpdateTaskStatus 更新任务状态和结果
	UpdateTaskStatus(ctx context.Context, taskID string, status TaskStatus, result interface{}, errorMsg string) error

	// NotifyTaskUpdate 通知任务状态已更新
	NotifyTaskUpdate(ctx context.Context, taskID string) error

	// Close 关闭队列连接
	Close() error
}

// Handler 任务处理器接口
type Handler interface {
	// ProcessTask 处理任务
	ProcessTask(ctx context.Context, task *Task) error

	// GetTaskTypes 返回此处理器支持的任务类型
	GetTaskTypes() []TaskType
}

// Worker 工作者接口
// 运行一组Handler消费队列中的任务
type Worker interface {
	RegisterHandler(taskType TaskType, handler Handler)
	Start() error
	Stop()
}

// Factory 队列工厂函数类型
type Factory func(cfg *Config) (Queue, error)

// Config 队列配置
type Config struct {
	RedisAddr     string         // Redis地址
	RedisPassword string         // Redis密码
	RedisDB       int            // Redis数据库
	Concurrency   int            // 并发处理任务数
	RetryLimit    int            // 最大重试次数
	RetryDelay    time.Duration  // 重试延迟
	Queues        map[string]int // 队列名称到优先级的映射
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		RedisAddr:   "localhost:6379",
		RedisDB:     0,
		Concurrency: 10,
		RetryLimit:  3,
		RetryDelay:  time.Minute,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	}
}

// TaskInfo 对外暴露的任务元信息
// API响应中使用的简化视图
type TaskInfo struct {
	ID          string          `json:"id"`
	Type        TaskType        `json:"type"`
	DocumentID  string          `json:"document_id"`
	Status      TaskStatus      `json:"status"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at"`
	Progress    float64         `json:"progress"`
}

// NewTaskInfo 从Task创建TaskInfo
func NewTaskInfo(task *Task) *TaskInfo {
	return &TaskInfo{
		ID:          task.ID,
		Type:        task.Type,
		DocumentID:  task.DocumentID,
		Status:      task.Status,
		Result:      task.Result,
		Error:       task.Error,
		CreatedAt:   task.CreatedAt,
		StartedAt:   task.StartedAt,
		CompletedAt: task.CompletedAt,
		Progress:    taskProgress(task.Status),
	}
}

// taskProgress 按状态估算进度百分比
// 处理中和失败的任务没有精确进度，按一半计
func taskProgress(status TaskStatus) float64 {
	switch status {
	case StatusCompleted:
		return 100.0
	case StatusProcessing, StatusFailed:
		return 50.0
	default:
		return 0.0
	}
}

// MarshalPayload 将任务载荷序列化为JSON
func MarshalPayload(payload interface{}) (json.RawMessage, error) {
	if payload == nil {
		return json.RawMessage("{}"), nil
	}
	return json.Marshal(payload)
}

// UnmarshalPayload 将JSON反序列化为任务载荷
func UnmarshalPayload(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
