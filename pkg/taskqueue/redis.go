package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// taskTTL 任务记录在Redis中的保留时间
const taskTTL = 7 * 24 * time.Hour

// taskKey 任务数据的Redis键
func taskKey(taskID string) string {
	return "task:" + taskID
}

// docTasksKey 文档关联任务集合的Redis键
func docTasksKey(documentID string) string {
	return "document_tasks:" + documentID
}

// statusChannel 任务状态变更的发布/订阅频道
func statusChannel(taskID string) string {
	return "task_status:" + taskID
}

// redisOpt 从队列配置构造asynq的Redis连接选项
func redisOpt(cfg *Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// RedisQueue 基于asynq和Redis的任务队列
// asynq负责任务调度，任务元数据单独存在Redis中供查询
type RedisQueue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	rdb       *redis.Client
	cfg       *Config
	logger    *logrus.Logger
}

// NewRedisQueue 创建Redis任务队列并验证连接
func NewRedisQueue(cfg *Config) (Queue, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opt := redisOpt(cfg)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &RedisQueue{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		rdb:       rdb,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// newTask 构造一个待入队的任务记录
func (q *RedisQueue) newTask(taskType TaskType, documentID string, payload interface{}) (*Task, error) {
	payloadBytes, err := MarshalPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	now := time.Now()
	return &Task{
		ID:         uuid.New().String(),
		Type:       taskType,
		DocumentID: documentID,
		Status:     StatusPending,
		Payload:    payloadBytes,
		CreatedAt:  now,
		UpdatedAt:  now,
		MaxRetries: q.cfg.RetryLimit,
	}, nil
}

// enqueue 存储任务记录并提交给asynq
// asynq任务载荷只携带taskID，实际数据通过Redis键读取
func (q *RedisQueue) enqueue(ctx context.Context, task *Task, opts ...asynq.Option) (string, error) {
	if err := q.storeTask(ctx, task); err != nil {
		return "", fmt.Errorf("failed to save task to redis: %w", err)
	}

	asynqTask := asynq.NewTask(string(task.Type), []byte(task.ID))
	if _, err := q.client.EnqueueContext(ctx, asynqTask, opts...); err != nil {
		return "", fmt.Errorf("failed to enqueue task: %w", err)
	}

	return task.ID, nil
}

// Enqueue 将任务加入队列
func (q *RedisQueue) Enqueue(ctx context.Context, taskType TaskType, documentID string, payload interface{}) (string, error) {
	task, err := q.newTask(taskType, documentID, payload)
	if err != nil {
		return "", err
	}

	taskID, err := q.enqueue(ctx, task)
	if err != nil {
		return "", err
	}

	q.logger.WithFields(logrus.Fields{
		"task_id":     taskID,
		"task_type":   taskType,
		"document_id": documentID,
	}).Info("Task enqueued successfully")

	return taskID, nil
}

// EnqueueAt 在指定时间将任务加入队列
func (q *RedisQueue) EnqueueAt(ctx context.Context, taskType TaskType, documentID string, payload interface{}, processAt time.Time) (string, error) {
	task, err := q.newTask(taskType, documentID, payload)
	if err != nil {
		return "", err
	}
	return q.enqueue(ctx, task, asynq.ProcessAt(processAt))
}

// EnqueueIn 在指定延迟后将任务加入队列
func (q *RedisQueue) EnqueueIn(ctx context.Context, taskType TaskType, documentID string, payload interface{}, delay time.Duration) (string, error) {
	return q.EnqueueAt(ctx, taskType, documentID, payload, time.Now().Add(delay))
}

// GetTask 获取任务信息
func (q *RedisQueue) GetTask(ctx context.Context, taskID string) (*Task, error) {
	data, err := q.rdb.Get(ctx, taskKey(taskID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task from redis: %w", err)
	}

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task data: %w", err)
	}
	return &task, nil
}

// GetTasksByDocument 获取文档相关的所有任务
func (q *RedisQueue) GetTasksByDocument(ctx context.Context, documentID string) ([]*Task, error) {
	taskIDs, err := q.rdb.SMembers(ctx, docTasksKey(documentID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get document tasks: %w", err)
	}

	tasks := make([]*Task, 0, len(taskIDs))
	for _, taskID := range taskIDs {
		task, err := q.GetTask(ctx, taskID)
		if err != nil {
			// 任务记录过期后集合成员仍可能残留
			if errors.Is(err, ErrTaskNotFound) {
				continue
			}
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// isFinished 任务是否已到达终态
func isFinished(task *Task) bool {
	return task.Status == StatusCompleted || task.Status == StatusFailed
}

// WaitForTask 等待任务完成并返回结果
// 订阅状态变更通知，同时以1秒间隔轮询兜底
func (q *RedisQueue) WaitForTask(ctx context.Context, taskID string, timeout time.Duration) (*Task, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if isFinished(task) {
		return task, nil
	}

	pubsub := q.rdb.Subscribe(ctx, statusChannel(taskID))
	defer pubsub.Close()
	notify := pubsub.Channel()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ErrTaskTimeout
		case <-notify:
		case <-ticker.C:
		}

		task, err := q.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if isFinished(task) {
			return task, nil
		}
	}
}

// DeleteTask 删除任务记录及其文档关联
func (q *RedisQueue) DeleteTask(ctx context.Context, taskID string) error {
	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	if task.DocumentID != "" {
		if err := q.rdb.SRem(ctx, docTasksKey(task.DocumentID), taskID).Err(); err != nil {
			return fmt.Errorf("failed to remove task from document tasks: %w", err)
		}
	}

	if err := q.rdb.Del(ctx, taskKey(taskID)).Err(); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	// 已进入处理的任务asynq可能删不掉，只记录警告
	if err := q.inspector.DeleteTask("default", taskID); err != nil {
		q.logger.WithError(err).WithField("task_id", taskID).Warn("Failed to delete task from asynq queue")
	}

	return nil
}

// Close 关闭队列连接
func (q *RedisQueue) Close() error {
	if err := q.client.Close(); err != nil {
		return err
	}
	return q.rdb.Close()
}

// storeTask 写入任务记录并维护文档关联集合
func (q *RedisQueue) storeTask(ctx context.Context, task *Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := q.rdb.Set(ctx, taskKey(task.ID), data, taskTTL).Err(); err != nil {
		return fmt.Errorf("failed to save task data: %w", err)
	}

	if task.DocumentID != "" {
		key := docTasksKey(task.DocumentID)
		if err := q.rdb.SAdd(ctx, key, task.ID).Err(); err != nil {
			return fmt.Errorf("failed to add task to document tasks: %w", err)
		}
		q.rdb.Expire(ctx, key, taskTTL)
	}

	return nil
}

// UpdateTaskStatus 更新任务状态
// result为nil时保留已有结果，处理器可以在处理中途先写入结果
func (q *RedisQueue) UpdateTaskStatus(ctx context.Context, taskID string, status TaskStatus, result interface{}, errMsg string) error {
	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	now := time.Now()
	task.Status = status
	task.UpdatedAt = now

	if status == StatusProcessing && task.StartedAt == nil {
		task.StartedAt = &now
	}
	if isFinished(task) {
		task.CompletedAt = &now
	}

	if result != nil {
		resultBytes, err := MarshalPayload(result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		task.Result = resultBytes
	}
	if errMsg != "" {
		task.Error = errMsg
	}

	return q.storeTask(ctx, task)
}

// NotifyTaskUpdate 发布任务状态更新通知
func (q *RedisQueue) NotifyTaskUpdate(ctx context.Context, taskID string) error {
	return q.rdb.Publish(ctx, statusChannel(taskID), "updated").Err()
}

// RedisWorker 基于asynq的任务工作者
type RedisWorker struct {
	server   *asynq.Server
	queue    *RedisQueue
	handlers map[TaskType]Handler
	logger   *logrus.Logger
}

// NewRedisWorker 创建Redis工作者
// cfg为nil时沿用队列自身的配置
func NewRedisWorker(queue *RedisQueue, cfg *Config) Worker {
	if cfg == nil {
		cfg = queue.cfg
	}

	server := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      cfg.Queues,
		RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
			return cfg.RetryDelay
		},
		Logger: queue.logger,
	})

	return &RedisWorker{
		server:   server,
		queue:    queue,
		handlers: make(map[TaskType]Handler),
		logger:   queue.logger,
	}
}

// RegisterHandler 注册任务处理器
func (w *RedisWorker) RegisterHandler(taskType TaskType, handler Handler) {
	w.handlers[taskType] = handler
}

// handleFunc 包装处理器，负责状态流转和变更通知
func (w *RedisWorker) handleFunc(handler Handler) asynq.HandlerFunc {
	return func(ctx context.Context, asynqTask *asynq.Task) error {
		taskID := string(asynqTask.Payload())

		task, err := w.queue.GetTask(ctx, taskID)
		if err != nil {
			w.logger.WithError(err).WithField("task_id", taskID).Error("Failed to get task info")
			return err
		}

		if err := w.queue.UpdateTaskStatus(ctx, taskID, StatusProcessing, nil, ""); err != nil {
			w.logger.WithError(err).WithField("task_id", taskID).Error("Failed to update task status to processing")
		}
		w.queue.NotifyTaskUpdate(ctx, taskID)

		processErr := handler.ProcessTask(ctx, task)

		status, errMsg := StatusCompleted, ""
		if processErr != nil {
			status, errMsg = StatusFailed, processErr.Error()
		}
		// 结果传nil，保留处理器在ProcessTask中写入的结果
		if err := w.queue.UpdateTaskStatus(ctx, taskID, status, nil, errMsg); err != nil {
			w.logger.WithError(err).WithField("task_id", taskID).Error("Failed to update final task status")
		}
		w.queue.NotifyTaskUpdate(ctx, taskID)

		return processErr
	}
}

// Start 启动工作者
func (w *RedisWorker) Start() error {
	mux := asynq.NewServeMux()
	for taskType, handler := range w.handlers {
		mux.HandleFunc(string(taskType), w.handleFunc(handler))
		w.logger.WithField("task_type", taskType).Info("Registered handler for task type")
	}
	return w.server.Start(mux)
}

// Stop 停止工作者
func (w *RedisWorker) Stop() {
	w.server.Shutdown()
}

// 队列工厂函数映射
var queueFactories = make(map[string]Factory)

// RegisterQueueFactory 注册队列工厂函数
func RegisterQueueFactory(name string, factory Factory) {
	queueFactories[name] = factory
}

// NewQueue 根据名称创建队列实例
func NewQueue(name string, cfg *Config) (Queue, error) {
	factory, exists := queueFactories[name]
	if !exists {
		return nil, fmt.Errorf("unknown queue implementation: %s", name)
	}
	return factory(cfg)
}

// 在包初始化时注册Redis队列
func init() {
	RegisterQueueFactory("redis", NewRedisQueue)
}
