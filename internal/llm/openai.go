package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIClient OpenAI兼容接口的大模型客户端
// 支持官方API和任何兼容chat completions协议的端点
type OpenAIClient struct {
	client *openai.Client // go-openai客户端
	cfg    *Config        // 客户端配置
	logger *logrus.Logger // 日志记录器
}

// NewOpenAIClient 创建OpenAI客户端
func NewOpenAIClient(opts ...Option) (Client, error) {
	cfg := NewConfig(opts...)

	if cfg.APIKey == "" {
		return nil, NewLLMError(ErrCodeInvalidAPIKey, ErrMsgInvalidAPIKey)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Generate 根据提示词生成回答
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, options ...GenerateOption) (*Response, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, NewLLMError(ErrCodeEmptyPrompt, ErrMsgEmptyPrompt)
	}

	opts := &GenerateOptions{}
	for _, opt := range options {
		opt(opts)
	}

	req := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
	}

	// 请求级选项覆盖客户端默认值
	if opts.MaxTokens != nil {
		req.MaxTokens = *opts.MaxTokens
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	if opts.TopP != nil {
		req.TopP = *opts.TopP
	}

	var resp openai.ChatCompletionResponse
	var err error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			// 指数退避重试
			select {
			case <-ctx.Done():
				return nil, NewLLMError(ErrCodeTimeout, ctx.Err().Error())
			case <-time.After(time.Duration(1<<attempt) * 100 * time.Millisecond):
				// 等待后继续
			}
		}

		resp, err = c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}
		if !isRetryable(err) {
			return nil, mapError(err)
		}

		c.logger.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"model":   c.cfg.Model,
			"error":   err.Error(),
		}).Warn("LLM request failed, retrying")
	}

	if err != nil {
		return nil, mapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, NewLLMError(ErrCodeEmptyResponse, ErrMsgEmptyResponse)
	}

	return &Response{
		Text:       resp.Choices[0].Message.Content,
		TokenCount: resp.Usage.TotalTokens,
		ModelName:  resp.Model,
		FinishTime: time.Now(),
	}, nil
}

// Name 返回模型名称
func (c *OpenAIClient) Name() string {
	return c.cfg.Model
}

// isRetryable 判断错误是否值得重试
// 仅对限流和服务端错误重试，客户端错误直接返回
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests ||
			apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	// 非API错误视为网络问题，重试
	return true
}

// mapError 将go-openai的错误映射到统一的LLMError
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized:
			return NewLLMError(ErrCodeInvalidAPIKey, ErrMsgInvalidAPIKey)
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return NewLLMError(ErrCodeRateLimited, ErrMsgRateLimited)
		case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return NewLLMError(ErrCodeServerError, apiErr.Message)
		default:
			return NewLLMError(ErrCodeInvalidRequest, apiErr.Message)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewLLMError(ErrCodeTimeout, ErrMsgTimeout)
	}
	return WrapError(err, ErrCodeNetworkError)
}

// 在包初始化时注册OpenAI客户端
func init() {
	RegisterClient("openai", NewOpenAIClient)
}
