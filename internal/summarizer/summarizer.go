package summarizer

import "context"

// 摘要器模式常量
const (
	// ModeLocal 本地离线模式，使用提取式算法
	ModeLocal = "local"
	// ModeOnline 在线模式，委托给远程生成式模型
	ModeOnline = "online"
)

// Summarizer 摘要器接口
// 本地和在线两种策略实现同一契约，调用方可以透明切换
type Summarizer interface {
	// Summarize 生成指定长度档位的摘要
	// length取值为short/medium/long，未识别的档位按medium处理
	Summarize(ctx context.Context, text string, length string) (string, error)

	// ExtractKeyPoints 提取最多maxPoints条关键要点
	ExtractKeyPoints(ctx context.Context, text string, maxPoints int) ([]string, error)

	// Name 返回摘要器名称
	Name() string
}

// Config 摘要器配置
type Config struct {
	APIKey    string     // 在线模式的API密钥
	Model     string     // 在线模式的模型名称
	BaseURL   string     // 在线模式的API端点
	Resources *Resources // 本地模式的语言资源包，nil时自动构建
}

// Option 摘要器配置选项函数类型
type Option func(*Config)

// WithAPIKey 设置API密钥
func WithAPIKey(apiKey string) Option {
	return func(c *Config) {
		c.APIKey = apiKey
	}
}

// WithModel 设置模型名称
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithBaseURL 设置API端点
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithResources 设置共享的语言资源包
// 资源包构造一次后可被多个本地摘要器并发复用
func WithResources(res *Resources) Option {
	return func(c *Config) {
		c.Resources = res
	}
}

// Factory 摘要器工厂函数类型
type Factory func(cfg *Config) (Summarizer, error)

// 全局注册的摘要器工厂函数
var factories = make(map[string]Factory)

// Register 注册摘要器工厂函数
func Register(mode string, factory Factory) {
	factories[mode] = factory
}

// New 根据模式创建摘要器
// 模式是封闭集合{local, online}，调用方无需检查具体类型
func New(mode string, opts ...Option) (Summarizer, error) {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	factory, exists := factories[mode]
	if !exists {
		return nil, ErrUnknownMode
	}
	return factory(cfg)
}
