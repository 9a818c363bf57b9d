package summarizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fyerfyer/doc-summary-system/internal/llm"
)

// 远程摘要常量
const (
	// maxRemoteInputRunes 发送给远程模型的文本长度上限
	maxRemoteInputRunes = 10000
)

// 长度档位到提示词指令的映射表
var lengthInstructions = map[string]string{
	"short":  "in 2-3 sentences",
	"medium": "in 4-6 sentences",
	"long":   "in a detailed paragraph of 8-10 sentences",
}

// bulletPrefixPattern 匹配要点行的项目符号前缀
var bulletPrefixPattern = regexp.MustCompile(`^[•\-\*]\s*`)

// RemoteSummarizer 在线摘要器
// 通过大模型客户端委托给远程生成式服务，实现与本地策略相同的契约
type RemoteSummarizer struct {
	client llm.Client // 大模型客户端
}

// NewRemoteSummarizer 创建在线摘要器
// 缺少API密钥时返回ErrMissingCredentials，绝不回退到本地模式
func NewRemoteSummarizer(cfg *Config) (*RemoteSummarizer, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredentials
	}

	opts := []llm.Option{llm.WithAPIKey(cfg.APIKey)}
	if cfg.Model != "" {
		opts = append(opts, llm.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(cfg.BaseURL))
	}

	client, err := llm.NewClient("openai", opts...)
	if err != nil {
		return nil, err
	}

	return &RemoteSummarizer{client: client}, nil
}

// NewRemoteSummarizerWithClient 使用指定的大模型客户端创建在线摘要器
func NewRemoteSummarizerWithClient(client llm.Client) *RemoteSummarizer {
	return &RemoteSummarizer{client: client}
}

// Summarize 委托远程模型生成摘要
func (s *RemoteSummarizer) Summarize(ctx context.Context, text string, length string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	instruction, ok := lengthInstructions[length]
	if !ok {
		instruction = lengthInstructions["medium"]
	}

	prompt := fmt.Sprintf(`Summarize the following text %s.
Focus on the main ideas and key information. Be concise and clear.

TEXT:
%s

SUMMARY:`, instruction, clipRunes(text, maxRemoteInputRunes))

	resp, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return "", &RemoteError{Op: "summarize", Err: err}
	}

	return strings.TrimSpace(resp.Text), nil
}

// ExtractKeyPoints 委托远程模型提取关键要点
// 解析响应中的项目符号行，最多返回maxPoints条
func (s *RemoteSummarizer) ExtractKeyPoints(ctx context.Context, text string, maxPoints int) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if maxPoints <= 0 {
		maxPoints = defaultMaxPoints
	}

	prompt := fmt.Sprintf(`Extract exactly %d key points from the following text.
Format each point as a clear, concise bullet point.
Return ONLY the bullet points, one per line, starting with "•".

TEXT:
%s

KEY POINTS:`, maxPoints, clipRunes(text, maxRemoteInputRunes))

	resp, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return nil, &RemoteError{Op: "extract_key_points", Err: err}
	}

	points := parseBullets(resp.Text, maxPoints)
	if len(points) == 0 {
		// 无法解析出要点时，整个响应作为单条返回
		return []string{strings.TrimSpace(resp.Text)}, nil
	}
	return points, nil
}

// Name 返回摘要器名称
func (s *RemoteSummarizer) Name() string {
	return ModeOnline
}

// parseBullets 解析响应文本中的项目符号行
func parseBullets(text string, maxPoints int) []string {
	var points []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = bulletPrefixPattern.ReplaceAllString(strings.TrimSpace(line), "")
		if line != "" && len(points) < maxPoints {
			points = append(points, line)
		}
	}
	return points
}

// clipRunes 截取文本的前n个字符，不追加省略号
func clipRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// 在包初始化时注册在线摘要器
func init() {
	Register(ModeOnline, func(cfg *Config) (Summarizer, error) {
		return NewRemoteSummarizer(cfg)
	})
}
