package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fyerfyer/doc-summary-system/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLMClient 测试用的大模型客户端
// 记录收到的提示词并返回预设响应
type fakeLLMClient struct {
	response string   // 预设的响应文本
	err      error    // 预设的错误
	prompts  []string // 收到的提示词历史
}

func (c *fakeLLMClient) Generate(_ context.Context, prompt string, _ ...llm.GenerateOption) (*llm.Response, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return nil, c.err
	}
	return &llm.Response{Text: c.response, ModelName: "fake"}, nil
}

func (c *fakeLLMClient) Name() string {
	return "fake"
}

func TestRemoteSummarizerMissingCredentials(t *testing.T) {
	_, err := NewRemoteSummarizer(&Config{})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	// 注册表入口同样拒绝无密钥的在线模式
	_, err = New(ModeOnline)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRemoteSummarize(t *testing.T) {
	client := &fakeLLMClient{response: "  A concise summary of the text.  "}
	s := NewRemoteSummarizerWithClient(client)

	summary, err := s.Summarize(context.Background(), "Some document text to summarize.", "short")
	require.NoError(t, err)

	// 响应前后空白被去除
	assert.Equal(t, "A concise summary of the text.", summary)

	// 提示词包含长度指令和原文
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "in 2-3 sentences")
	assert.Contains(t, client.prompts[0], "Some document text to summarize.")
}

func TestRemoteSummarizeLengthInstructions(t *testing.T) {
	tests := []struct {
		length      string
		instruction string
	}{
		{"short", "in 2-3 sentences"},
		{"medium", "in 4-6 sentences"},
		{"long", "in a detailed paragraph of 8-10 sentences"},
		{"bogus", "in 4-6 sentences"}, // 未识别档位按medium处理
	}

	for _, tt := range tests {
		t.Run(tt.length, func(t *testing.T) {
			client := &fakeLLMClient{response: "summary"}
			s := NewRemoteSummarizerWithClient(client)

			_, err := s.Summarize(context.Background(), "text", tt.length)
			require.NoError(t, err)
			require.Len(t, client.prompts, 1)
			assert.Contains(t, client.prompts[0], tt.instruction)
		})
	}
}

func TestRemoteSummarizeClipsInput(t *testing.T) {
	client := &fakeLLMClient{response: "summary"}
	s := NewRemoteSummarizerWithClient(client)

	// 超长文本被截断到上限后再发送
	long := strings.Repeat("a", maxRemoteInputRunes+500)
	_, err := s.Summarize(context.Background(), long, "medium")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], strings.Repeat("a", maxRemoteInputRunes))
	assert.NotContains(t, client.prompts[0], strings.Repeat("a", maxRemoteInputRunes+1))
}

func TestRemoteSummarizeError(t *testing.T) {
	cause := llm.NewLLMError(llm.ErrCodeRateLimited, llm.ErrMsgRateLimited)
	client := &fakeLLMClient{err: cause}
	s := NewRemoteSummarizerWithClient(client)

	_, err := s.Summarize(context.Background(), "text", "short")
	require.Error(t, err)

	// 错误被包装为RemoteError并保留底层原因
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "summarize", remoteErr.Op)
	assert.ErrorIs(t, err, cause)
}

func TestRemoteSummarizeEmptyInput(t *testing.T) {
	s := NewRemoteSummarizerWithClient(&fakeLLMClient{response: "summary"})

	_, err := s.Summarize(context.Background(), "  ", "short")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = s.ExtractKeyPoints(context.Background(), "\n", 3)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRemoteExtractKeyPoints(t *testing.T) {
	client := &fakeLLMClient{response: "• First point\n• Second point\n• Third point"}
	s := NewRemoteSummarizerWithClient(client)

	points, err := s.ExtractKeyPoints(context.Background(), "document text", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"First point", "Second point", "Third point"}, points)

	// 提示词包含要点数量
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "exactly 5 key points")
}

func TestRemoteExtractKeyPointsBulletVariants(t *testing.T) {
	// 不同的项目符号风格都被识别
	client := &fakeLLMClient{response: "- Dash point\n* Star point\n• Dot point"}
	s := NewRemoteSummarizerWithClient(client)

	points, err := s.ExtractKeyPoints(context.Background(), "text", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dash point", "Star point", "Dot point"}, points)
}

func TestRemoteExtractKeyPointsCap(t *testing.T) {
	client := &fakeLLMClient{response: "• One\n• Two\n• Three\n• Four\n• Five"}
	s := NewRemoteSummarizerWithClient(client)

	// 响应超出请求数量时截断
	points, err := s.ExtractKeyPoints(context.Background(), "text", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, points)
}

func TestRemoteExtractKeyPointsUnparseable(t *testing.T) {
	// 不带项目符号的非空行也作为要点接受
	client := &fakeLLMClient{response: "   The model refused to use bullets here.   "}
	s := NewRemoteSummarizerWithClient(client)

	points, err := s.ExtractKeyPoints(context.Background(), "text", 3)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "The model refused to use bullets here.", points[0])
}

func TestRemoteExtractKeyPointsError(t *testing.T) {
	cause := errors.New("connection reset")
	client := &fakeLLMClient{err: cause}
	s := NewRemoteSummarizerWithClient(client)

	_, err := s.ExtractKeyPoints(context.Background(), "text", 3)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "extract_key_points", remoteErr.Op)
	assert.ErrorIs(t, err, cause)
}

func TestRemoteName(t *testing.T) {
	s := NewRemoteSummarizerWithClient(&fakeLLMClient{})
	assert.Equal(t, ModeOnline, s.Name())
}

func TestClipRunes(t *testing.T) {
	assert.Equal(t, "abc", clipRunes("abc", 10))
	assert.Equal(t, "ab", clipRunes("abcdef", 2))
	// 按rune截取，不切断多字节字符
	assert.Equal(t, "hél", clipRunes("héllo", 3))
}
