package summarizer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localSampleText 测试用的10句示例文本
const localSampleText = "Machine learning systems improve automatically through experience. " +
	"Neural networks are machine learning models inspired by the human brain. " +
	"Deep learning uses neural networks with many layers to solve complex problems. " +
	"Training a neural network requires large amounts of labeled data. " +
	"The quality of training data strongly affects model performance. " +
	"Overfitting happens when a model memorizes training data instead of learning patterns. " +
	"Regularization techniques help models generalize to unseen examples. " +
	"Gradient descent optimizes model parameters by minimizing a loss function. " +
	"Evaluation metrics measure how well a trained model performs on test data. " +
	"Machine learning applications now power search engines and medical diagnosis."

// newLocalSummarizer 创建测试用的本地摘要器
func newLocalSummarizer(t *testing.T) *LocalSummarizer {
	t.Helper()
	s, err := NewLocalSummarizer(testResources(t))
	require.NoError(t, err)
	return s
}

// summaryIndices 将摘要中的句子映射回原文下标
// 摘要中的每个句子都必须逐字出现在原文句子集中
func summaryIndices(t *testing.T, res *Resources, original string, summary string) []int {
	t.Helper()

	origSents, err := res.Tokenize(original)
	require.NoError(t, err)

	position := make(map[string]int, len(origSents))
	for _, s := range origSents {
		position[s.Text] = s.Index
	}

	sumSents, err := res.Tokenize(summary)
	require.NoError(t, err)

	indices := make([]int, 0, len(sumSents))
	for _, s := range sumSents {
		idx, ok := position[s.Text]
		require.True(t, ok, "summary sentence is not verbatim from the original: %q", s.Text)
		indices = append(indices, idx)
	}
	return indices
}

func TestLocalSummarizeShort(t *testing.T) {
	res := testResources(t)
	s, err := NewLocalSummarizer(res)
	require.NoError(t, err)

	summary, err := s.Summarize(context.Background(), localSampleText, "short")
	require.NoError(t, err)
	require.NotEmpty(t, summary)

	// 恰好3个句子，逐字来自原文且保持原文顺序
	indices := summaryIndices(t, res, localSampleText, summary)
	assert.Len(t, indices, 3)
	for i := 1; i < len(indices); i++ {
		assert.Greater(t, indices[i], indices[i-1], "sentences must keep original order")
	}
}

func TestLocalSummarizeLengths(t *testing.T) {
	res := testResources(t)
	s, err := NewLocalSummarizer(res)
	require.NoError(t, err)

	tests := []struct {
		length string
		count  int
	}{
		{"short", 3},
		{"medium", 5},
		{"long", 8},
		{"unknown", 5}, // 未识别档位按medium处理
	}

	for _, tt := range tests {
		t.Run(tt.length, func(t *testing.T) {
			summary, err := s.Summarize(context.Background(), localSampleText, tt.length)
			require.NoError(t, err)

			indices := summaryIndices(t, res, localSampleText, summary)
			assert.Len(t, indices, tt.count)
		})
	}
}

func TestLocalSummarizeFewSentences(t *testing.T) {
	s := newLocalSummarizer(t)

	// 句子数不足目标时返回全部句子，不是错误
	text := "Dogs are loyal animals. Cats are independent animals."
	summary, err := s.Summarize(context.Background(), text, "medium")
	require.NoError(t, err)

	assert.Contains(t, summary, "Dogs are loyal animals.")
	assert.Contains(t, summary, "Cats are independent animals.")
}

func TestLocalSummarizeSingleSentence(t *testing.T) {
	s := newLocalSummarizer(t)

	text := "Machine learning systems improve automatically through experience."
	summary, err := s.Summarize(context.Background(), text, "short")
	require.NoError(t, err)
	assert.Equal(t, text, summary)
}

func TestLocalSummarizeEmptyInput(t *testing.T) {
	s := newLocalSummarizer(t)

	_, err := s.Summarize(context.Background(), "   \n\t ", "short")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = s.ExtractKeyPoints(context.Background(), "", 3)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestLocalSummarizeDeterminism(t *testing.T) {
	s := newLocalSummarizer(t)

	first, err := s.Summarize(context.Background(), localSampleText, "medium")
	require.NoError(t, err)
	second, err := s.Summarize(context.Background(), localSampleText, "medium")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLocalExtractKeyPoints(t *testing.T) {
	res := testResources(t)
	s, err := NewLocalSummarizer(res)
	require.NoError(t, err)

	points, err := s.ExtractKeyPoints(context.Background(), localSampleText, 3)
	require.NoError(t, err)
	require.NotEmpty(t, points)
	assert.LessOrEqual(t, len(points), 3)

	// 要点逐字来自原文且互不重复
	origSents, err := res.Tokenize(localSampleText)
	require.NoError(t, err)
	valid := make(map[string]bool, len(origSents))
	for _, sent := range origSents {
		valid[sent.Text] = true
	}

	seen := make(map[string]bool)
	for _, point := range points {
		assert.True(t, valid[point], "key point is not verbatim from the original: %q", point)
		assert.False(t, seen[point], "duplicate key point: %q", point)
		seen[point] = true
	}
}

func TestLocalExtractKeyPointsDefault(t *testing.T) {
	s := newLocalSummarizer(t)

	// maxPoints非正时使用默认值5
	points, err := s.ExtractKeyPoints(context.Background(), localSampleText, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, points)
	assert.LessOrEqual(t, len(points), 5)
}

func TestLocalExtractKeyPointsDeterminism(t *testing.T) {
	s := newLocalSummarizer(t)

	first, err := s.ExtractKeyPoints(context.Background(), localSampleText, 4)
	require.NoError(t, err)
	second, err := s.ExtractKeyPoints(context.Background(), localSampleText, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLocalExtractKeyPointsFallback(t *testing.T) {
	s := newLocalSummarizer(t)

	// 停用词外无剩余词项时回退到按原文顺序取句子
	text := "It is what it is. And so it was. This is how it be."
	points, err := s.ExtractKeyPoints(context.Background(), text, 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "It is what it is.", points[0])
	assert.Equal(t, "And so it was.", points[1])
}

func TestLocalName(t *testing.T) {
	s := newLocalSummarizer(t)
	assert.Equal(t, ModeLocal, s.Name())
}

func TestNewFactory(t *testing.T) {
	s, err := New(ModeLocal)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, s.Name())

	_, err = New("bogus")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestTruncateRunes(t *testing.T) {
	// 始终追加省略号，与是否截断无关
	assert.Equal(t, "abc...", truncateRunes("abc", 10))
	assert.Equal(t, "ab...", truncateRunes("abcdef", 2))

	// 按rune截取，不切断多字节字符
	truncated := truncateRunes("héllo wörld", 5)
	assert.Equal(t, "héllo...", truncated)
	assert.True(t, strings.HasSuffix(truncated, "..."))
}
