package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testResources 创建测试用的语言资源包
func testResources(t *testing.T) *Resources {
	t.Helper()
	res, err := NewResources()
	require.NoError(t, err, "failed to create resources")
	return res
}

func TestTokenizeSentenceOrder(t *testing.T) {
	res := testResources(t)

	text := "Machine learning is a field of study. Neural networks learn from examples. Training requires large datasets."
	sents, err := res.Tokenize(text)
	require.NoError(t, err)
	require.Len(t, sents, 3)

	// 句子保持原文顺序，Index为出现位置
	for i, s := range sents {
		assert.Equal(t, i, s.Index)
		assert.NotEmpty(t, s.Text)
	}
	assert.Contains(t, sents[0].Text, "Machine learning")
	assert.Contains(t, sents[2].Text, "Training")
}

func TestTokenizeEmptyInput(t *testing.T) {
	res := testResources(t)

	for _, text := range []string{"", "   ", "\n\t  \n"} {
		_, err := res.Tokenize(text)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestTokenizeNormalization(t *testing.T) {
	res := testResources(t)

	sents, err := res.Tokenize("The running dogs are chasing the cats quickly.")
	require.NoError(t, err)
	require.Len(t, sents, 1)

	tokens := sents[0].Tokens

	// 停用词被移除
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "are")

	// 剩余词被词干化并小写化
	assert.Contains(t, tokens, "run")
	assert.Contains(t, tokens, "dog")
	assert.Contains(t, tokens, "chase")
	assert.Contains(t, tokens, "cat")
}

func TestTokenizeFrequency(t *testing.T) {
	res := testResources(t)

	sents, err := res.Tokenize("Dogs chase dogs and dogs bark.")
	require.NoError(t, err)
	require.Len(t, sents, 1)

	// 同一词干的出现次数被累计
	assert.Equal(t, 3, sents[0].Freq["dog"])
	assert.Equal(t, 1, sents[0].Freq["chase"])
}

func TestTokenizeAbbreviations(t *testing.T) {
	res := testResources(t)

	// 缩写词后的句点不应切分句子
	sents, err := res.Tokenize("Dr. Smith works at the hospital. He treats patients every day.")
	require.NoError(t, err)
	assert.Len(t, sents, 2)
}

func TestIsStopword(t *testing.T) {
	res := testResources(t)

	assert.True(t, res.IsStopword("the"))
	assert.True(t, res.IsStopword("and"))
	assert.False(t, res.IsStopword("algorithm"))
}

func TestStem(t *testing.T) {
	res := testResources(t)

	assert.Equal(t, "run", res.Stem("running"))
	assert.Equal(t, "learn", res.Stem("learning"))
	// 词干化失败时返回原词，这里验证输出非空
	assert.NotEmpty(t, res.Stem("xyzzy"))
}
