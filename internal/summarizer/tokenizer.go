package summarizer

import (
	"strings"
	"unicode"
)

// Sentence 句子结构
// 由分词器创建，之后不再修改
type Sentence struct {
	Index  int            // 在原文中的位置序号
	Text   string         // 原始句子文本
	Tokens []string       // 规范化后的词干序列
	Freq   map[string]int // 词干频率表
}

// Tokenize 将原始文本切分为句子并规范化词元
// 句子保持原文顺序，Index即为出现位置
// 空白文本返回ErrEmptyInput
func (r *Resources) Tokenize(text string) ([]Sentence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	raw := r.tokenizer.Tokenize(text)
	result := make([]Sentence, 0, len(raw))

	for _, s := range raw {
		surface := strings.TrimSpace(s.Text)
		if surface == "" {
			continue
		}

		tokens := r.normalizeWords(surface)
		freq := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freq[tok]++
		}

		result = append(result, Sentence{
			Index:  len(result),
			Text:   surface,
			Tokens: tokens,
			Freq:   freq,
		})
	}

	return result, nil
}

// normalizeWords 将句子拆分为规范化词干
// 小写化、去标点、去停用词，剩余词做词干化
func (r *Resources) normalizeWords(sentence string) []string {
	words := strings.FieldsFunc(strings.ToLower(sentence), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c) && c != '\''
	})

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, "'")
		if word == "" || r.IsStopword(word) {
			continue
		}
		tokens = append(tokens, r.Stem(word))
	}
	return tokens
}
