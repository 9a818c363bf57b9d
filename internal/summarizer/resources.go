package summarizer

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// 内嵌的英文停用词表，每行一个词
//
//go:embed stopwords_en.txt
var stopwordsData string

// Resources 语言资源包
// 包含分句器、停用词表和词干化函数
// 进程启动时构造一次，之后不可变，可安全地被多个调用并发共享
type Resources struct {
	tokenizer *sentences.DefaultSentenceTokenizer // 英文分句器，能识别缩写词后的句点
	stopwords map[string]struct{}                 // 停用词集合
}

// NewResources 构造语言资源包
func NewResources() (*Resources, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentence tokenizer: %w", err)
	}

	stopwords := make(map[string]struct{})
	for _, line := range strings.Split(stopwordsData, "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			stopwords[word] = struct{}{}
		}
	}

	return &Resources{
		tokenizer: tokenizer,
		stopwords: stopwords,
	}, nil
}

// IsStopword 判断词是否为停用词
func (r *Resources) IsStopword(word string) bool {
	_, ok := r.stopwords[word]
	return ok
}

// Stem 将单词还原为词干
// 词干化失败时返回原词，保证输出始终可用
func (r *Resources) Stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", false)
	if err != nil {
		return word
	}
	return stemmed
}
