package summarizer

import (
	"context"
	"sort"
	"strings"
)

// 长度档位到目标句子数的映射表
// 新增档位必须显式扩展此表
var sentenceCounts = map[string]int{
	"short":  3,
	"medium": 5,
	"long":   8,
}

const (
	// defaultSentenceCount 未识别档位时的目标句子数
	defaultSentenceCount = 5
	// defaultMaxPoints 默认的关键要点数量
	defaultMaxPoints = 5
	// summaryFallbackRunes 摘要为空时截取原文前缀的长度
	summaryFallbackRunes = 500
	// keyPointFallbackRunes 关键要点为空时截取原文前缀的长度
	keyPointFallbackRunes = 200
)

// LocalSummarizer 本地提取式摘要器
// 摘要使用TextRank图排序，关键要点使用LSA主题提取
// 无内部可变状态，可安全并发使用
type LocalSummarizer struct {
	res *Resources // 不可变的语言资源包
}

// NewLocalSummarizer 创建本地摘要器
func NewLocalSummarizer(res *Resources) (*LocalSummarizer, error) {
	if res == nil {
		var err error
		res, err = NewResources()
		if err != nil {
			return nil, err
		}
	}
	return &LocalSummarizer{res: res}, nil
}

// Summarize 生成提取式摘要
// 按显著度选取目标数量的句子，再按原文顺序重组
// 句子不足时返回全部句子，不是错误
func (s *LocalSummarizer) Summarize(_ context.Context, text string, length string) (string, error) {
	sents, err := s.res.Tokenize(text)
	if err != nil {
		return "", err
	}

	count, ok := sentenceCounts[length]
	if !ok {
		count = defaultSentenceCount
	}

	// 输入校验保证至少有一个句子，此分支仅作兜底
	if len(sents) == 0 {
		return truncateRunes(text, summaryFallbackRunes), nil
	}

	var selected []int
	if len(sents) <= count {
		for i := range sents {
			selected = append(selected, i)
		}
	} else {
		scores := buildSimilarityGraph(sents).rank()
		selected = rankIndices(scores)[:count]
		// 按原文顺序重排，保证可读性
		sort.Ints(selected)
	}

	parts := make([]string, len(selected))
	for i, idx := range selected {
		parts[i] = sents[idx].Text
	}

	return strings.Join(parts, " "), nil
}

// ExtractKeyPoints 提取关键要点
// 每个主题维度贡献一条要点，已选句子不重复出现
// 矩阵退化（如停用词外无剩余词项）时回退到按原文顺序取前maxPoints句
func (s *LocalSummarizer) ExtractKeyPoints(_ context.Context, text string, maxPoints int) ([]string, error) {
	sents, err := s.res.Tokenize(text)
	if err != nil {
		return nil, err
	}

	if maxPoints <= 0 {
		maxPoints = defaultMaxPoints
	}

	if len(sents) == 0 {
		return []string{truncateRunes(text, keyPointFallbackRunes)}, nil
	}

	selected := topicSentences(sents, maxPoints)
	if selected == nil {
		// 回退：按原文顺序取前maxPoints句
		limit := maxPoints
		if limit > len(sents) {
			limit = len(sents)
		}
		points := make([]string, limit)
		for i := 0; i < limit; i++ {
			points[i] = sents[i].Text
		}
		return points, nil
	}

	points := make([]string, len(selected))
	for i, idx := range selected {
		points[i] = sents[idx].Text
	}

	return points, nil
}

// Name 返回摘要器名称
func (s *LocalSummarizer) Name() string {
	return ModeLocal
}

// truncateRunes 截取文本的前n个字符并追加省略号
// 按rune截取，不会切断多字节字符；与原文无关地固定追加"..."
func truncateRunes(text string, n int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

// 在包初始化时注册本地摘要器
func init() {
	Register(ModeLocal, func(cfg *Config) (Summarizer, error) {
		return NewLocalSummarizer(cfg.Resources)
	})
}
