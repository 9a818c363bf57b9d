package summarizer

import "math"

// similarityGraph 句子相似度图
// 节点为句子下标，边权为余弦相似度，对称且无自环
// 与任何句子都没有共享词汇的节点是孤立节点
type similarityGraph struct {
	n      int               // 节点数量
	adj    []map[int]float64 // 邻接表，仅存储非零边
	degree []float64         // 每个节点的边权之和
}

// buildSimilarityGraph 从句子序列构建相似度图
// 对每个无序对(i,j)计算词干频率向量的余弦相似度，零相似度不建边
func buildSimilarityGraph(sents []Sentence) *similarityGraph {
	n := len(sents)
	g := &similarityGraph{
		n:      n,
		adj:    make([]map[int]float64, n),
		degree: make([]float64, n),
	}
	for i := range g.adj {
		g.adj[i] = make(map[int]float64)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			weight := cosineSimilarity(sents[i].Freq, sents[j].Freq)
			if weight <= 0 {
				continue
			}
			g.adj[i][j] = weight
			g.adj[j][i] = weight
			g.degree[i] += weight
			g.degree[j] += weight
		}
	}

	return g
}

// cosineSimilarity 计算两个词频向量的余弦相似度
// 返回值范围[0,1]，无共享词汇时为0
func cosineSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// 遍历较小的向量求点积
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	var dot float64
	for term, fa := range small {
		if fb, ok := large[term]; ok {
			dot += float64(fa) * float64(fb)
		}
	}
	if dot == 0 {
		return 0
	}

	var normA, normB float64
	for _, f := range a {
		normA += float64(f) * float64(f)
	}
	for _, f := range b {
		normB += float64(f) * float64(f)
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
