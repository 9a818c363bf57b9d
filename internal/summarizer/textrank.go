package summarizer

import (
	"math"
	"sort"
)

// TextRank算法常量
const (
	// dampingFactor 阻尼系数，随机游走沿边继续的概率
	dampingFactor = 0.85
	// convergenceThreshold 收敛阈值，所有节点分数的最大变化量低于此值时停止
	convergenceThreshold = 1e-4
	// maxIterations 最大迭代次数，保证最坏情况下的延迟上界
	maxIterations = 100
)

// rank 在相似度图上执行幂迭代，返回归一化后的句子显著度分数
// 分数非负且总和为1；孤立节点收敛到(1-d)/N的下限值
func (g *similarityGraph) rank() []float64 {
	n := g.n
	if n == 0 {
		return nil
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	base := (1.0 - dampingFactor) / float64(n)
	next := make([]float64, n)

	for iter := 0; iter < maxIterations; iter++ {
		maxChange := 0.0

		for i := 0; i < n; i++ {
			sum := 0.0
			for j, weight := range g.adj[i] {
				if g.degree[j] > 0 {
					sum += weight / g.degree[j] * scores[j]
				}
			}
			next[i] = base + dampingFactor*sum

			change := math.Abs(next[i] - scores[i])
			if change > maxChange {
				maxChange = change
			}
		}

		scores, next = next, scores

		if maxChange < convergenceThreshold {
			break
		}
	}

	// 归一化使分数总和为1
	var total float64
	for _, s := range scores {
		total += s
	}
	if total > 0 {
		for i := range scores {
			scores[i] /= total
		}
	}

	return scores
}

// rankIndices 按显著度降序排列句子下标
// 分数相同时原文位置靠前的句子优先，保证结果确定
func rankIndices(scores []float64) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}

	sort.SliceStable(indices, func(a, b int) bool {
		if scores[indices[a]] != scores[indices[b]] {
			return scores[indices[a]] > scores[indices[b]]
		}
		return indices[a] < indices[b]
	})

	return indices
}
