package summarizer

import (
	"math"
	"sort"
)

// LSA算法常量
const (
	// jacobiEpsilon Jacobi旋转的收敛阈值，非对角元素绝对值之和低于此值时停止
	jacobiEpsilon = 1e-10
	// jacobiMaxSweeps Jacobi旋转的最大扫描轮数
	jacobiMaxSweeps = 100
	// rankEpsilon 判定奇异值是否有效的阈值，特征值低于此值的维度视为秩亏
	rankEpsilon = 1e-9
)

// buildTermMatrix 构建词项×句子的词频矩阵
// 行为全文出现的不同词干，列为句子，单元格为该词干在句中的出现次数
func buildTermMatrix(sents []Sentence) [][]float64 {
	termIndex := make(map[string]int)
	for _, s := range sents {
		for term := range s.Freq {
			if _, ok := termIndex[term]; !ok {
				termIndex[term] = len(termIndex)
			}
		}
	}
	if len(termIndex) == 0 {
		return nil
	}

	matrix := make([][]float64, len(termIndex))
	for i := range matrix {
		matrix[i] = make([]float64, len(sents))
	}
	for j, s := range sents {
		for term, freq := range s.Freq {
			matrix[termIndex[term]][j] = float64(freq)
		}
	}

	return matrix
}

// gramMatrix 计算句子×句子的格拉姆矩阵 AᵀA
// 它的特征向量即词频矩阵的右奇异向量，特征值为奇异值的平方
func gramMatrix(matrix [][]float64) [][]float64 {
	if len(matrix) == 0 {
		return nil
	}
	n := len(matrix[0])

	gram := make([][]float64, n)
	for i := range gram {
		gram[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var dot float64
			for _, row := range matrix {
				dot += row[i] * row[j]
			}
			gram[i][j] = dot
			gram[j][i] = dot
		}
	}

	return gram
}

// jacobiEigen 用循环Jacobi旋转对对称矩阵做特征分解
// 返回特征值和对应的特征向量（vectors[i][d]是第d个特征向量的第i个分量）
func jacobiEigen(sym [][]float64) ([]float64, [][]float64) {
	n := len(sym)

	// 拷贝输入矩阵，迭代过程会原地修改
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		copy(a[i], sym[i])
	}

	// 特征向量矩阵初始化为单位阵
	vectors := make([][]float64, n)
	for i := range vectors {
		vectors[i] = make([]float64, n)
		vectors[i][i] = 1.0
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		// 计算非对角元素的绝对值之和，用于收敛判定
		var off float64
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				off += math.Abs(a[p][q])
			}
		}
		if off < jacobiEpsilon {
			break
		}

		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q]) < jacobiEpsilon {
					continue
				}

				// 计算旋转角度
				theta := (a[q][q] - a[p][p]) / (2.0 * a[p][q])
				t := 1.0 / (math.Abs(theta) + math.Sqrt(theta*theta+1.0))
				if theta < 0 {
					t = -t
				}
				c := 1.0 / math.Sqrt(t*t+1.0)
				s := t * c

				// 对行列p、q应用Givens旋转
				for k := 0; k < n; k++ {
					akp := a[k][p]
					akq := a[k][q]
					a[k][p] = c*akp - s*akq
					a[k][q] = s*akp + c*akq
				}
				for k := 0; k < n; k++ {
					apk := a[p][k]
					aqk := a[q][k]
					a[p][k] = c*apk - s*aqk
					a[q][k] = s*apk + c*aqk
				}

				// 同步更新特征向量
				for k := 0; k < n; k++ {
					vkp := vectors[k][p]
					vkq := vectors[k][q]
					vectors[k][p] = c*vkp - s*vkq
					vectors[k][q] = s*vkp + c*vkq
				}
			}
		}
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = a[i][i]
	}

	return values, vectors
}

// topicSentences 用截断SVD选出代表潜在主题的句子下标
// 每个保留的主题维度（按奇异值降序）选取分量绝对值最大的未被占用句子
// 矩阵为空或完全秩亏时返回nil，由调用方执行回退逻辑
func topicSentences(sents []Sentence, k int) []int {
	n := len(sents)
	if n == 0 || k <= 0 {
		return nil
	}

	matrix := buildTermMatrix(sents)
	if matrix == nil {
		return nil
	}

	// k不超过请求数、句子数和词项数的最小值
	if k > n {
		k = n
	}
	if k > len(matrix) {
		k = len(matrix)
	}

	values, vectors := jacobiEigen(gramMatrix(matrix))

	// 维度按特征值（奇异值平方）降序排列
	dims := make([]int, n)
	for i := range dims {
		dims[i] = i
	}
	sort.SliceStable(dims, func(a, b int) bool {
		return values[dims[a]] > values[dims[b]]
	})

	// 跳过秩亏维度，可用维度不足时k随之缩小
	usable := 0
	for _, d := range dims {
		if values[d] > rankEpsilon {
			usable++
		}
	}
	if usable == 0 {
		return nil
	}
	if k > usable {
		k = usable
	}

	selected := make([]int, 0, k)
	claimed := make([]bool, n)

	for _, dim := range dims[:k] {
		best := -1
		bestMag := -1.0
		for i := 0; i < n; i++ {
			if claimed[i] {
				continue
			}
			mag := math.Abs(vectors[i][dim])
			// 同分时保留下标更小的句子
			if mag > bestMag {
				bestMag = mag
				best = i
			}
		}
		if best < 0 {
			break
		}
		claimed[best] = true
		selected = append(selected, best)
	}

	return selected
}
