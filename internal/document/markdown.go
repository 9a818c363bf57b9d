package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownParser Markdown文档解析器
type MarkdownParser struct{}

// NewMarkdownParser 创建新的Markdown解析器
func NewMarkdownParser() Parser {
	return &MarkdownParser{}
}

// Parse 解析Markdown文件并提取文本内容
func (p *MarkdownParser) Parse(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open markdown file: %w", err)
	}
	defer file.Close()

	return p.ParseReader(file, filePath)
}

// ParseReader 从Reader解析Markdown内容
// 先渲染为HTML再剥离标签，得到接近阅读顺序的纯文本
func (p *MarkdownParser) ParseReader(r io.Reader, _ string) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown content: %w", err)
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	mdParser := parser.NewWithExtensions(extensions)
	doc := mdParser.Parse(content)

	htmlFlags := html.CommonFlags
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	htmlContent := markdown.Render(doc, renderer)

	return extractTextFromHTML(string(htmlContent)), nil
}

// extractTextFromHTML 从HTML中提取纯文本
// 简化实现：块级标签换成换行符，其余标签直接剥离
func extractTextFromHTML(html string) string {
	replacements := []struct {
		Old string
		New string
	}{
		{"<br>", "\n"},
		{"<br/>", "\n"},
		{"<br />", "\n"},
		{"</p>", "\n\n"},
		{"<li>", "- "},
		{"</li>", "\n"},
		{"</h1>", ". \n\n"},
		{"</h2>", ". \n\n"},
		{"</h3>", ". \n\n"},
		{"</h4>", ". \n\n"},
		{"</h5>", ". \n\n"},
		{"</h6>", ". \n\n"},
	}

	result := html
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.Old, r.New)
	}

	// 剥离剩余的所有HTML标签
	for {
		start := strings.Index(result, "<")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], ">")
		if end == -1 {
			break
		}
		result = result[:start] + " " + result[start+end+1:]
	}

	return normalizeWhitespace(result)
}

// normalizeWhitespace 规范化文本中的空白符
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(text)
}
