package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/unidoc/unioffice/document"
)

// WordParser Word文档解析器
type WordParser struct{}

// NewWordParser 创建一个新的Word解析器
func NewWordParser() Parser {
	return &WordParser{}
}

// Parse 解析docx文件并提取其文本内容
// 依次提取正文段落和表格单元格中的文本
func (p *WordParser) Parse(filePath string) (string, error) {
	doc, err := document.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open word document: %w", err)
	}
	defer doc.Close()

	var parts []string
	for _, para := range doc.Paragraphs() {
		var sb strings.Builder
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			parts = append(parts, text)
		}
	}

	// 表格中的文本同样纳入结果
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				for _, para := range cell.Paragraphs() {
					var sb strings.Builder
					for _, run := range para.Runs() {
						sb.WriteString(run.Text())
					}
					if text := strings.TrimSpace(sb.String()); text != "" {
						parts = append(parts, text)
					}
				}
			}
		}
	}

	result := strings.TrimSpace(strings.Join(parts, "\n"))
	if result == "" {
		return "", fmt.Errorf("no text content found in word document")
	}
	return result, nil
}

// ParseReader 从Reader解析docx内容
// unioffice的打开接口基于文件路径，先落盘到临时文件再解析
func (p *WordParser) ParseReader(r io.Reader, _ string) (string, error) {
	tmpFile, err := os.CreateTemp("", "upload_*.docx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return p.Parse(tmpFile.Name())
}
