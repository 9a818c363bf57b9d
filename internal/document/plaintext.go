package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// utf8BOM 部分编辑器导出的文本带BOM前缀
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainTextParser 纯文本解析器
type PlainTextParser struct{}

// NewPlainTextParser 创建一个新的纯文本解析器
func NewPlainTextParser() Parser {
	return &PlainTextParser{}
}

// Parse 解析纯文本文件
func (p *PlainTextParser) Parse(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open text file: %w", err)
	}
	defer file.Close()

	return p.ParseReader(file, filePath)
}

// ParseReader 从Reader解析纯文本内容
func (p *PlainTextParser) ParseReader(r io.Reader, _ string) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read text content: %w", err)
	}

	content = bytes.TrimPrefix(content, utf8BOM)
	return string(content), nil
}
