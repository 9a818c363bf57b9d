package document

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Parser 文档解析器接口
// 负责将不同格式的文档解析为纯文本
type Parser interface {
	// Parse 解析文档，返回文本内容
	Parse(filePath string) (string, error)

	// ParseReader 从Reader解析文档，返回文本内容
	// filename用于确定文档类型
	ParseReader(r io.Reader, filename string) (string, error)
}

// ContentType 表示文档的内容类型
type ContentType string

const (
	// PlainText 纯文本类型
	PlainText ContentType = "text"
	// Markdown 文档类型
	Markdown ContentType = "markdown"
	// PDF 文档类型
	PDF ContentType = "pdf"
	// Word 文档类型
	Word ContentType = "docx"
	// Unknown 未知类型
	Unknown ContentType = "unknown"
)

// ErrUnsupportedType 不支持的文档类型错误
var ErrUnsupportedType = errors.New("unsupported document type")

// ParserFactory 解析器工厂函数，根据文件类型创建对应的解析器
func ParserFactory(filePath string) (Parser, error) {
	switch DetectContentType(filePath) {
	case PDF:
		return NewPDFParser(), nil
	case Markdown:
		return NewMarkdownParser(), nil
	case Word:
		return NewWordParser(), nil
	case PlainText:
		return NewPlainTextParser(), nil
	default:
		return nil, ErrUnsupportedType
	}
}

// DetectContentType 根据文件扩展名检测内容类型
func DetectContentType(filePath string) ContentType {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return PDF
	case ".md", ".markdown":
		return Markdown
	case ".docx":
		return Word
	case ".txt", ".text":
		return PlainText
	default:
		return Unknown
	}
}

// Parse 解析文件并返回文本内容和内容类型
// 便捷入口，组合类型检测、解析器创建和解析
func Parse(filePath string) (string, ContentType, error) {
	contentType := DetectContentType(filePath)
	parser, err := ParserFactory(filePath)
	if err != nil {
		return "", Unknown, err
	}

	text, err := parser.Parse(filePath)
	if err != nil {
		return "", contentType, err
	}
	return strings.TrimSpace(text), contentType, nil
}

// ParseReader 从Reader解析文档并返回文本内容和内容类型
func ParseReader(r io.Reader, filename string) (string, ContentType, error) {
	contentType := DetectContentType(filename)
	parser, err := ParserFactory(filename)
	if err != nil {
		return "", Unknown, err
	}

	text, err := parser.ParseReader(r, filename)
	if err != nil {
		return "", contentType, err
	}
	return strings.TrimSpace(text), contentType, nil
}
