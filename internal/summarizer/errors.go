package summarizer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput 输入文本为空错误
	// 在分词之前检查，空白文本不会进入摘要流程
	ErrEmptyInput = errors.New("input text is empty")

	// ErrMissingCredentials 在线模式缺少API密钥错误
	// 构造在线摘要器时检查，绝不静默回退到本地模式
	ErrMissingCredentials = errors.New("api key is required for online summarization")

	// ErrUnknownMode 未注册的摘要器模式错误
	ErrUnknownMode = errors.New("unknown summarizer mode")
)

// RemoteError 远程摘要调用错误
// 包装网络、配额或响应解析失败的底层错误
type RemoteError struct {
	Op  string // 失败的操作：summarize 或 extract_key_points
	Err error  // 底层错误
}

// Error 实现error接口
func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote summarization failed (%s): %v", e.Op, e.Err)
}

// Unwrap 返回底层错误，支持errors.Is/As检查
func (e *RemoteError) Unwrap() error {
	return e.Err
}
