package llm

import "time"

// MessageRole 消息角色类型
type MessageRole string

const (
	// RoleSystem 系统角色
	RoleSystem MessageRole = "system"
	// RoleUser 用户角色
	RoleUser MessageRole = "user"
	// RoleAssistant 助手角色
	RoleAssistant MessageRole = "assistant"
)

// Message 对话消息结构
type Message struct {
	Role    MessageRole `json:"role"`    // 角色
	Content string      `json:"content"` // 内容
}

// Response 统一的响应结构
type Response struct {
	Text       string    // 生成的文本
	TokenCount int       // 使用的token数
	ModelName  string    // 使用的模型名称
	FinishTime time.Time // 完成时间
}

// Model 常用模型名称
const (
	ModelGPT4oMini = "gpt-4o-mini" // GPT-4o mini模型（较快，性价比高）
	ModelGPT4o     = "gpt-4o"      // GPT-4o模型（高级能力）
	ModelGPT35     = "gpt-3.5-turbo"
)
