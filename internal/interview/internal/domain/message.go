package domain

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 一条对话记录。追加之后不再修改
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	// 毫秒时间戳
	Timestamp int64 `json:"timestamp"`
}
