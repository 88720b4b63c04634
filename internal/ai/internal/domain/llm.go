package domain

import "fmt"

const (
	BizChat        = "chat"
	BizGreeting    = "interview_greeting"
	BizPreliminary = "interview_preliminary"
	BizQuestion    = "interview_question"
	BizFeedback    = "interview_feedback"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 对话消息，role 取 system/user/assistant
type Message struct {
	Role    string
	Content string
}

type LLMRequest struct {
	Biz string
	Uid int64
	// 请求id
	Tid string
	// 发送给大模型的完整消息序列
	Messages []Message
	// 业务相关的配置
	Config BizConfig
}

type LLMResponse struct {
	// 花费的token
	Tokens int64
	// llm 的回答
	Answer string
}

type BizConfig struct {
	// 使用的平台，cerebras 或者 zhipu
	Platform string
	// 使用的模型
	Model string

	Temperature float64
	TopP        float64
	MaxTokens   int64

	// 系统 Prompt
	SystemPrompt string
}

// LLMRecord 一次调用的审计记录
type LLMRecord struct {
	Id       int64
	Tid      string
	Uid      int64
	Biz      string
	Platform string
	Tokens   int64
	Messages []Message
	Answer   string
	Status   RecordStatus
	Ctime    int64
	Utime    int64
}

type RecordStatus uint8

const (
	RecordStatusProcessing RecordStatus = 0
	RecordStatusSuccess    RecordStatus = 1
	RecordStatusFailed     RecordStatus = 2
)

func (s RecordStatus) ToUint8() uint8 {
	return uint8(s)
}

// VendorError 供应商返回的带状态码的错误，4xx 属于调用方问题
type VendorError struct {
	StatusCode int
	Msg        string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("供应商调用失败: %d %s", e.StatusCode, e.Msg)
}
