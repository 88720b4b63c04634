package errs

var (
	SystemError       = ErrorCode{Code: 517001, Msg: "系统错误"}
	InvalidInput      = ErrorCode{Code: 517002, Msg: "非法输入"}
	SessionNotFound   = ErrorCode{Code: 517003, Msg: "会话不存在或者已经结束"}
	InterviewNotFound = ErrorCode{Code: 517004, Msg: "面试记录不存在"}
	AnswerInFlight    = ErrorCode{Code: 517005, Msg: "上一个回答还在处理中"}
	FeedbackFailed    = ErrorCode{Code: 517006, Msg: "生成面试反馈失败"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
