package errs

var (
	SystemError   = ErrorCode{Code: 518001, Msg: "系统错误"}
	InvalidInput  = ErrorCode{Code: 518002, Msg: "非法输入"}
	NotConfigured = ErrorCode{Code: 518003, Msg: "语音服务未配置"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
