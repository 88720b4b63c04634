package errs

var (
	SystemError   = ErrorCode{Code: 519001, Msg: "系统错误"}
	InvalidInput  = ErrorCode{Code: 519002, Msg: "非法输入"}
	NotConfigured = ErrorCode{Code: 519003, Msg: "房间服务未配置"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
