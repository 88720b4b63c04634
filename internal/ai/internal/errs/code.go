package errs

var (
	SystemError  = ErrorCode{Code: 516001, Msg: "系统错误"}
	InvalidInput = ErrorCode{Code: 516002, Msg: "非法输入"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
