package errs

var (
	SystemError           = ErrorCode{Code: 512001, Msg: "系统错误"}
	InvalidCustomerError  = ErrorCode{Code: 512002, Msg: "客户姓名和手机号不能为空"}
	DuplicatePhoneError   = ErrorCode{Code: 512003, Msg: "手机号已经被其他客户使用"}
	CustomerNotFoundError = ErrorCode{Code: 512004, Msg: "客户不存在"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
