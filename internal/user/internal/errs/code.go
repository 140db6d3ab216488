package errs

var (
	SystemError             = ErrorCode{Code: 501001, Msg: "系统错误"}
	InvalidCredentialsError = ErrorCode{Code: 501002, Msg: "用户名或密码错误"}
	PasswordMismatchError   = ErrorCode{Code: 501003, Msg: "两次输入的密码不一致"}
	InvalidPasswordError    = ErrorCode{Code: 501004, Msg: "新密码不合法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
