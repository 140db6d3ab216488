package errs

var (
	SystemError          = ErrorCode{Code: 511001, Msg: "系统错误"}
	InvalidProductError  = ErrorCode{Code: 511002, Msg: "商品信息不合法"}
	ProductNotFoundError = ErrorCode{Code: 511003, Msg: "商品不存在"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
