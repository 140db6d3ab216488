package errs

var (
	SystemError = ErrorCode{Code: 513001, Msg: "系统错误"}
	// EmptyCartError 购物车为空
	EmptyCartError          = ErrorCode{Code: 513002, Msg: "订单至少需要一个商品"}
	MissingCustomerError    = ErrorCode{Code: 513003, Msg: "缺少客户信息"}
	InvalidCartLineError    = ErrorCode{Code: 513004, Msg: "商品或规格不存在"}
	OrderNotFoundError      = ErrorCode{Code: 513005, Msg: "订单不存在"}
	OrderNotCancelableError = ErrorCode{Code: 513006, Msg: "只有已完成的订单才能取消"}
	InvalidRefundError      = ErrorCode{Code: 513007, Msg: "退款金额不合法"}
	InvalidQueryError       = ErrorCode{Code: 513008, Msg: "查询条件不合法"}
	DuplicateRequestError   = ErrorCode{Code: 513009, Msg: "重复提交"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
