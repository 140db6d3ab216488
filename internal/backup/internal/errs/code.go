package errs

var (
	SystemError          = ErrorCode{Code: 514001, Msg: "系统错误"}
	InvalidSnapshotError = ErrorCode{Code: 514002, Msg: "备份文件缺少商品、客户或订单数据"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
