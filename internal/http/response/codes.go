package response

// 業務ステータスコード。0 以外は HTTP ステータスと同じ値を使う
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// HTTPStatus 業務コードに対応する HTTP ステータス
func HTTPStatus(code int) int {
	if code < 400 || code > 599 {
		return 500
	}
	return code
}
