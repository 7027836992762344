package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storespark/internal/domain"
	"storespark/internal/service"
	resp "storespark/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// MapErr 服务层/领域层错误 → 信封错误码
func MapErr(err error) error {
	var ae *AErr
	if errors.As(err, &ae) {
		return err
	}
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return BadRequest(ve.Msg)
	case errors.Is(err, service.ErrInvalidCredentials):
		return Unauthorized(err.Error())
	case errors.Is(err, service.ErrWrongOldPassword):
		return Forbidden(err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, domain.ErrNotFound):
		return NotFound("not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		return Conflict("Email already exists.")
	default:
		return Internal("", err)
	}
}

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string        // "GET" | "POST" | "PUT" | "PATCH" | "DELETE"
	Path    string        // 例："/auth/login"、"/stores/:id/rating"
	Binder  Binder        // 绑定方式
	Auth    bool          // 是否要求登录（检查 userId）
	Roles   []domain.Role // 限定角色（可选）
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 一行注册一个接口；鉴权/绑定/错误映射都在这里统一处理
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		if a.Auth {
			uid := c.GetString("userId")
			if uid == "" {
				c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
				return
			}
			if len(a.Roles) > 0 {
				role := domain.Role(c.GetString("role"))
				ok := false
				for _, r := range a.Roles {
					if role == r {
						ok = true
						break
					}
				}
				if !ok {
					// 403 时带上该角色自己的落地页，前端照此跳转
					c.JSON(http.StatusOK, resp.ErrorData(resp.CodeForbidden, "forbidden",
						gin.H{"homePath": role.HomePath()}))
					return
				}
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *AErr
			if errors.As(MapErr(err), &ae) {
				c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Error()))
				return
			}
			c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
