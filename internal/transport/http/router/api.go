package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storespark/internal/core/auth"
	"storespark/internal/domain"
	"storespark/internal/service"
	httpez "storespark/internal/transport/http/ez"
	mdw "storespark/internal/transport/http/middleware"
)

// NewAPIEngine 用户端：登录/注册、店铺浏览与评分、店主仪表盘
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, authSvc *service.AuthService, storeSvc *service.StoreService) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 鉴权分组（/me、店铺相关都要登录）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	mountAuthActions(api, authed, authSvc)
	mountStoreActions(authed, storeSvc)

	return r
}

// ---------- 动作注册：auth / me ----------

func mountAuthActions(api, authed *gin.RouterGroup, svc *service.AuthService) {
	ezPublic := httpez.New(api)

	type loginIn struct {
		Email    string `json:"email"    binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	httpez.RegisterAction[loginIn, *service.Session](ezPublic, httpez.Action[loginIn, *service.Session]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.Session, error) {
			return svc.Login(c.Request.Context(), in.Email, in.Password)
		},
	})

	httpez.RegisterAction[service.SignupInput, *service.Session](ezPublic, httpez.Action[service.SignupInput, *service.Session]{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.SignupInput) (*service.Session, error) {
			return svc.Signup(c.Request.Context(), *in)
		},
	})

	// 会话是无状态 JWT，登出只是给前端一个明确的确认；token 由客户端丢弃
	httpez.RegisterAction[struct{}, gin.H](ezPublic, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			return gin.H{"loggedOut": true}, nil
		},
	})

	ezAuth := httpez.New(authed)

	type meOut struct {
		domain.User
		HomePath string `json:"homePath"`
	}
	httpez.RegisterAction[struct{}, meOut](ezAuth, httpez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (meOut, error) {
			u, err := svc.GetUser(c.GetString("userId"))
			if err != nil {
				return meOut{}, err
			}
			return meOut{User: *u, HomePath: u.Role.HomePath()}, nil
		},
	})

	type pwIn struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	httpez.RegisterAction[pwIn, gin.H](ezAuth, httpez.Action[pwIn, gin.H]{
		Method: http.MethodPatch,
		Path:   "/me/password",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *pwIn) (gin.H, error) {
			if err := svc.UpdatePassword(c.Request.Context(), c.GetString("userId"), in.OldPassword, in.NewPassword); err != nil {
				return nil, err
			}
			return gin.H{"updated": true}, nil
		},
	})
}

// ---------- 动作注册：stores / ratings / owner ----------

func mountStoreActions(authed *gin.RouterGroup, svc *service.StoreService) {
	ezAuth := httpez.New(authed)

	httpez.RegisterAction[service.StoreQuery, []domain.StoreDetails](ezAuth, httpez.Action[service.StoreQuery, []domain.StoreDetails]{
		Method: http.MethodGet,
		Path:   "/stores",
		Binder: httpez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.StoreQuery) ([]domain.StoreDetails, error) {
			return svc.ListWithDetails(c.Request.Context(), c.GetString("userId"), *in)
		},
	})

	type rateIn struct {
		Value int `json:"value"`
	}
	httpez.RegisterAction[rateIn, *domain.Rating](ezAuth, httpez.Action[rateIn, *domain.Rating]{
		Method: http.MethodPut,
		Path:   "/stores/:id/rating",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *rateIn) (*domain.Rating, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing store id")
			}
			return svc.SubmitRating(c.Request.Context(), id, c.GetString("userId"), in.Value)
		},
	})

	httpez.RegisterAction[struct{}, *service.OwnerDashboard](ezAuth, httpez.Action[struct{}, *service.OwnerDashboard]{
		Method: http.MethodGet,
		Path:   "/owner/dashboard",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []domain.Role{domain.RoleOwner},
		Handler: func(c *gin.Context, _ *struct{}) (*service.OwnerDashboard, error) {
			return svc.Dashboard(c.Request.Context(), c.GetString("userId"))
		},
	})
}
