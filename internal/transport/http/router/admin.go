package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storespark/internal/core/auth"
	"storespark/internal/core/server"
	"storespark/internal/domain"
	"storespark/internal/service"
	httpez "storespark/internal/transport/http/ez"
	mdw "storespark/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：仪表盘、用户管理、店铺管理；整组限定 admin 角色
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, adminSvc *service.AdminService, authSvc *service.AuthService, storeSvc *service.StoreService) *gin.Engine {
	r := server.NewEngine(l) // ginzap 访问日志 + recovery + cors

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(100, 200),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	mountAdminActions(admin, adminSvc, authSvc, storeSvc)

	return r
}

func mountAdminActions(admin *gin.RouterGroup, adminSvc *service.AdminService, authSvc *service.AuthService, storeSvc *service.StoreService) {
	ezAdmin := httpez.New(admin)

	// --- 仪表盘总数 ---
	httpez.RegisterAction[struct{}, *service.Stats](ezAdmin, httpez.Action[struct{}, *service.Stats]{
		Method: http.MethodGet,
		Path:   "/dashboard",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.Stats, error) {
			return adminSvc.Stats(c.Request.Context())
		},
	})

	// --- 用户列表：角色过滤 + 搜索 + 排序 ---
	type usersOut struct {
		Total int           `json:"total"`
		Items []domain.User `json:"items"`
	}
	httpez.RegisterAction[service.UserQuery, usersOut](ezAdmin, httpez.Action[service.UserQuery, usersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *service.UserQuery) (usersOut, error) {
			users, err := adminSvc.ListUsers(c.Request.Context(), *in)
			if err != nil {
				return usersOut{}, err
			}
			return usersOut{Total: len(users), Items: users}, nil
		},
	})

	// --- 用户详情（店主附带店铺均分） ---
	httpez.RegisterAction[struct{}, *service.UserDetails](ezAdmin, httpez.Action[struct{}, *service.UserDetails]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.UserDetails, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			return adminSvc.GetUserDetails(c.Request.Context(), id)
		},
	})

	// --- 管理员建号（角色任选，不影响自己的会话） ---
	httpez.RegisterAction[service.AddUserInput, *domain.User](ezAdmin, httpez.Action[service.AddUserInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.AddUserInput) (*domain.User, error) {
			return authSvc.AddUser(c.Request.Context(), *in)
		},
	})

	// --- 店铺列表（带均分） ---
	type storesOut struct {
		Total int                   `json:"total"`
		Items []domain.StoreDetails `json:"items"`
	}
	httpez.RegisterAction[service.StoreQuery, storesOut](ezAdmin, httpez.Action[service.StoreQuery, storesOut]{
		Method: http.MethodGet,
		Path:   "/stores",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *service.StoreQuery) (storesOut, error) {
			stores, err := storeSvc.ListStores(c.Request.Context(), *in)
			if err != nil {
				return storesOut{}, err
			}
			return storesOut{Total: len(stores), Items: stores}, nil
		},
	})

	// --- 建店 ---
	httpez.RegisterAction[service.AddStoreInput, *domain.Store](ezAdmin, httpez.Action[service.AddStoreInput, *domain.Store]{
		Method: http.MethodPost,
		Path:   "/stores",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.AddStoreInput) (*domain.Store, error) {
			return storeSvc.AddStore(c.Request.Context(), *in)
		},
	})
}
