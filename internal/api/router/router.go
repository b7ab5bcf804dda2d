package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zyrrhky/schedease/config"
	"github.com/zyrrhky/schedease/internal/api/handler"
	"github.com/zyrrhky/schedease/internal/api/middleware"
	"github.com/zyrrhky/schedease/pkg/jwt"
	"github.com/zyrrhky/schedease/pkg/redis"
)

// maxBodyBytes 全局请求体上限，覆盖最大的粘贴导入场景
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录注册加速率限制防爆破）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 课程模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.List)
				subjects.POST("", h.Subject.Create)
				subjects.POST("/filter", h.Subject.Filter)
				subjects.GET("/:id", h.Subject.Get)
				subjects.PUT("/:id", h.Subject.Update)
				subjects.DELETE("/:id", h.Subject.Delete)
			}

			// 导入模块
			importGroup := authorized.Group("/import")
			{
				importGroup.POST("/paste", h.Import.Paste)
				importGroup.POST("/csv", h.Import.CSV)
			}

			// 课表模块
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Schedule.List)
				schedules.POST("", h.Schedule.Create)
				schedules.GET("/:id", h.Schedule.Get)
				schedules.PUT("/:id", h.Schedule.Update)
				schedules.DELETE("/:id", h.Schedule.Delete)

				// 时间网格与导出挂在课表资源下
				schedules.GET("/:id/timetable", h.Timetable.GetTimetable)
				schedules.GET("/:id/export/xlsx", h.Export.ExportXLSX)
				schedules.GET("/:id/export/ics", h.Export.ExportICS)
			}

			// 时间槽定义（全局常量，不依赖具体课表）
			authorized.GET("/timetable/slots", h.Timetable.Slots)
		}
	}

	return r
}
