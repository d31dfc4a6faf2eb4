package router

import (
	"time"

	"gympos/internal/config"
	"gympos/internal/handler"
	"gympos/internal/infra"
	"gympos/internal/middleware"
	"gympos/internal/repository"
	"gympos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store/Redis
// rdb and notifier may be nil: the drink catalog is then served uncached and
// complete closes are not reported.
func New(cfg *config.Config, store repository.Store, rdb *redis.Client, notifier service.CierreNotifier) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	var cache service.CatalogoCache
	if rdb != nil {
		cache = infra.NewCatalogoCache(rdb, cfg.DrinksCacheTTL)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	cajaSvc := service.NewCajaService(store)
	pagoSvc := service.NewPagoService(store, cajaSvc)
	bebidaSvc := service.NewBebidaService(store, cajaSvc, cache)
	gastoSvc := service.NewGastoService(store, cajaSvc)
	socioSvc := service.NewSocioService(store)
	cierreSvc := service.NewCierreService(store, cajaSvc, notifier)
	reporteSvc := service.NewReporteService(store)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cajaH := handler.NewCajaHandler(cajaSvc, cierreSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	bebidasH := handler.NewBebidasHandler(bebidaSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	sociosH := handler.NewSociosHandler(socioSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(store, rdb))

	register := r.Group("/register")
	{
		register.POST("/open", cajaH.Abrir)
		register.GET("/current", cajaH.Actual)
		register.POST("/close", cajaH.Cerrar)
		register.GET("/closures", cajaH.ListarCierres)
		register.GET("/closures/:id", cajaH.ObtenerCierre)
	}

	r.POST("/payments", pagosH.Registrar)
	r.GET("/payments", pagosH.Listar)

	r.POST("/drink-sales", bebidasH.RegistrarVenta)
	r.GET("/drink-sales", bebidasH.ListarVentas)

	drinks := r.Group("/drinks")
	{
		drinks.GET("", bebidasH.ListarDisponibles)
		drinks.GET("/admin", bebidasH.ListarTodas)
		drinks.POST("", bebidasH.Crear)
		drinks.PUT("/:id", bebidasH.Actualizar)
		drinks.DELETE("/:id", bebidasH.Desactivar)
		drinks.PATCH("/:id/reactivar", bebidasH.Reactivar)
		drinks.PATCH("/:id/stock", bebidasH.Reponer)
	}

	r.POST("/expenses", gastosH.Registrar)
	r.GET("/expenses", gastosH.Listar)

	r.POST("/members", sociosH.Crear)
	r.GET("/members", sociosH.Listar)

	r.GET("/reports/summary", reportesH.Resumen)

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
