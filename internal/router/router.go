package router

import (
	"context"
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/borrador"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/config"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/feed"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/handler"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/infra"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/middleware"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/service"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/vista"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/worker"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/ws"
)

// App bundles the wired engine with the pieces main still has to run:
// the hub loop, the feed subscriber and the async workers.
type App struct {
	Engine     *gin.Engine
	Hub        *ws.Hub
	Suscriptor *feed.Suscriptor
	Dispatcher *worker.Dispatcher

	Reportes    service.ReporteService
	ReporteRepo repository.ReporteRepository
}

// New wires all dependencies and returns the configured application.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *App {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	hub := ws.NewHub()
	publicador := feed.NewPublicador(rdb)
	suscriptor := feed.NewSuscriptor(rdb)
	dispatcher := worker.NewDispatcher(rdb)
	generadorPDF := infra.NewGeneradorReportePDF(cfg.PDFStoragePath)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	platilloRepo := repository.NewPlatilloRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	mesaRepo := repository.NewMesaRepository(db)
	recargoRepo := repository.NewRecargoRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Read models ──────────────────────────────────────────────────────────
	mesasVista := vista.NewMesasVista(mesaRepo, hub)
	cocinaVista := vista.NewCocinaVista(pedidoRepo, hub, cfg.MaxPedidosPantalla)
	mesasVista.Registrar(suscriptor)
	cocinaVista.Registrar(suscriptor)

	// Reception listens for ledger and report changes; the panel refetches on
	// every push, so the table name is payload enough.
	notificarRecepcion := func(_ context.Context, ev feed.Evento) {
		hub.Broadcast(ws.CanalRecepcion, ws.EventoRecepcion, map[string]string{
			"tabla": ev.Tabla,
			"tipo":  ev.Tipo,
		})
	}
	for _, tabla := range []string{
		feed.TablaRecargados, feed.TablaEmpleados, feed.TablaEventos,
		feed.TablaFacturas, feed.TablaReportes,
	} {
		suscriptor.Suscribir(tabla, notificarRecepcion)
	}

	// User rows go to every channel: each session watches its own row so a
	// forced deactivation or role change logs it out without waiting for
	// the token to expire.
	suscriptor.Suscribir(feed.TablaUsuarios, func(_ context.Context, ev feed.Evento) {
		for _, canal := range []string{ws.CanalMesero, ws.CanalCocina, ws.CanalRecepcion} {
			hub.Broadcast(canal, ws.EventoUsuarios, ev.New)
		}
	})

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg, publicador)
	platilloSvc := service.NewPlatilloService(platilloRepo)
	borradorSvc := service.NewBorradorService(borrador.NewStore(), platilloRepo)
	despachoSvc := service.NewDespachoService(pedidoRepo, mesaRepo, platilloRepo, publicador)
	pagoSvc := service.NewPagoService(pedidoRepo, mesaRepo, recargoRepo, publicador)
	recepcionSvc := service.NewRecepcionService(recargoRepo, pedidoRepo, publicador)
	reporteSvc := service.NewReporteService(pedidoRepo, reporteRepo, generadorPDF, dispatcher, publicador)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	platillosH := handler.NewPlatillosHandler(platilloSvc)
	pedidosH := handler.NewPedidosHandler(borradorSvc, despachoSvc)
	mesasH := handler.NewMesasHandler(mesasVista)
	cocinaH := handler.NewCocinaHandler(cocinaVista, publicador)
	pagosH := handler.NewPagosHandler(pagoSvc)
	recepcionH := handler.NewRecepcionHandler(recepcionSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// WebSocket — token travels in the query string, roles gate the channel
	r.GET("/v1/ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Carta — every authenticated panel reads it
		v1.GET("/carta", platillosH.Carta)

		// Waiter panel: draft composer and dispatch
		borradores := v1.Group("/borrador", middleware.RequireRole("mesero"))
		{
			borradores.GET("", pedidosH.VerBorrador)
			borradores.POST("/items", pedidosH.AgregarItem)
			borradores.DELETE("/items", pedidosH.QuitarItem)
			borradores.PATCH("/items", pedidosH.CambiarCantidad)
			borradores.DELETE("", pedidosH.LimpiarBorrador)
		}
		v1.POST("/pedidos", middleware.RequireRole("mesero"), pedidosH.Despachar)
		v1.GET("/mesas", middleware.RequireRole("mesero", "recepcion"), mesasH.Listar)
		v1.POST("/pagos", middleware.RequireRole("mesero", "recepcion"), pagosH.Cobrar)

		// Kitchen screen
		cocina := v1.Group("/cocina", middleware.RequireRole("cocina"))
		{
			cocina.GET("", cocinaH.Pantalla)
			cocina.POST("/:id/terminado", cocinaH.MarcarTerminado)
		}

		// Reception: deferred ledgers, invoices, reports
		recepcion := v1.Group("/recepcion", middleware.RequireRole("recepcion"))
		{
			recepcion.GET("/habitaciones", recepcionH.ListarHabitaciones)
			recepcion.POST("/habitaciones/:id/cobrar", recepcionH.CobrarHabitacion)
			recepcion.GET("/empleados", recepcionH.ListarEmpleados)
			recepcion.POST("/empleados/:id/cobrar", recepcionH.CobrarEmpleado)
			recepcion.GET("/eventos", recepcionH.ListarEventos)
			recepcion.POST("/eventos/:id/cobrar", recepcionH.CobrarEvento)

			recepcion.GET("/facturas", recepcionH.ListarFacturas)
			recepcion.PATCH("/facturas/:id", recepcionH.MarcarFacturada)
			recepcion.DELETE("/facturas/:id", recepcionH.EliminarFactura)
		}

		reportes := v1.Group("/reportes", middleware.RequireRole("recepcion"))
		{
			reportes.GET("/preview", reportesH.Preview)
			reportes.POST("", reportesH.Publicar)
			reportes.GET("", reportesH.Listar)
			reportes.GET("/:id/pdf", reportesH.DescargarPDF)
		}

		// Administration
		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}

		platillos := v1.Group("/platillos", middleware.RequireRole("admin"))
		{
			platillos.POST("", platillosH.Crear)
			platillos.PUT("/:id", platillosH.Actualizar)
			platillos.DELETE("/:id", platillosH.Desactivar)
		}
		v1.POST("/categorias", middleware.RequireRole("admin"), platillosH.CrearCategoria)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &App{
		Engine:      r,
		Hub:         hub,
		Suscriptor:  suscriptor,
		Dispatcher:  dispatcher,
		Reportes:    reporteSvc,
		ReporteRepo: reporteRepo,
	}
}
