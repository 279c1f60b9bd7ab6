package router

import (
	"time"

	"catalogo/internal/config"
	"catalogo/internal/handler"
	"catalogo/internal/middleware"
	"catalogo/internal/repository"
	"catalogo/internal/service"
	"catalogo/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogoRepo := repository.NewCatalogoRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(cfg)
	catalogoSvc := service.NewCatalogoService(catalogoRepo)
	produtoSvc := service.NewProdutoService(produtoRepo, catalogoRepo, rdb)
	pedidoSvc := service.NewPedidoService(pedidoRepo, catalogoRepo, dispatcher, cfg.Domain, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogosH := handler.NewCatalogosHandler(catalogoSvc)
	importarH := handler.NewImportarHandler(produtoSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Operator auth
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Catalogs: reads are public (the buyer-facing viewer has no login),
	// writes are operator-only.
	catalogos := r.Group("/catalogos")
	{
		catalogos.GET("", catalogosH.Listar)
		catalogos.GET("/:id", catalogosH.ObterPorID)
		catalogos.POST("", jwtMW, catalogosH.Criar)
		catalogos.PATCH("/:id", jwtMW, catalogosH.Atualizar)
		catalogos.POST("/:id/importar", jwtMW, importarH.Importar)

		catalogos.GET("/:id/produtos", produtosH.ListarPorPagina)
		catalogos.GET("/:id/busca", produtosH.Buscar)
	}

	// Orders: fully public. An order id is an unguessable UUID capability;
	// whoever holds the link may read and edit the order.
	pedidos := r.Group("/pedidos")
	{
		pedidos.POST("", pedidosH.Criar)
		pedidos.GET("/:id", pedidosH.Carregar)
		pedidos.PATCH("/:id", pedidosH.Atualizar)
		pedidos.PUT("/:id/itens", pedidosH.SubstituirItens)
		pedidos.POST("/:id/itens/add", pedidosH.AdicionarItem)
		pedidos.POST("/:id/itens/remove", pedidosH.RemoverItem)
		pedidos.GET("/:id/whatsapp", pedidosH.Whatsapp)
		pedidos.GET("/:id/pdf", pedidosH.BaixarPDF)
	}

	// Shareable order link resolver
	r.GET("/p/:id", pedidosH.Resolver)

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
