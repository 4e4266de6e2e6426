package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sicoil/backoffice/internal/application/auth"
	"github.com/sicoil/backoffice/internal/application/capital"
	"github.com/sicoil/backoffice/internal/application/cartera"
	"github.com/sicoil/backoffice/internal/application/cliente"
	"github.com/sicoil/backoffice/internal/application/inventario"
	"github.com/sicoil/backoffice/internal/application/kardex"
	"github.com/sicoil/backoffice/internal/application/venta"
	"github.com/sicoil/backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	InventarioUC *inventario.UseCase
	VentaUC      *venta.UseCase
	CarteraUC    *cartera.UseCase
	CapitalUC    *capital.UseCase
	KardexUC     *kardex.UseCase
	ClienteUC    *cliente.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/registro", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolAdmin), authHandler.Registrar)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos e inventario
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.InventarioUC)
	productos.Post("/", productoHandler.Crear)
	productos.Get("/", productoHandler.Listar)
	productos.Post("/ingreso", productoHandler.Ingreso)
	productos.Get("/:id", productoHandler.ObtenerLote)
	productos.Patch("/:id/stock/eliminar", productoHandler.EliminarCantidad)

	// Kardex
	kardexGroup := protected.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexUC)
	kardexGroup.Get("/", kardexHandler.Listar)
	kardexGroup.Get("/lote/:id", kardexHandler.PorLote)

	// Ventas
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventas.Post("/", ventaHandler.Crear)
	ventas.Get("/", ventaHandler.Listar)
	ventas.Get("/:id", ventaHandler.Obtener)
	ventas.Patch("/:id/anular", ventaHandler.Anular)
	ventas.Get("/:id/comprobante", ventaHandler.Comprobante)

	// Cartera (cuentas por cobrar)
	carteraGroup := protected.Group("/cartera")
	carteraHandler := NewCarteraHandler(deps.CarteraUC)
	carteraGroup.Get("/pendientes", carteraHandler.ListarPendientes)
	carteraGroup.Post("/abonos", carteraHandler.RegistrarAbono)
	carteraGroup.Get("/abonos", carteraHandler.ListarAbonos)
	carteraGroup.Get("/creditos", carteraHandler.ListarCreditos)

	// Capital: lecturas para todos, escrituras solo admin
	capitalGroup := protected.Group("/capital")
	capitalHandler := NewCapitalHandler(deps.CapitalUC)
	capitalGroup.Get("/movimientos", capitalHandler.ListarMovimientos)
	capitalGroup.Get("/resumen", capitalHandler.Resumen)
	capitalGroup.Post("/inyecciones", RequireRole(entity.RolAdmin), capitalHandler.RegistrarInyeccion)
	capitalGroup.Post("/retiros", RequireRole(entity.RolAdmin), capitalHandler.RegistrarRetiro)

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Crear)
	clientes.Get("/", clienteHandler.Listar)
	clientes.Get("/:id", clienteHandler.Obtener)
	clientes.Put("/:id", clienteHandler.Actualizar)
}
