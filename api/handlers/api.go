package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/api"
	"github.com/corregedoria/procedimentos-api/backend"
	"github.com/corregedoria/procedimentos-api/config"
	"github.com/corregedoria/procedimentos-api/databases"
	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/mapamensal"
	"github.com/corregedoria/procedimentos-api/mapamensal/raster"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Facade   facade.Facade
	Exporter *mapamensal.Exporter
	Hub      *Hub

	dbHelper databases.DatabaseHelper
	client   databases.ClientHelper
	rod      *raster.Rod
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUsuarioDatabase(a.dbHelper), Secret: []byte(a.Config.JWTSecret)}
	m.SetupGoGuardian()

	r := mux.NewRouter()
	r.Use(api.LoggingMiddleware)

	i := Indicios{Facade: a.Facade}
	c := Catalogo{Facade: a.Facade}
	mp := Mapa{Facade: a.Facade, Exporter: a.Exporter}
	cloudinaryHandler := CloudinaryHandler{UploadPreset: a.Config.CloudinaryUploadPreset, APISecret: a.Config.CloudinaryAPISecret}

	// healthchex
	r.HandleFunc("/health", api.HealthCheckHandler)

	// websocket stays outside the timeout middleware, which buffers responses
	r.HandleFunc("/api/v1/ws", a.Hub.ServeWS).Methods("GET")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	if a.Config.RequestTimeout > 0 {
		apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))
	}

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/indicios/{pm_envolvido_id}", api.Middleware(http.HandlerFunc(i.IndiciosHandler))).Methods("GET")
	apiCreate.Handle("/indicios/{pm_envolvido_id}", api.Middleware(http.HandlerFunc(i.SalvarIndiciosHandler))).Methods("PUT")
	apiCreate.Handle("/indicios-categorias", api.Middleware(http.HandlerFunc(i.CategoriasHandler))).Methods("GET")

	apiCreate.Handle("/catalogo/crimes", api.Middleware(http.HandlerFunc(c.CrimesHandler))).Methods("GET")
	apiCreate.Handle("/catalogo/rdpm", api.Middleware(http.HandlerFunc(c.RDPMHandler))).Methods("GET")
	apiCreate.Handle("/catalogo/art29", api.Middleware(http.HandlerFunc(c.Art29Handler))).Methods("GET")

	apiCreate.Handle("/mapa-mensal", api.Middleware(http.HandlerFunc(mp.GerarMapaHandler))).Methods("GET")
	apiCreate.Handle("/mapa-mensal", api.Middleware(http.HandlerFunc(mp.SalvarMapaHandler))).Methods("POST")
	apiCreate.Handle("/mapas-mensais", api.Middleware(http.HandlerFunc(mp.MapasHandler))).Methods("GET")
	apiCreate.Handle("/mapa-mensal/{mapa_id}", api.Middleware(http.HandlerFunc(mp.MapaSalvoHandler))).Methods("GET")
	apiCreate.Handle("/mapa-mensal/{mapa_id}/pdf", api.Middleware(http.HandlerFunc(mp.MapaPDFHandler))).Methods("GET")

	apiCreate.Handle("/cloudinary/assinatura", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().Errorw("failed to create new client", "error", err)
		return err
	}
	a.client = client

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	if err := client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().Errorw("failed to connect to database", "error", err)
		return err
	}
	zap.S().Infow("procedimentos-api has connected to the database", "db", a.Config.DatabaseName)

	a.Hub = NewHub([]byte(a.Config.JWTSecret))
	a.Facade = backend.New(a.dbHelper, a.Hub)
	a.rod = raster.New(a.Config.ChromeControlURL, 0)
	a.Exporter = mapamensal.NewExporter(a.rod, a.Config.LogoPath)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Close releases the browser, the websocket clients and the database connection
func (a *App) Close(ctx context.Context) {
	if a.Hub != nil {
		a.Hub.Close()
	}
	if a.rod != nil {
		if err := a.rod.Close(); err != nil {
			zap.S().Warnw("failed to close browser", "error", err)
		}
	}
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			zap.S().Warnw("failed to disconnect from database", "error", err)
		}
	}
}
