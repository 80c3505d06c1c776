package router

import (
	"database/sql"
	"net/http"
	"time"

	mem "vet-clinic/internal/adapters/storage/memory"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/docs"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/invoices"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger // nil = Nop

	// 0 = invoices.DefaultNumberYear
	InvoiceNumberYear int
	// nil = time.Local
	Location *time.Location
	// nil = time.Now
	Clock func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	var (
		clientRepo  clients.Repository
		petRepo     pets.Repository
		apptRepo    appointments.Repository
		invoiceRepo invoices.Repository
	)

	if opts.DB != nil {
		clientRepo = pg.NewClientsRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		apptRepo = pg.NewAppointmentsRepo(opts.DB)
		invoiceRepo = pg.NewInvoicesRepo(opts.DB)
	} else {
		clientRepo = mem.NewClientRepo()
		petRepo = mem.NewPetRepo()
		apptRepo = mem.NewAppointmentRepo()
		invoiceRepo = mem.NewInvoiceRepo()
	}

	// Services por módulo
	clientsSvc := clients.NewService(clientRepo,
		clients.WithClock(now), clients.WithLogger(log))
	petsSvc := pets.NewService(petRepo, clientRepo,
		pets.WithClock(now), pets.WithLogger(log))
	apptSvc := appointments.NewService(apptRepo, clientRepo, petRepo,
		appointments.WithClock(now), appointments.WithLogger(log), appointments.WithLocation(opts.Location))
	invoicesSvc := invoices.NewService(invoiceRepo, apptRepo, clientRepo,
		invoices.WithClock(now), invoices.WithLogger(log), invoices.WithNumberYear(opts.InvoiceNumberYear))

	// Rutas por módulo
	clients.RegisterRoutes(r, clientsSvc)
	pets.RegisterRoutes(r, petsSvc)
	appointments.RegisterRoutes(r, apptSvc)
	invoices.RegisterRoutes(r, invoicesSvc)

	return r
}
