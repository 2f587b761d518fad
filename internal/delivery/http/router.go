package http

import (
	"net/http"

	"schedula/internal/delivery/http/handler"
	"schedula/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	doctorHandler      *handler.DoctorHandler
	locationHandler    *handler.LocationHandler
	appointmentHandler *handler.AppointmentHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	locationHandler *handler.LocationHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		doctorHandler:      doctorHandler,
		locationHandler:    locationHandler,
		appointmentHandler: appointmentHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/doctors/register", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	api.HandleFunc("/patients/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	api.HandleFunc("/patients/login", r.authHandler.Login).Methods(http.MethodPost)

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor discovery (public)
	api.HandleFunc("/doctors/specializations", r.doctorHandler.GetSpecializations).Methods(http.MethodGet)
	api.HandleFunc("/doctors/available", r.doctorHandler.GetAvailableDoctors).Methods(http.MethodGet)

	// Doctor onboarding routes (protected - doctor only). Registered before
	// the /doctors/{id} wildcard so literal paths like /doctors/locations win.
	doctor := api.PathPrefix("/doctors").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", r.doctorHandler.SetupProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/locations", r.locationHandler.CreateLocation).Methods(http.MethodPost)
	doctor.HandleFunc("/locations", r.locationHandler.ListMyLocations).Methods(http.MethodGet)
	doctor.HandleFunc("/locations/{id}/availability", r.locationHandler.SetAvailability).Methods(http.MethodPut)
	doctor.HandleFunc("/complete-onboarding", r.doctorHandler.CompleteOnboarding).Methods(http.MethodPost)

	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/locations/{locationId}/availability", r.doctorHandler.GetDoctorSlots).Methods(http.MethodGet)

	// Appointment routes (protected - patient only)
	patient := api.PathPrefix("/patients").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.appointmentHandler.ListMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPut)
	patient.HandleFunc("/appointments/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
