package http

import (
	"net/http"

	"his-backend/internal/delivery/http/handler"
	"his-backend/internal/delivery/http/middleware"
	"his-backend/internal/domain/entity"
	"his-backend/internal/policy"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	profileHandler      *handler.ProfileHandler
	visitHandler        *handler.VisitHandler
	prescriptionHandler *handler.PrescriptionHandler
	labHandler          *handler.LabHandler
	invoiceHandler      *handler.InvoiceHandler
	referralHandler     *handler.ReferralHandler
	wearableHandler     *handler.WearableHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	profileHandler *handler.ProfileHandler,
	visitHandler *handler.VisitHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	labHandler *handler.LabHandler,
	invoiceHandler *handler.InvoiceHandler,
	referralHandler *handler.ReferralHandler,
	wearableHandler *handler.WearableHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		userHandler:         userHandler,
		profileHandler:      profileHandler,
		visitHandler:        visitHandler,
		prescriptionHandler: prescriptionHandler,
		labHandler:          labHandler,
		invoiceHandler:      invoiceHandler,
		referralHandler:     referralHandler,
		wearableHandler:     wearableHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Logout authenticates by the refresh token in its body, so it stays
	// public: a client with an expired access token can still revoke its
	// session. Registered before the /auth subrouters so their prefix
	// matchers cannot swallow it.
	api.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Auth routes (public, credential endpoints rate limited)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.rateLimitMiddleware.Handle)
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Account provisioning (admin only)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.Use(middleware.Require(policy.RoleCheck(entity.RoleAdmin)))
	users.HandleFunc("/doctors", r.userHandler.CreateDoctor).Methods(http.MethodPost)
	users.HandleFunc("/staff", r.userHandler.CreateStaff).Methods(http.MethodPost)
	users.HandleFunc("/patients", r.userHandler.CreatePatient).Methods(http.MethodPost)

	// Profile self-service (any authenticated role)
	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(r.authMiddleware.Authenticate)
	profile.HandleFunc("", r.profileHandler.Update).Methods(http.MethodPut)
	profile.HandleFunc("/photo", r.profileHandler.UploadPhoto).Methods(http.MethodPost)

	profileDeviceKey := api.PathPrefix("/profile/device-key").Subrouter()
	profileDeviceKey.Use(r.authMiddleware.Authenticate)
	profileDeviceKey.Use(middleware.Require(policy.RoleCheck(entity.RolePatient)))
	profileDeviceKey.HandleFunc("", r.profileHandler.GenerateDeviceKey).Methods(http.MethodPost)

	// Visits
	visits := api.PathPrefix("/visits").Subrouter()
	visits.Use(r.authMiddleware.Authenticate)
	visits.Handle("", middleware.Require(policy.PermissionCheck(
		[]entity.Role{entity.RoleAdmin, entity.RoleStaff},
		entity.DepartmentRegistration,
	))(http.HandlerFunc(r.visitHandler.Create))).Methods(http.MethodPost)
	visits.HandleFunc("", r.visitHandler.List).Methods(http.MethodGet)
	visits.HandleFunc("/{id}", r.visitHandler.GetByID).Methods(http.MethodGet)
	visits.Handle("/{id}", middleware.Require(policy.RoleCheck(
		entity.RoleAdmin, entity.RoleDoctor,
	))(http.HandlerFunc(r.visitHandler.Update))).Methods(http.MethodPatch)
	visits.Handle("/{id}", middleware.Require(policy.PermissionCheck(
		[]entity.Role{entity.RoleAdmin, entity.RoleStaff},
		entity.DepartmentRegistration,
	))(http.HandlerFunc(r.visitHandler.Delete))).Methods(http.MethodDelete)

	// Prescriptions: doctors write, Pharmacy staff process
	prescriptions := api.PathPrefix("/prescriptions").Subrouter()
	prescriptions.Use(r.authMiddleware.Authenticate)
	prescriptions.Handle("", middleware.Require(policy.RoleCheck(
		entity.RoleDoctor,
	))(http.HandlerFunc(r.prescriptionHandler.Create))).Methods(http.MethodPost)
	prescriptions.HandleFunc("", r.prescriptionHandler.List).Methods(http.MethodGet)
	prescriptions.HandleFunc("/{id}", r.prescriptionHandler.GetByID).Methods(http.MethodGet)
	prescriptions.Handle("/{id}/status", middleware.Require(policy.PermissionCheck(
		[]entity.Role{entity.RoleAdmin, entity.RoleStaff},
		entity.DepartmentPharmacy,
	))(http.HandlerFunc(r.prescriptionHandler.UpdateStatus))).Methods(http.MethodPatch)

	// Lab orders: doctors order, Laboratory staff process
	labs := api.PathPrefix("/lab-orders").Subrouter()
	labs.Use(r.authMiddleware.Authenticate)
	labs.Handle("", middleware.Require(policy.RoleCheck(
		entity.RoleDoctor,
	))(http.HandlerFunc(r.labHandler.Create))).Methods(http.MethodPost)
	labs.HandleFunc("", r.labHandler.List).Methods(http.MethodGet)
	labs.HandleFunc("/{id}", r.labHandler.GetByID).Methods(http.MethodGet)
	labs.Handle("/{id}", middleware.Require(policy.PermissionCheck(
		[]entity.Role{entity.RoleAdmin, entity.RoleStaff},
		entity.DepartmentLaboratory,
	))(http.HandlerFunc(r.labHandler.Update))).Methods(http.MethodPatch)

	// Invoices: Cashier staff raise and settle
	invoices := api.PathPrefix("/invoices").Subrouter()
	invoices.Use(r.authMiddleware.Authenticate)
	invoices.Handle("", middleware.Require(policy.PermissionCheck(
		[]entity.Role{entity.RoleAdmin, entity.RoleStaff},
		entity.DepartmentCashier,
	))(http.HandlerFunc(r.invoiceHandler.Create))).Methods(http.MethodPost)
	invoices.HandleFunc("", r.invoiceHandler.List).Methods(http.MethodGet)
	invoices.HandleFunc("/{id}", r.invoiceHandler.GetByID).Methods(http.MethodGet)
	invoices.Handle("/{id}/pay", middleware.Require(policy.PermissionCheck(
		[]entity.Role{entity.RoleAdmin, entity.RoleStaff},
		entity.DepartmentCashier,
	))(http.HandlerFunc(r.invoiceHandler.Pay))).Methods(http.MethodPost)

	// Referrals: written and closed by the referring doctor
	referrals := api.PathPrefix("/referrals").Subrouter()
	referrals.Use(r.authMiddleware.Authenticate)
	referrals.Handle("", middleware.Require(policy.RoleCheck(
		entity.RoleDoctor,
	))(http.HandlerFunc(r.referralHandler.Create))).Methods(http.MethodPost)
	referrals.HandleFunc("", r.referralHandler.List).Methods(http.MethodGet)
	referrals.HandleFunc("/{id}", r.referralHandler.GetByID).Methods(http.MethodGet)
	referrals.Handle("/{id}/status", middleware.Require(policy.RoleCheck(
		entity.RoleAdmin, entity.RoleDoctor,
	))(http.HandlerFunc(r.referralHandler.UpdateStatus))).Methods(http.MethodPatch)

	// Device push endpoint, authenticated by X-Device-Key. Registered before
	// the /wearables subrouter so its prefix matcher cannot swallow it.
	api.HandleFunc("/wearables/ingest", r.wearableHandler.Ingest).Methods(http.MethodPost)

	// Wearables: patients manage their own devices; doctors and admins may
	// read measurements
	wearables := api.PathPrefix("/wearables").Subrouter()
	wearables.Use(r.authMiddleware.Authenticate)
	patientOnly := middleware.Require(policy.RoleCheck(entity.RolePatient))
	wearables.Handle("/devices", patientOnly(http.HandlerFunc(r.wearableHandler.RegisterDevice))).Methods(http.MethodPost)
	wearables.Handle("/devices", patientOnly(http.HandlerFunc(r.wearableHandler.ListDevices))).Methods(http.MethodGet)
	wearables.Handle("/devices/{id}", patientOnly(http.HandlerFunc(r.wearableHandler.UpdateDevice))).Methods(http.MethodPut)
	wearables.Handle("/devices/{id}", patientOnly(http.HandlerFunc(r.wearableHandler.DeleteDevice))).Methods(http.MethodDelete)
	wearables.Handle("/devices/{id}/measurements", middleware.Require(policy.RoleCheck(
		entity.RolePatient, entity.RoleDoctor, entity.RoleAdmin,
	))(http.HandlerFunc(r.wearableHandler.ListMeasurements))).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
