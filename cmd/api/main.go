package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/handler"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/middleware"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/ws"
	"github.com/Aioros01/veterinaria-sistema-sub000/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Client{}, &model.Pet{},
		&model.Appointment{}, &model.MedicalRecord{}, &model.Hospitalization{},
		&model.Medicine{}, &model.Prescription{}, &model.Sale{},
		&model.ConsentDocument{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	clientRepo := repository.NewClientRepo(db)
	petRepo := repository.NewPetRepo(db)
	apptRepo := repository.NewAppointmentRepo(db)
	recordRepo := repository.NewMedicalRecordRepo(db)
	hospRepo := repository.NewHospitalizationRepo(db)
	medicineRepo := repository.NewMedicineRepo(db)
	prescriptionRepo := repository.NewPrescriptionRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	consentRepo := repository.NewConsentRepo(db)

	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)
	clientService := service.NewClientService(clientRepo)
	petService := service.NewPetService(petRepo, clientRepo)
	apptService := service.NewAppointmentService(apptRepo, petRepo, userRepo, wsHub)
	medicalService := service.NewMedicalService(recordRepo, hospRepo, petRepo, wsHub)
	inventoryService := service.NewInventoryService(medicineRepo, db, wsHub)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, petRepo, medicineRepo, userRepo)
	saleService := service.NewSaleService(medicineRepo, prescriptionRepo, saleRepo, db, wsHub)
	consentService := service.NewConsentService(consentRepo, petRepo, clientRepo)
	dashboardService := service.NewDashboardService(saleRepo, apptRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)
	clientHandler := handler.NewClientHandler(clientService, petService)
	petHandler := handler.NewPetHandler(petService)
	apptHandler := handler.NewAppointmentHandler(apptService)
	medicalHandler := handler.NewMedicalHandler(medicalService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionService)
	saleHandler := handler.NewSaleHandler(saleService)
	consentHandler := handler.NewConsentHandler(consentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Veterinaria Sistema v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashboardHandler.GetStats)
	protected.Get("/dashboard/sales-movement", middleware.RequirePrivilege("dashboard:view"), dashboardHandler.GetSalesMovement)

	// User Management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/veterinarians", userHandler.GetVeterinarians)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles and Privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// Clients
	protected.Get("/clients", middleware.RequirePrivilege("client:view"), clientHandler.GetClients)
	protected.Get("/clients/:id", middleware.RequirePrivilege("client:view"), clientHandler.GetClient)
	protected.Get("/clients/:id/pets", middleware.RequirePrivilege("pet:view"), clientHandler.GetClientPets)
	protected.Post("/clients", middleware.RequirePrivilege("client:create"), clientHandler.CreateClient)
	protected.Put("/clients/:id", middleware.RequirePrivilege("client:update"), clientHandler.UpdateClient)
	protected.Delete("/clients/:id", middleware.RequirePrivilege("client:delete"), clientHandler.DeleteClient)

	// Pets
	protected.Get("/pets", middleware.RequirePrivilege("pet:view"), petHandler.GetPets)
	protected.Get("/pets/:id", middleware.RequirePrivilege("pet:view"), petHandler.GetPet)
	protected.Post("/pets", middleware.RequirePrivilege("pet:create"), petHandler.CreatePet)
	protected.Put("/pets/:id", middleware.RequirePrivilege("pet:update"), petHandler.UpdatePet)
	protected.Delete("/pets/:id", middleware.RequirePrivilege("pet:delete"), petHandler.DeletePet)

	// Pet sub-resources (histories)
	protected.Get("/pets/:id/appointments", middleware.RequirePrivilege("appointment:view"), apptHandler.GetAppointmentsByPet)
	protected.Get("/pets/:id/medical-records", middleware.RequirePrivilege("record:view"), medicalHandler.GetRecordsByPet)
	protected.Get("/pets/:id/hospitalizations", middleware.RequirePrivilege("hospitalization:view"), medicalHandler.GetHospitalizationsByPet)
	protected.Get("/pets/:id/prescriptions", middleware.RequirePrivilege("prescription:view"), prescriptionHandler.GetPrescriptionsByPet)
	protected.Get("/pets/:id/consents", middleware.RequirePrivilege("consent:view"), consentHandler.GetConsentsByPet)

	// Appointments
	protected.Get("/appointments", middleware.RequirePrivilege("appointment:view"), apptHandler.GetAppointments)
	protected.Get("/appointments/:id", middleware.RequirePrivilege("appointment:view"), apptHandler.GetAppointment)
	protected.Post("/appointments", middleware.RequirePrivilege("appointment:create"), apptHandler.CreateAppointment)
	protected.Put("/appointments/:id/complete", middleware.RequirePrivilege("appointment:update"), apptHandler.CompleteAppointment)
	protected.Put("/appointments/:id/cancel", middleware.RequirePrivilege("appointment:update"), apptHandler.CancelAppointment)

	// Medical Records
	protected.Get("/medical-records/:id", middleware.RequirePrivilege("record:view"), medicalHandler.GetRecord)
	protected.Post("/medical-records", middleware.RequirePrivilege("record:create"), medicalHandler.CreateRecord)

	// Hospitalizations
	protected.Get("/hospitalizations/open", middleware.RequirePrivilege("hospitalization:view"), medicalHandler.GetOpenHospitalizations)
	protected.Post("/hospitalizations", middleware.RequirePrivilege("hospitalization:create"), medicalHandler.AdmitPet)
	protected.Put("/hospitalizations/:id/discharge", middleware.RequirePrivilege("hospitalization:update"), medicalHandler.DischargePet)

	// Medicines (inventory)
	protected.Get("/medicines", middleware.RequirePrivilege("medicine:view"), inventoryHandler.GetMedicines)
	protected.Get("/medicines/low-stock", middleware.RequirePrivilege("medicine:view"), inventoryHandler.GetLowStock)
	protected.Get("/medicines/expiring", middleware.RequirePrivilege("medicine:view"), inventoryHandler.GetExpiring)
	protected.Get("/medicines/:id", middleware.RequirePrivilege("medicine:view"), inventoryHandler.GetMedicine)
	protected.Post("/medicines", middleware.RequirePrivilege("medicine:create"), inventoryHandler.CreateMedicine)
	protected.Put("/medicines/:id", middleware.RequirePrivilege("medicine:update"), inventoryHandler.UpdateMedicine)
	protected.Post("/medicines/:id/adjust-stock", middleware.RequirePrivilege("medicine:restock"), inventoryHandler.AdjustStock)

	// Prescriptions
	protected.Get("/prescriptions", middleware.RequirePrivilege("prescription:view"), prescriptionHandler.GetPrescriptions)
	protected.Get("/prescriptions/:id", middleware.RequirePrivilege("prescription:view"), prescriptionHandler.GetPrescription)
	protected.Post("/prescriptions", middleware.RequirePrivilege("prescription:create"), prescriptionHandler.CreatePrescription)

	// Sales
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), saleHandler.GetSales)
	protected.Get("/sales/split-suggestion", middleware.RequirePrivilege("sale:view"), saleHandler.GetSplitSuggestion)
	protected.Get("/sales/:id", middleware.RequirePrivilege("sale:view"), saleHandler.GetSale)
	protected.Post("/sales", middleware.RequirePrivilege("sale:create"), saleHandler.CreateSale)
	protected.Post("/sales/from-prescription", middleware.RequirePrivilege("sale:create"), saleHandler.CreateSaleFromPrescription)
	protected.Delete("/sales/:id", middleware.RequirePrivilege("sale:void"), saleHandler.VoidSale)

	// Consent Documents
	protected.Get("/consents/pending", middleware.RequirePrivilege("consent:view"), consentHandler.GetPendingConsents)
	protected.Get("/consents/:id", middleware.RequirePrivilege("consent:view"), consentHandler.GetConsent)
	protected.Post("/consents", middleware.RequirePrivilege("consent:create"), consentHandler.CreateConsent)
	protected.Put("/consents/:id/sign", middleware.RequirePrivilege("consent:update"), consentHandler.SignConsent)
	protected.Put("/consents/:id/reject", middleware.RequirePrivilege("consent:update"), consentHandler.RejectConsent)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets ALL privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		if err := roleRepo.ReplacePrivileges(adminRole, allPrivileges); err != nil {
			log.Printf("Warning: Failed to assign ADMIN privileges: %v", err)
		} else {
			log.Println("✅ ADMIN role assigned all privileges")
		}
	}

	// VETERINARIAN gets clinical privileges
	vetRole, err := roleRepo.FindByCode(model.RoleVeterinarian)
	if err == nil && len(vetRole.Privileges) == 0 {
		vetPrivileges, _ := privilegeRepo.FindByCodes(model.VeterinarianPrivilegeCodes)
		if err := roleRepo.ReplacePrivileges(vetRole, vetPrivileges); err != nil {
			log.Printf("Warning: Failed to assign VETERINARIAN privileges: %v", err)
		} else {
			log.Println("✅ VETERINARIAN role assigned clinical privileges")
		}
	}

	// RECEPTIONIST gets front-desk privileges
	recRole, err := roleRepo.FindByCode(model.RoleReceptionist)
	if err == nil && len(recRole.Privileges) == 0 {
		recPrivileges, _ := privilegeRepo.FindByCodes(model.ReceptionistPrivilegeCodes)
		if err := roleRepo.ReplacePrivileges(recRole, recPrivileges); err != nil {
			log.Printf("Warning: Failed to assign RECEPTIONIST privileges: %v", err)
		} else {
			log.Println("✅ RECEPTIONIST role assigned front-desk privileges")
		}
	}

	// 4. Create default admin user with ADMIN role
	_, err = userRepo.FindByEmail("admin@veterinaria.local")
	if err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:       "admin@veterinaria.local",
			FullName:    "System Administrator",
			PhoneNumber: "",
			RoleID:      &adminRole.ID,
			IsActive:    true,
			Privileges:  adminRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin@veterinaria.local / admin123 (ADMIN)")
		}
	}
}
