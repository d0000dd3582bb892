package main

import (
	"fmt"
	"log"

	"quickbill/internal/artifact"
	"quickbill/internal/config"
	"quickbill/internal/dispatch"
	"quickbill/internal/handler"
	"quickbill/internal/port"
	"quickbill/internal/render"
	"quickbill/internal/repository/postgres"
	"quickbill/internal/router"
	"quickbill/internal/service"
	s3storage "quickbill/internal/storage/s3"
	"quickbill/internal/whatsapp/noop"
	"quickbill/internal/whatsapp/personal"
	"quickbill/internal/whatsapp/twilio"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	enterpriseRepo := postgres.NewEnterpriseRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)

	// Initialize artifact storage. A missing S3 configuration is not fatal;
	// the store degrades to ephemeral references.
	var storage port.ObjectStorage
	if cfg.S3.Configured() {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Println("S3 not configured; invoice documents will use ephemeral references")
	}
	artifacts := artifact.NewStore(storage, &cfg.S3)

	// Select the outbound messaging provider
	provider := selectProvider(&cfg.WhatsApp)
	dispatcher := dispatch.NewDispatcher(provider)

	renderer := render.NewMarotoRenderer()

	// Initialize services
	authSvc := service.NewAuthService(enterpriseRepo, cfg.JWT)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, customerRepo)
	customerSvc := service.NewCustomerService(customerRepo, invoiceRepo)
	sendSvc := service.NewSendService(invoiceRepo, notificationRepo, renderer, artifacts, dispatcher)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, sendSvc)
	customerH := handler.NewCustomerHandler(customerSvc)
	whatsappH := handler.NewWhatsAppHandler(sendSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, invoiceH, customerH, whatsappH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// selectProvider resolves the messaging channel once at startup. The personal
// channel wins when the flag is set; otherwise Twilio when its credentials
// look valid; otherwise a noop provider that fails every send with a clear
// configuration message.
func selectProvider(cfg *config.WhatsAppConfig) port.MessageProvider {
	if cfg.UsePersonal {
		if !cfg.Personal.Configured() {
			log.Println("personal WhatsApp channel selected but not fully configured; sends will fail until it is")
		}
		return personal.NewProvider(&cfg.Personal)
	}
	if cfg.Twilio.Configured() {
		p, err := twilio.NewProvider(&cfg.Twilio)
		if err != nil {
			log.Printf("failed to initialize Twilio provider: %v; falling back to noop", err)
			return noop.NewProvider()
		}
		return p
	}
	log.Println("no WhatsApp provider configured; sends will fail")
	return noop.NewProvider()
}
