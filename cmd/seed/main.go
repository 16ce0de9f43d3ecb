package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	"github.com/emprendia/emprendia-backend/pkg/logger"
	"github.com/emprendia/emprendia-backend/pkg/security"
)

// Seeds a demo marketplace into an empty document: one admin, two approved
// entrepreneurs with published products and one pending account. Does
// nothing when the document already has users.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	store, err := docstore.NewFileStore(cfg.Store)
	if err != nil {
		logg.Error(ctx, "failed to open document store", err)
		os.Exit(1)
	}

	adminPassword := os.Getenv("EMPRENDIA_SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin-cambiar-ya"
	}
	adminHash, err := security.HashPassword(adminPassword, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash admin password", err)
		os.Exit(1)
	}
	demoHash, err := security.HashPassword("emprendia-demo", cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash demo password", err)
		os.Exit(1)
	}

	seeded := false
	err = store.Mutate(ctx, func(doc *docstore.Document) error {
		if len(doc.Users) > 0 {
			return nil
		}
		seedDocument(doc, adminHash, demoHash, time.Now())
		seeded = true
		return nil
	})
	if err != nil {
		logg.Error(ctx, "failed to seed document", err)
		os.Exit(1)
	}

	if seeded {
		logg.Info(ctx, "demo marketplace seeded")
	} else {
		logg.Info(ctx, "document already has users, nothing to do")
	}
}

func seedDocument(doc *docstore.Document, adminHash, demoHash string, now time.Time) {
	ts := docstore.NowISO(now)

	admin := models.User{
		ID:                 uuid.NewString(),
		Email:              "admin@emprendia.co",
		PasswordHash:       adminHash,
		Role:               enums.RoleAdmin,
		Status:             enums.UserStatusActive,
		MustChangePassword: true,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}

	ana := models.User{
		ID:           uuid.NewString(),
		Email:        "ana@dulcesana.co",
		PasswordHash: demoHash,
		Role:         enums.RoleEmprendedor,
		Status:       enums.UserStatusActive,
		CanViewStats: true,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	anaProfile := models.Profile{
		ID:           uuid.NewString(),
		OwnerUserID:  ana.ID,
		BusinessName: "Dulces Ana",
		ShortDesc:    "Tortas y postres por encargo",
		Categories:   []string{"Comida"},
		City:         "Medellín",
		Availability: "Lunes a sábado",
		Links: map[enums.LinkChannel]string{
			enums.LinkChannelWhatsApp: "+573001112233",
		},
		GalleryURLs: []string{},
		IsApproved:  true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	mario := models.User{
		ID:           uuid.NewString(),
		Email:        "mario@tallermario.co",
		PasswordHash: demoHash,
		Role:         enums.RoleEmprendedor,
		Status:       enums.UserStatusActive,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	marioProfile := models.Profile{
		ID:           uuid.NewString(),
		OwnerUserID:  mario.ID,
		BusinessName: "Taller Mario",
		ShortDesc:    "Reparación de bicicletas a domicilio",
		Categories:   []string{"Servicios"},
		City:         "Bogotá",
		Links: map[enums.LinkChannel]string{
			enums.LinkChannelPhone: "+573015556677",
		},
		GalleryURLs: []string{},
		IsApproved:  true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	pending := models.User{
		ID:           uuid.NewString(),
		Email:        "laura@florylienzo.co",
		PasswordHash: demoHash,
		Role:         enums.RoleEmprendedor,
		Status:       enums.UserStatusPending,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	pendingProfile := models.Profile{
		ID:           uuid.NewString(),
		OwnerUserID:  pending.ID,
		BusinessName: "Flor y Lienzo",
		ShortDesc:    "Acuarelas y retratos personalizados",
		Categories:   []string{"Arte"},
		City:         "Cali",
		Links:        map[enums.LinkChannel]string{},
		GalleryURLs:  []string{},
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	tortaPrice := decimal.NewFromInt(85000)
	torta := models.Product{
		ID:          uuid.NewString(),
		OwnerUserID: ana.ID,
		ProfileID:   anaProfile.ID,
		Name:        "Torta de chocolate",
		Description: "Torta húmeda de chocolate para 12 porciones",
		PriceKind:   enums.PriceKindFixed,
		Price:       &tortaPrice,
		Category:    "Comida",
		Tags:        []string{"tortas", "chocolate"},
		PhotoURLs:   []string{},
		Status:      enums.ProductStatusPublished,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	galletasPrice := decimal.NewFromInt(18000)
	galletas := models.Product{
		ID:          uuid.NewString(),
		OwnerUserID: ana.ID,
		ProfileID:   anaProfile.ID,
		Name:        "Galletas decoradas",
		Description: "Caja de doce galletas decoradas a mano",
		PriceKind:   enums.PriceKindFrom,
		Price:       &galletasPrice,
		Category:    "Comida",
		Tags:        []string{"galletas"},
		PhotoURLs:   []string{},
		Status:      enums.ProductStatusPublished,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	ajuste := models.Product{
		ID:          uuid.NewString(),
		OwnerUserID: mario.ID,
		ProfileID:   marioProfile.ID,
		Name:        "Ajuste completo de bicicleta",
		Description: "Revisión de frenos, cambios y centrado de ruedas",
		PriceKind:   enums.PriceKindAgree,
		Category:    "Servicios",
		Tags:        []string{"bicicletas", "mantenimiento"},
		PhotoURLs:   []string{},
		Status:      enums.ProductStatusPublished,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	doc.Users = append(doc.Users, admin, ana, mario, pending)
	doc.Profiles = append(doc.Profiles, anaProfile, marioProfile, pendingProfile)
	doc.Products = append(doc.Products, torta, galletas, ajuste)
	doc.Featured = models.Featured{
		ProductIDs: []string{torta.ID, ajuste.ID},
		ProfileIDs: []string{anaProfile.ID},
	}
	doc.Meta.SeededAt = ts
}
