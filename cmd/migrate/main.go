package main

import (
	"log"
	"os"

	"angus-connect-be/internal/model"
	"angus-connect-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'app_role') THEN CREATE TYPE app_role AS ENUM ('admin', 'moderator', 'user'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_status') THEN CREATE TYPE user_status AS ENUM ('pending', 'active', 'blocked'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'remate_categoria') THEN CREATE TYPE remate_categoria AS ENUM ('Toros', 'Vientres', 'Terneros'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'remate_estado') THEN CREATE TYPE remate_estado AS ENUM ('proximo', 'activo', 'finalizado'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.UserRole{},
		&model.PasswordResetToken{},
		&model.UserRefreshToken{},
		&model.Cabana{},
		&model.Remate{},
		&model.Noticia{},
		&model.Notification{},
		&model.NotificationRead{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: helper view for the directory page
	log.Println("Step 3: Creating Views...")

	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW cabanas_con_remates AS
		 SELECT c.id, c.nombre, c.ubicacion, c.remates_activos,
		        COUNT(r.id) FILTER (WHERE r.estado = 'activo') AS remates_activos_reales
		 FROM cabanas c
		 LEFT JOIN remates r ON r.cabana_id = c.id AND r.deleted_at IS NULL
		 WHERE c.deleted_at IS NULL
		 GROUP BY c.id;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
