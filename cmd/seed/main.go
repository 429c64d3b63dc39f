package main

import (
	"log"
	"os"
	"time"

	"angus-connect-be/internal/model"
	"angus-connect-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("=== Seeding Angus Connect ===")

	admin := seedAdmin(db)
	cabana := seedCabana(db, admin.Id)
	seedRemates(db, cabana.Id)
	seedNoticias(db)

	color.Green("=== Seed completed ===")
}

func seedAdmin(db *gorm.DB) *model.User {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@angusconnect.test"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Admin user already exists: %s", email)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error: Failed to hash admin password: %v", err)
		os.Exit(1)
	}
	hashed := string(hash)

	user := model.User{
		Email:        email,
		PasswordHash: &hashed,
		Nombre:       "Administrador",
		Status:       "active",
	}
	if err := db.Create(&user).Error; err != nil {
		color.Red("Error: Failed to create admin user: %v", err)
		os.Exit(1)
	}
	if err := db.Create(&model.UserRole{UserId: user.Id, Role: "admin"}).Error; err != nil {
		color.Red("Error: Failed to assign admin role: %v", err)
		os.Exit(1)
	}

	color.Green("Created admin user: %s", email)
	return &user
}

func seedCabana(db *gorm.DB, ownerId uuid.UUID) *model.Cabana {
	var existing model.Cabana
	if err := db.Where("nombre = ?", "Cabaña La Esperanza").First(&existing).Error; err == nil {
		color.Yellow("Cabaña already exists: %s", existing.Nombre)
		return &existing
	}

	desc := "Criadores de Angus negro y colorado desde 1985."
	cabana := model.Cabana{
		UserId:             ownerId,
		Nombre:             "Cabaña La Esperanza",
		Descripcion:        &desc,
		Ubicacion:          "Tandil, Buenos Aires",
		AnimalesDestacados: 12,
	}
	if err := db.Create(&cabana).Error; err != nil {
		color.Red("Error: Failed to create cabaña: %v", err)
		os.Exit(1)
	}

	color.Green("Created cabaña: %s", cabana.Nombre)
	return &cabana
}

func seedRemates(db *gorm.DB, cabanaId uuid.UUID) {
	var count int64
	db.Model(&model.Remate{}).Where("cabana_id = ?", cabanaId).Count(&count)
	if count > 0 {
		color.Yellow("Remates already seeded (%d found)", count)
		return
	}

	precioToros := 4500.0
	precioVientres := 2800.0
	descToros := "Lote de 40 toros Angus puros de pedigree."
	descVientres := "Vaquillonas preñadas con garantía sanitaria."

	remates := []model.Remate{
		{
			CabanaId:    cabanaId,
			Titulo:      "Remate Anual de Toros",
			Descripcion: &descToros,
			Categoria:   "Toros",
			Estado:      "proximo",
			Fecha:       time.Now().AddDate(0, 1, 0),
			Ubicacion:   "Sociedad Rural de Tandil",
			PrecioBase:  &precioToros,
		},
		{
			CabanaId:    cabanaId,
			Titulo:      "Venta de Vientres Seleccionados",
			Descripcion: &descVientres,
			Categoria:   "Vientres",
			Estado:      "proximo",
			Fecha:       time.Now().AddDate(0, 2, 0),
			Ubicacion:   "Predio ferial de Olavarría",
			PrecioBase:  &precioVientres,
		},
	}

	for i := range remates {
		if err := db.Create(&remates[i]).Error; err != nil {
			color.Red("Error: Failed to create remate %q: %v", remates[i].Titulo, err)
			os.Exit(1)
		}
		color.Green("Created remate: %s", remates[i].Titulo)
	}
}

func seedNoticias(db *gorm.DB) {
	var count int64
	db.Model(&model.Noticia{}).Count(&count)
	if count > 0 {
		color.Yellow("Noticias already seeded (%d found)", count)
		return
	}

	noticias := []model.Noticia{
		{
			Titulo:           "Nueva edición de la Expo Angus",
			Contenido:        "La asociación confirmó las fechas de la próxima exposición nacional, con jura de clasificación y remate de reproductores.",
			Autor:            "Prensa Angus",
			Categoria:        "eventos",
			FechaPublicacion: time.Now(),
		},
		{
			Titulo:           "Resultados del último control lechero",
			Contenido:        "Se publicaron los índices de los rodeos inscriptos en el programa de evaluación genética.",
			Autor:            "Departamento Técnico",
			Categoria:        "tecnica",
			FechaPublicacion: time.Now().AddDate(0, 0, -3),
		},
	}

	for i := range noticias {
		if err := db.Create(&noticias[i]).Error; err != nil {
			color.Red("Error: Failed to create noticia %q: %v", noticias[i].Titulo, err)
			os.Exit(1)
		}
		color.Green("Created noticia: %s", noticias[i].Titulo)
	}
}
