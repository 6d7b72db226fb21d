package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/config"
	"github.com/jobsoutcuba/backend/internal/database"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/utils"
)

// provincias maps each province to its municipios.
var provincias = map[string][]string{
	"Pinar del Río":      {"Pinar del Río", "Consolación del Sur", "San Juan y Martínez", "Viñales"},
	"Artemisa":           {"Artemisa", "San Cristóbal", "Bauta", "Güira de Melena"},
	"La Habana":          {"Playa", "Plaza de la Revolución", "Centro Habana", "La Habana Vieja", "Diez de Octubre", "Cerro", "Marianao", "Boyeros", "Arroyo Naranjo", "Guanabacoa"},
	"Mayabeque":          {"San José de las Lajas", "Güines", "Jaruco", "Batabanó"},
	"Matanzas":           {"Matanzas", "Cárdenas", "Colón", "Jagüey Grande"},
	"Cienfuegos":         {"Cienfuegos", "Cruces", "Palmira", "Rodas"},
	"Villa Clara":        {"Santa Clara", "Sagua la Grande", "Caibarién", "Placetas"},
	"Sancti Spíritus":    {"Sancti Spíritus", "Trinidad", "Cabaiguán", "Yaguajay"},
	"Ciego de Ávila":     {"Ciego de Ávila", "Morón", "Chambas", "Majagua"},
	"Camagüey":           {"Camagüey", "Florida", "Nuevitas", "Santa Cruz del Sur"},
	"Las Tunas":          {"Las Tunas", "Puerto Padre", "Amancio", "Jobabo"},
	"Holguín":            {"Holguín", "Banes", "Mayarí", "Moa", "Gibara"},
	"Granma":             {"Bayamo", "Manzanillo", "Jiguaní", "Niquero"},
	"Santiago de Cuba":   {"Santiago de Cuba", "Palma Soriano", "Contramaestre", "San Luis"},
	"Guantánamo":         {"Guantánamo", "Baracoa", "Maisí", "Yateras"},
	"Isla de la Juventud": {"Nueva Gerona", "La Demajagua"},
}

func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	seedAdmin()
	seedUbicaciones()
}

func seedAdmin() {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_USERNAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	var admin models.Usuario
	result := database.DB.Where("LOWER(username) = LOWER(?)", adminUsername).First(&admin)
	if result.Error == nil {
		log.Println("Admin user already exists:", admin.Username)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.Usuario{
		ID:           uuid.New(),
		Nombre:       "Administrador",
		Username:     adminUsername,
		Email:        &adminEmail,
		PasswordHash: passwordHash,
		Rol:          models.RolAdmin,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created:", admin.Username)
}

func seedUbicaciones() {
	var count int64
	database.DB.Model(&models.Provincia{}).Count(&count)
	if count > 0 {
		log.Println("Ubicaciones already seeded:", count, "provincias")
		return
	}

	for nombre, municipios := range provincias {
		provincia := models.Provincia{
			ID:     uuid.New(),
			Nombre: nombre,
		}
		if err := database.DB.Create(&provincia).Error; err != nil {
			log.Fatal("Failed to create provincia:", err)
		}

		for _, municipioNombre := range municipios {
			municipio := models.Municipio{
				ID:          uuid.New(),
				ProvinciaID: provincia.ID,
				Nombre:      municipioNombre,
			}
			if err := database.DB.Create(&municipio).Error; err != nil {
				log.Fatal("Failed to create municipio:", err)
			}
		}
	}

	log.Println("Ubicaciones seeded:", len(provincias), "provincias")
}
