package db

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/roles"
)

// SeedAdmin crea la cuenta administradora inicial cuando no existe
// ningún superusuario. Usuario y contraseña salen de ADMIN_USERNAME y
// ADMIN_PASSWORD; sin contraseña en el entorno no se crea nada.
func SeedAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Where("superuser = ?", true).Count(&count).Error; err != nil {
		log.Printf("seed: could not check for existing admin: %v", err)
		return
	}
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("seed: no superuser and ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed: could not hash admin password: %v", err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Username:     username,
			PasswordHash: string(hash),
			Superuser:    true,
			Active:       true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		profile := models.UserProfile{
			UserID: admin.ID,
			Role:   string(roles.Administrator),
			Active: true,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		log.Printf("seed: could not create admin user: %v", err)
		return
	}

	log.Printf("seed: admin user %q created", username)
}
