// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/config"
	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@livestockai.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists:", email)
		os.Exit(0)
	}

	u := models.User{
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
		Name:     "Platform Admin",
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("   Email:   ", email)
	fmt.Println("   Password:", password, "(change it after first login)")
}
