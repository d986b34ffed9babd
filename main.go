package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
	"github.com/Rahim252004/decluxdz-store/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Contact{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Seed default admin and catalog categories
	seedDefaultAdmin(db)
	seedDefaultCategories(db)

	// Gin setup
	r := gin.Default()

	// Uploaded images are capped at 16 MB
	r.MaxMultipartMemory = 16 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Cookie-backed sessions: visitor carts and admin logins
	store := cookie.NewStore([]byte(getEnv("SESSION_SECRET", "dev-secret-key-change-in-production")))
	r.Use(sessions.Sessions("decluxsess", store))

	// Serve uploaded images
	uploadsDir := getEnv("UPLOAD_DIR", "uploads")
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	r.Static("/uploads", uploadsDir)

	// Setup routes
	routes.SetupRoutes(r, db)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// seedDefaultAdmin creates the initial admin account when the table is empty.
func seedDefaultAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		log.Fatalf("❌ Failed to check admin table: %v", err)
	}
	if count > 0 {
		return
	}

	admin := models.Admin{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Email:    getEnv("ADMIN_EMAIL", "admin@decluxdz.com"),
	}
	if err := admin.SetPassword(getEnv("ADMIN_PASSWORD", "admin123")); err != nil {
		log.Fatalf("❌ Failed to hash admin password: %v", err)
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to seed default admin: %v", err)
	}
	log.Printf("🌱 Default admin user created: %s", admin.Username)
}

// seedDefaultCategories seeds the six fixed catalog categories when none exist,
// so products always have a category to attach to.
func seedDefaultCategories(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		log.Fatalf("❌ Failed to check category table: %v", err)
	}
	if count > 0 {
		return
	}

	defaults := []models.Category{
		{Name: "Ceiling Decorations", NameAr: "ديكور أسقف"},
		{Name: "Wall Designs", NameAr: "تصاميم جدران"},
		{Name: "Cornices", NameAr: "كورنيش"},
		{Name: "Columns", NameAr: "أعمدة"},
		{Name: "Frames", NameAr: "إطارات"},
		{Name: "Accessories", NameAr: "إكسسوارات"},
	}
	if err := db.Create(&defaults).Error; err != nil {
		log.Fatalf("❌ Failed to seed default categories: %v", err)
	}
	log.Printf("🌱 Seeded %d default categories", len(defaults))
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
