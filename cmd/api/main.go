package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gearshare/internal/database"
	"gearshare/internal/domain"
	"gearshare/internal/middleware"
	"gearshare/internal/modules/auth"
	"gearshare/internal/modules/booking"
	"gearshare/internal/modules/catalog"
	"gearshare/internal/modules/chat"
	"gearshare/internal/modules/favorite"
	jwtsvc "gearshare/internal/pkg/jwt"
	"gearshare/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "gearshare.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Equipment{},
		&domain.Booking{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Favorite{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	chatRepo := repository.NewChatRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(equipmentRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	hub := chat.NewHub()
	defer hub.Close()

	chatService := chat.NewService(chatRepo, userRepo, equipmentRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub)

	bookingService := booking.NewService(bookingRepo, equipmentRepo, chatService)
	bookingHandler := booking.NewHandler(bookingService)

	favoriteService := favorite.NewService(favoriteRepo)
	favoriteHandler := favorite.NewHandler(favoriteService)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
