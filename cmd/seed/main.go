package main

import (
	"log"
	"os"
	"time"

	"gearshare/internal/database"
	"gearshare/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a local database with sample users, listings, a booking and a
// conversation. Dev convenience only.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "gearshare.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Equipment{},
		&domain.Booking{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Favorite{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM equipment")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	users := make([]domain.User, 0, 3)
	for _, u := range []struct {
		email, name, city, password string
	}{
		{"marta@gearshare.example", "Marta Kowalska", "Berlin", "password1"},
		{"jonas@gearshare.example", "Jonas Weber", "Berlin", "password2"},
		{"aiko@gearshare.example", "Aiko Tanaka", "Hamburg", "password3"},
	} {
		hash, _ := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		user := domain.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			City:         u.city,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal(err)
		}
		users = append(users, user)
	}

	log.Println("Creating equipment...")
	from := domain.DateOnly(time.Now())
	until := from.AddDate(0, 6, 0)

	listings := []domain.Equipment{
		{
			OwnerID:        users[0].ID,
			Title:          "Sony Alpha 7S III",
			Description:    "Full-frame mirrorless, two batteries and a 128GB card included.",
			Category:       domain.CategoryCameras,
			PricePerDay:    65,
			AvailableFrom:  from,
			AvailableUntil: until,
			Location:       "Berlin Kreuzberg",
		},
		{
			OwnerID:        users[0].ID,
			Title:          "Canon RF 24-70mm f/2.8",
			Description:    "Workhorse zoom, glass in mint condition.",
			Category:       domain.CategoryLenses,
			PricePerDay:    25,
			AvailableFrom:  from,
			AvailableUntil: until,
			Location:       "Berlin Kreuzberg",
		},
		{
			OwnerID:        users[1].ID,
			Title:          "Aputure 300d Mark II",
			Description:    "Daylight LED with bowens mount, includes reflector.",
			Category:       domain.CategoryLighting,
			PricePerDay:    30,
			AvailableFrom:  from,
			AvailableUntil: until,
			Location:       "Berlin Neukölln",
		},
		{
			OwnerID:        users[2].ID,
			Title:          "DJI Mavic 3 Pro",
			Description:    "Three ND filter sets, four batteries.",
			Category:       domain.CategoryDrones,
			PricePerDay:    80,
			AvailableFrom:  from,
			AvailableUntil: until,
			Location:       "Hamburg Altona",
		},
	}
	for i := range listings {
		if err := db.Create(&listings[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating a booking with its conversation...")
	start := from.AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 2)
	bk := domain.Booking{
		EquipmentID: listings[0].ID,
		RenterID:    users[1].ID,
		StartDate:   start,
		EndDate:     end,
		TotalPrice:  65 * 3,
		Status:      domain.BookingPending,
	}
	if err := db.Create(&bk).Error; err != nil {
		log.Fatal(err)
	}

	a, b := users[0].ID, users[1].ID
	if a > b {
		a, b = b, a
	}
	now := time.Now().UTC()
	conv := domain.Conversation{
		ParticipantA:  a,
		ParticipantB:  b,
		EquipmentID:   &listings[0].ID,
		LastMessageAt: now,
	}
	if err := db.Create(&conv).Error; err != nil {
		log.Fatal(err)
	}
	msg := domain.Message{
		ConversationID: conv.ID,
		SenderID:       users[1].ID,
		Content:        `Hi! I'd like to rent "Sony Alpha 7S III" next week.`,
		CreatedAt:      now,
	}
	if err := db.Create(&msg).Error; err != nil {
		log.Fatal(err)
	}

	db.Create(&domain.Favorite{
		UserID:      users[2].ID,
		EquipmentID: listings[0].ID,
	})

	log.Println("Seed complete.")
}
