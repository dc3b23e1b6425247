package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"uslugi/internal/database"
	"uslugi/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "uslugi.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM outbox_tasks")
	db.Exec("DELETE FROM moderation_logs")
	db.Exec("DELETE FROM activity_logs")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM posts")
	db.Exec("DELETE FROM homepage_sections")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM cities")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		ID:           uuid.NewString(),
		Email:        "admin@uslugi.pl",
		PasswordHash: string(adminHash),
		FullName:     "Administrator",
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@uslugi.pl / admin123")

	users := []domain.User{}
	emails := []string{"jan@example.pl", "anna@example.pl", "piotr@example.pl"}
	names := []string{"Jan Kowalski", "Anna Nowak", "Piotr Wiśniewski"}
	cities := []string{"Warszawa", "Kraków", "Wrocław"}
	for i, email := range emails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user1234"), bcrypt.DefaultCost)
		u := domain.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			FullName:     names[i],
			Phone:        fmt.Sprintf("+48 600 100 2%02d", i),
			City:         cities[i],
			Role:         domain.RoleUser,
		}
		db.Create(&u)
		users = append(users, u)
	}

	// ================== CITIES ==================
	log.Println("Creating cities...")
	for _, name := range []string{"Warszawa", "Kraków", "Wrocław", "Poznań", "Gdańsk", "Łódź"} {
		db.Create(&domain.City{ID: uuid.NewString(), Name: name})
	}

	// ================== CATEGORIES ==================
	log.Println("Creating categories...")

	type catSeed struct {
		name, slug string
		children   []catSeed
	}
	tree := []catSeed{
		{name: "Dom i ogród", slug: "dom-i-ogrod", children: []catSeed{
			{name: "Sprzątanie", slug: "sprzatanie"},
			{name: "Remonty", slug: "remonty"},
			{name: "Ogrodnictwo", slug: "ogrodnictwo"},
		}},
		{name: "Transport", slug: "transport", children: []catSeed{
			{name: "Przeprowadzki", slug: "przeprowadzki"},
		}},
		{name: "Edukacja", slug: "edukacja", children: []catSeed{
			{name: "Korepetycje", slug: "korepetycje"},
		}},
	}

	var firstLeaf domain.Category
	for i, root := range tree {
		parent := domain.Category{
			ID:           uuid.NewString(),
			Name:         root.name,
			Slug:         root.slug,
			DisplayOrder: i,
		}
		db.Create(&parent)
		for j, child := range root.children {
			c := domain.Category{
				ID:           uuid.NewString(),
				ParentID:     &parent.ID,
				Name:         child.name,
				Slug:         child.slug,
				DisplayOrder: j,
			}
			db.Create(&c)
			if firstLeaf.ID == "" {
				firstLeaf = c
			}
		}
	}

	// ================== HOMEPAGE SECTIONS ==================
	log.Println("Creating homepage sections...")

	sections := []domain.HomepageSection{
		{
			Type:   domain.SectionHeroBanner,
			Title:  "Znajdź pomoc w swojej okolicy",
			Config: `{"title":"Znajdź pomoc w swojej okolicy","button_text":"Przeglądaj ogłoszenia","button_link":"/posts","height":"medium"}`,
		},
		{
			Type:   domain.SectionPopularCategories,
			Title:  "Popularne kategorie",
			Config: `{"limit":8,"layout_desktop":"grid","layout_mobile":"carousel"}`,
		},
		{
			Type:   domain.SectionNewestPosts,
			Title:  "Nowe ogłoszenia",
			Config: `{"limit":8,"sort_by":"created_at","sort_order":"desc"}`,
		},
		{
			Type:   domain.SectionSpacer,
			Config: `{"height_desktop":80,"height_mobile":40}`,
		},
	}
	for i := range sections {
		sections[i].ID = uuid.NewString()
		sections[i].IsActive = true
		sections[i].SortOrder = i
		sections[i].VisibleOnMobile = true
		sections[i].VisibleOnDesktop = true
		db.Create(&sections[i])
	}

	// ================== POSTS ==================
	log.Println("Creating posts...")

	expires := time.Now().AddDate(0, 0, 30)
	posts := []domain.Post{
		{
			UserID:      users[0].ID,
			Type:        domain.PostOffer,
			Title:       "Profesjonalne sprzątanie mieszkań",
			Description: "Sprzątanie mieszkań i biur, własne środki czystości, faktura VAT.",
			CategoryID:  firstLeaf.ID,
			City:        "Warszawa",
			PriceType:   domain.PriceHourly,
			Price:       60,
			Images:      `["https://images.unsplash.com/photo-1581578731548-c64695cc6952?w=800"]`,
		},
		{
			UserID:      users[1].ID,
			Type:        domain.PostOffer,
			Title:       "Korepetycje z matematyki",
			Description: "Przygotowanie do matury i egzaminu ósmoklasisty, online lub stacjonarnie.",
			CategoryID:  firstLeaf.ID,
			City:        "Kraków",
			PriceType:   domain.PriceFixed,
			Price:       80,
			Images:      `["https://images.unsplash.com/photo-1509228468518-180dd4864904?w=800"]`,
		},
		{
			UserID:      users[2].ID,
			Type:        domain.PostRequest,
			Title:       "Szukam pomocy przy przeprowadzce",
			Description: "Przeprowadzka 2-pokojowego mieszkania w obrębie Wrocławia, termin elastyczny.",
			CategoryID:  firstLeaf.ID,
			City:        "Wrocław",
			PriceType:   domain.PriceFree,
			Images:      `["https://images.unsplash.com/photo-1600518464441-9154a4dea21b?w=800"]`,
		},
	}
	for i := range posts {
		posts[i].ID = uuid.NewString()
		posts[i].Status = domain.PostActive
		posts[i].ModerationStatus = domain.ModerationApproved
		posts[i].ExpiresAt = &expires
		db.Create(&posts[i])
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	bookings := []domain.Booking{
		{
			PostID:          posts[0].ID,
			ProviderID:      users[0].ID,
			ClientID:        users[1].ID,
			ScheduledAt:     time.Now().AddDate(0, 0, 3).Truncate(time.Hour),
			DurationMinutes: 120,
			Status:          domain.BookingPending,
			ClientNotes:     "Mieszkanie 60m2, dwa pokoje.",
		},
		{
			PostID:          posts[1].ID,
			ProviderID:      users[1].ID,
			ClientID:        users[2].ID,
			ScheduledAt:     time.Now().AddDate(0, 0, 5).Truncate(time.Hour),
			DurationMinutes: 60,
			Status:          domain.BookingConfirmed,
		},
	}
	for i := range bookings {
		bookings[i].ID = uuid.NewString()
		db.Create(&bookings[i])
	}

	log.Println("Seed complete.")
}
