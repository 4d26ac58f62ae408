package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"pethealth/internal/config"
	"pethealth/internal/database"
	"pethealth/internal/domain"
	"pethealth/internal/repository"
)

// Seeds a demo dataset: one admin, two vets, three owners with pets,
// a handful of appointments and a vaccination that is due soon so the
// reminder sweep has something to pick up.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reports")
	db.Exec("DELETE FROM nutrition_plans")
	db.Exec("DELETE FROM articles")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM medications")
	db.Exec("DELETE FROM vaccinations")
	db.Exec("DELETE FROM health_records")
	db.Exec("DELETE FROM pets")
	db.Exec("DELETE FROM vet_applications")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@pethealth.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@pethealth.local / admin123")

	vets := []domain.User{}
	for i, email := range []string{"vet1@pethealth.local", "vet2@pethealth.local"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("vet123"), bcrypt.DefaultCost)
		vet := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleVet,
			Name:         fmt.Sprintf("Vet %d", i+1),
		}
		db.Create(&vet)
		vets = append(vets, vet)
	}

	owners := []domain.User{}
	for i, email := range []string{"owner1@mail.com", "owner2@mail.com", "owner3@mail.com"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
		owner := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleOwner,
			Name:         fmt.Sprintf("Owner %d", i+1),
			Phone:        fmt.Sprintf("+1 555 010 00%02d", i+1),
		}
		db.Create(&owner)
		owners = append(owners, owner)
	}

	log.Println("Creating pets...")
	pets := []domain.Pet{}
	names := []string{"Rex", "Milo", "Luna"}
	species := []string{"dog", "cat", "cat"}
	for i, owner := range owners {
		p := domain.Pet{
			OwnerID: owner.ID,
			Name:    names[i],
			Species: species[i],
			Breed:   "mixed",
			BirthDate: func() *time.Time {
				t := time.Now().AddDate(-2, -i, 0)
				return &t
			}(),
		}
		db.Create(&p)
		pets = append(pets, p)
	}

	log.Println("Creating health data...")
	db.Create(&domain.HealthRecord{
		PetID:   pets[0].ID,
		VetID:   vets[0].ID,
		Title:   "Annual checkup",
		Details: "All clear",
	})

	// due in three days: the hourly reminder sweep should notify owner1
	due := time.Now().AddDate(0, 0, 3)
	db.Create(&domain.Vaccination{
		PetID:     pets[0].ID,
		Vaccine:   "Rabies",
		GivenAt:   time.Now().AddDate(-1, 0, 3),
		NextDueAt: &due,
	})

	medEnd := time.Now().AddDate(0, 0, 10)
	db.Create(&domain.Medication{
		PetID:   pets[1].ID,
		Name:    "Antibiotic",
		Dosage:  "5mg twice daily",
		StartAt: time.Now(),
		EndAt:   &medEnd,
	})

	log.Println("Creating appointments...")
	start := time.Now().AddDate(0, 0, 1).Truncate(time.Hour)
	db.Create(&domain.Appointment{
		PetID:     pets[0].ID,
		OwnerID:   owners[0].ID,
		VetID:     vets[0].ID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Reason:    "Vaccination booster",
		Status:    domain.AppointmentRequested,
	})
	db.Create(&domain.Appointment{
		PetID:     pets[1].ID,
		OwnerID:   owners[1].ID,
		VetID:     vets[1].ID,
		StartTime: start.Add(2 * time.Hour),
		EndTime:   start.Add(2*time.Hour + 30*time.Minute),
		Reason:    "Skin irritation",
		Status:    domain.AppointmentConfirmed,
		Urgent:    true,
	})

	log.Println("Creating articles...")
	now := time.Now()
	db.Create(&domain.Article{
		AuthorID:    vets[0].ID,
		Title:       "Feeding your cat after surgery",
		Body:        "Small portions, warm food, plenty of water.",
		Status:      domain.ArticlePublished,
		PublishedAt: &now,
	})
	db.Create(&domain.Article{
		AuthorID: vets[1].ID,
		Title:    "Tick season checklist",
		Body:     "Draft pending review.",
		Status:   domain.ArticlePending,
	})

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin:  admin@pethealth.local / admin123")
	log.Println("Vets:   vet1..vet2@pethealth.local / vet123")
	log.Println("Owners: owner1..owner3@mail.com / owner123")
}
