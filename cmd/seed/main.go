package main

import (
	"log"
	"time"

	"rentora/internal/database"
	"rentora/internal/domain"
	"rentora/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	db, err := database.Connect("rentora.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM sync_audit_events")
	db.Exec("DELETE FROM calendar_days")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM property_mappings")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM organizations")

	now := time.Now().UTC()

	log.Println("Seeding organization and users...")
	db.Exec(`INSERT INTO organizations (id, name, created_at, updated_at) VALUES (1, 'Coastal Stays', ?, ?)`, now, now)

	seedUser(db, 1, "admin@coastalstays.test", "admin12345", domain.RoleAdmin, "Admin")
	seedUser(db, 1, "manager@coastalstays.test", "manager12345", domain.RoleManager, "Manager")

	log.Println("Seeding properties and mappings...")
	properties := []struct {
		id       int64
		name     string
		city     string
		external string
	}{
		{1, "Seaview Villa", "Lagos", "boom-listing-101"},
		{2, "Harbor Loft", "Porto", "boom-listing-102"},
		{3, "Dune Cottage", "Faro", ""}, // intentionally unmapped
	}
	for _, p := range properties {
		db.Exec(`INSERT INTO properties (id, organization_id, name, city, created_at, updated_at) VALUES (?, 1, ?, ?, ?, ?)`,
			p.id, p.name, p.city, now, now)
		if p.external != "" {
			db.Exec(`INSERT INTO property_mappings (property_id, external_listing_id, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
				p.id, p.external, true, now, now)
		}
	}

	log.Println("Seeding reservations and calendar days...")
	checkIn := domain.DateOnly(now.AddDate(0, 0, 7))
	checkOut := checkIn.AddDate(0, 0, 4)
	db.Exec(`INSERT INTO reservations (property_id, status, check_in, check_out, confirmation_code, created_at, updated_at)
		VALUES (1, ?, ?, ?, 'CONF-1001', ?, ?)`,
		string(domain.ReservationConfirmed), checkIn, checkOut, now, now)

	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		db.Exec(`INSERT INTO calendar_days (property_id, date, status, source, updated_at) VALUES (1, ?, ?, ?, ?)`,
			d, string(domain.CalendarBooked), string(domain.SourceInternalReservation), now)
	}

	blockFrom := domain.DateOnly(now.AddDate(0, 0, 20))
	for i := 0; i < 3; i++ {
		db.Exec(`INSERT INTO calendar_days (property_id, date, status, source, reason, updated_at) VALUES (2, ?, ?, ?, 'owner stay', ?)`,
			blockFrom.AddDate(0, 0, i), string(domain.CalendarBlocked), string(domain.SourceManual), now)
	}

	log.Println("Seed completed")
}

func seedUser(db *gorm.DB, organizationID int64, email, password string, role domain.UserRole, name string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash failed:", err)
	}
	now := time.Now().UTC()
	db.Exec(`INSERT INTO users (organization_id, email, password_hash, role, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		organizationID, email, string(hash), string(role), name, now, now)
}
