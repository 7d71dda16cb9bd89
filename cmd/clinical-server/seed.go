package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/domain/encounter"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/domain/patient"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/domain/user"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/auth"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/db"
)

// runSeed wipes the tables and repopulates them with demo accounts, two
// patients, and two encounters. Everything runs in one transaction so a
// failed seed leaves the database empty rather than half filled.
func runSeed(ctx context.Context, pool *pgxpool.Pool, bcryptCost int) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE encounters, patients, users RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	ctx = db.WithTx(ctx, tx)
	userRepo := user.NewRepo(pool)
	patientRepo := patient.NewRepo(pool)
	encounterRepo := encounter.NewRepo(pool)

	// One hash shared across demo accounts; password is "password123".
	hash, err := auth.HashPassword("password123", bcryptCost)
	if err != nil {
		return err
	}

	users := []*user.User{
		{Name: "Dr. Alice Provider", Email: "alice@clinic.test", PasswordHash: hash, Role: auth.RoleProvider},
		{Name: "Dr. Bob Provider", Email: "bob@clinic.test", PasswordHash: hash, Role: auth.RoleProvider},
		{Name: "Sam Scribe", Email: "sam@clinic.test", PasswordHash: hash, Role: auth.RoleScribe},
		{Name: "Bill Biller", Email: "bill@clinic.test", PasswordHash: hash, Role: auth.RoleBiller},
		{Name: "Admin Annie", Email: "admin@clinic.test", PasswordHash: hash, Role: auth.RoleAdmin},
	}
	for _, u := range users {
		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	johnPhone, johnEmail := "555-111-2222", "john.doe@test.com"
	janePhone, janeEmail := "555-333-4444", "jane.smith@test.com"
	patients := []*patient.Patient{
		{MRN: "MRN-1001", Name: "John Doe", DOB: patient.NewDate(1985, time.January, 15), Phone: &johnPhone, Email: &johnEmail},
		{MRN: "MRN-1002", Name: "Jane Smith", DOB: patient.NewDate(1990, time.May, 22), Phone: &janePhone, Email: &janeEmail},
	}
	for _, p := range patients {
		if err := patientRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed patient %s: %w", p.MRN, err)
		}
	}

	encounters := []*encounter.Encounter{
		{
			PatientID:      patients[0].ID,
			ProviderID:     users[0].ID,
			ChiefComplaint: "Cough and fever",
			Vitals:         json.RawMessage(`{"bp":"120/80","hr":78,"temp":100.4}`),
			Status:         encounter.StatusDraft,
		},
		{
			PatientID:      patients[0].ID,
			ProviderID:     users[0].ID,
			ChiefComplaint: "Follow up visit",
			Vitals:         json.RawMessage(`{"bp":"118/76","hr":72,"temp":98.6}`),
			Status:         encounter.StatusFinal,
		},
	}
	for _, enc := range encounters {
		if err := encounterRepo.Create(ctx, enc); err != nil {
			return fmt.Errorf("seed encounter: %w", err)
		}
	}

	return tx.Commit(ctx)
}
