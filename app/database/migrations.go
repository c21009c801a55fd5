package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations creates the schema and applies guarded updates. Safe to run
// on every boot.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		phone VARCHAR(20),
		department_id UUID,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(50) NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, role_id)
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS departments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(150) NOT NULL,
		code VARCHAR(20) NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS classes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(150) NOT NULL,
		department_id UUID NOT NULL REFERENCES departments(id),
		year INT NOT NULL DEFAULT 0,
		section VARCHAR(10) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS teacher_classes (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		class_id UUID NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, class_id)
	)`,

	`CREATE TABLE IF NOT EXISTS students (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		register_no VARCHAR(50) NOT NULL UNIQUE,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		class_id UUID NOT NULL REFERENCES classes(id),
		gender VARCHAR(10),
		phone VARCHAR(20),
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	// Every date defaults to holiday; a row with is_working = true opts it in.
	`CREATE TABLE IF NOT EXISTS working_days (
		date DATE PRIMARY KEY,
		is_working BOOLEAN NOT NULL DEFAULT true,
		label VARCHAR(150) NOT NULL DEFAULT '',
		marked_by UUID,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// Absence-only: a row exists only for an absent student on that date.
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id),
		class_id UUID NOT NULL REFERENCES classes(id),
		date DATE NOT NULL,
		marked_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_attendance_class_date ON attendance_records (class_id, date)`,

	`CREATE TABLE IF NOT EXISTS attendance_submissions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		class_id UUID NOT NULL REFERENCES classes(id),
		date DATE NOT NULL,
		absent_count INT NOT NULL DEFAULT 0,
		student_count INT NOT NULL DEFAULT 0,
		submitted_by UUID,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (class_id, date)
	)`,

	// One ledger per student; the profile is keyed by the student itself.
	`CREATE TABLE IF NOT EXISTS fee_profiles (
		student_id UUID PRIMARY KEY REFERENCES students(id),
		total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_paid NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_balance NUMERIC(12,2) NOT NULL DEFAULT 0,
		recorded_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS fee_lines (
		student_id UUID NOT NULL REFERENCES fee_profiles(student_id) ON DELETE CASCADE,
		category VARCHAR(20) NOT NULL
			CHECK (category IN ('tuition','exam','transport','hostel','registration')),
		total NUMERIC(12,2) NOT NULL DEFAULT 0,
		paid NUMERIC(12,2) NOT NULL DEFAULT 0,
		balance NUMERIC(12,2) NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, category)
	)`,

	`CREATE TABLE IF NOT EXISTS fee_transactions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		fee_id UUID NOT NULL REFERENCES fee_profiles(student_id),
		fee_type VARCHAR(20) NOT NULL,
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		date DATE NOT NULL,
		recorded_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_fee_transactions_fee ON fee_transactions (fee_id, fee_type)`,
}

func seedRoles(db *sql.DB) error {
	for _, name := range []string{"admin", "dean", "teacher", "viewer"} {
		query := `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
		if _, err := db.Exec(query, name); err != nil {
			log.Printf("Failed to seed role %s: %v", name, err)
			return err
		}
	}
	return nil
}
