package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// RunMigrations creates the schema if it does not exist and applies the
// incremental changes older installs need. Safe to run on every boot.
func RunMigrations(db *sql.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL,
			description TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			code VARCHAR(50) UNIQUE NOT NULL,
			description TEXT,
			monthly_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
			duration_weeks INT,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			admission_no VARCHAR(50) UNIQUE NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			gender VARCHAR(10) NOT NULL DEFAULT 'other',
			date_of_birth DATE,
			phone VARCHAR(50),
			email VARCHAR(255),
			guardian_name VARCHAR(255),
			guardian_phone VARCHAR(50),
			address TEXT,
			course_id UUID REFERENCES courses(id),
			enrolled_at DATE NOT NULL DEFAULT CURRENT_DATE,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			email VARCHAR(255),
			source VARCHAR(100),
			course_id UUID REFERENCES courses(id),
			status VARCHAR(20) NOT NULL DEFAULT 'new',
			notes TEXT,
			follow_up_date DATE,
			student_id UUID REFERENCES students(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS staff (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			email VARCHAR(255),
			role VARCHAR(50) NOT NULL DEFAULT 'tutor',
			monthly_salary NUMERIC(12,2) NOT NULL DEFAULT 0,
			joined_at DATE NOT NULL DEFAULT CURRENT_DATE,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS class_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			tutor_id UUID NOT NULL REFERENCES staff(id),
			day_of_week VARCHAR(10) NOT NULL,
			start_time VARCHAR(5) NOT NULL,
			end_time VARCHAR(5) NOT NULL,
			room VARCHAR(50),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			class_id UUID NOT NULL REFERENCES class_sessions(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL,
			notes TEXT,
			marked_by UUID REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (student_id, class_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS fee_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			code VARCHAR(50) UNIQUE NOT NULL,
			description TEXT,
			default_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			fee_type_id UUID REFERENCES fee_types(id),
			title VARCHAR(255) NOT NULL,
			total_amount NUMERIC(12,2) NOT NULL CHECK (total_amount > 0),
			paid_amount NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (paid_amount >= 0 AND paid_amount <= total_amount),
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			due_date DATE NOT NULL,
			paid_date DATE,
			payment_method VARCHAR(50),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS receipts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			receipt_number VARCHAR(50) UNIQUE NOT NULL,
			student_id UUID NOT NULL REFERENCES students(id),
			fee_id UUID NOT NULL REFERENCES fees(id),
			amount_paid NUMERIC(12,2) NOT NULL CHECK (amount_paid > 0),
			payment_date DATE NOT NULL,
			payment_method VARCHAR(50) NOT NULL,
			description TEXT,
			issued_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			type VARCHAR(10) NOT NULL DEFAULT 'expense',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			type VARCHAR(10) NOT NULL,
			category_id UUID NOT NULL REFERENCES categories(id),
			title VARCHAR(255) NOT NULL,
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			date DATE NOT NULL,
			notes TEXT,
			receipt_id UUID REFERENCES receipts(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS salary_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			staff_id UUID NOT NULL REFERENCES staff(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			reference VARCHAR(100),
			notes TEXT,
			paid_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	}

	for _, q := range tables {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_fees_student_id ON fees(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_status ON fees(status)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_due_date ON fees(due_date)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_student_id ON receipts(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_fee_id ON receipts(fee_id)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(type)`,
		`CREATE INDEX IF NOT EXISTS idx_salary_payments_staff_id ON salary_payments(staff_id)`,
	}

	for _, q := range indexes {
		if _, err := db.Exec(q); err != nil {
			log.Warn("index migration failed", zap.Error(err))
		}
	}

	seeds := []string{
		`INSERT INTO roles (name, description) VALUES
			('admin', 'Full access'),
			('accounts', 'Accounting and fee collection'),
			('front_desk', 'Leads, students, attendance, payments'),
			('tutor', 'Class schedule and attendance')
			ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO categories (name, type) VALUES
			('Tuition', 'income'),
			('Salaries', 'expense'),
			('Rent', 'expense'),
			('Utilities', 'expense')
			ON CONFLICT (name) DO NOTHING`,
	}

	for _, q := range seeds {
		if _, err := db.Exec(q); err != nil {
			log.Warn("seed failed", zap.Error(err))
		}
	}

	log.Info("database migrations completed")
	return nil
}
