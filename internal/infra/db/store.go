package db

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var errDBUnavailable = errors.New("database unavailable")

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	// TranslateError maps driver unique-violation errors onto
	// gorm.ErrDuplicatedKey, which the repositories turn into ErrConflict.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(
		&InstitutionModel{},
		&CertificateModel{},
		&VerificationLogModel{},
		&SuspiciousActivityModel{},
	); err != nil {
		return nil, err
	}
	return gdb, nil
}
