package repository

import (
	"gorm.io/gorm"

	"github.com/coldreach/inboxstack/interfaces"
	"github.com/coldreach/inboxstack/internal/models"
)

type Repositories struct {
	CredentialRepository interfaces.CredentialRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		CredentialRepository: NewCredentialRepository(db),
	}
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.MailboxCredential{},
	)
}
