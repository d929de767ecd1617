package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/coldreach/inboxstack/internal/enum"
	"github.com/coldreach/inboxstack/internal/utils"
)

// MailboxCredential is the stored per-user IMAP integration record. The
// retrieval path treats it as read-only input; disconnecting deactivates the
// record rather than deleting it.
type MailboxCredential struct {
	ID       string             `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	UserID   string             `gorm:"column:user_id;type:varchar(255);index;not null" json:"userId"`
	Provider enum.EmailProvider `gorm:"column:provider;type:varchar(50);index;not null" json:"provider"`
	// IMAP Configuration
	ImapHost     string `gorm:"column:imap_host;type:varchar(255);not null" json:"imapHost"`
	ImapPort     int    `gorm:"column:imap_port;not null;default:993" json:"imapPort"`
	EmailAddress string `gorm:"column:email_address;type:varchar(255);index;not null" json:"emailAddress"`
	ImapPassword string `gorm:"column:imap_password;type:varchar(255);not null" json:"-"`
	// Other Configuration
	Folders pq.StringArray `gorm:"column:folders;type:text[]" json:"folders"`
	Active  bool           `gorm:"column:active;not null;default:true" json:"active"`
	// Status Information
	ConnectionStatus    enum.ConnectionStatus `gorm:"column:connection_status;type:varchar(50)" json:"connectionStatus"`
	ErrorMessage        string                `gorm:"column:error_message;type:text" json:"errorMessage"`
	LastConnectionCheck *time.Time            `gorm:"column:last_connection_check;type:timestamp" json:"lastConnectionCheck"`
	// Standard timestamps
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName sets the table name
func (MailboxCredential) TableName() string {
	return "mailbox_credentials"
}

func (m *MailboxCredential) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateNanoIDWithPrefix("cred", 16)
	}
	if m.Provider == "" {
		m.Provider = enum.ProviderIMAP
	}
	if m.ImapPort == 0 {
		m.ImapPort = 993
	}
	return nil
}
