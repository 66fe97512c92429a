package entity

// Account is a registered user of the platform. Accounts are created
// inactive and become active once their email address is verified.
type Account struct {
	ID         int    `gorm:"primaryKey"`
	FirstName  string `gorm:"size:20;not null"`
	LastName   string `gorm:"size:20;not null"`
	UserName   string `gorm:"size:20;not null"`
	Email      string `gorm:"size:50;uniqueIndex;not null"`
	Password   string `gorm:"not null"` // bcrypt hash, never the raw password
	IsActive   bool   `gorm:"not null;default:false"`
	IsVerified bool   `gorm:"not null;default:false"`
	IsStaff    bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"not null"`
	UpdatedAt  int64  `gorm:"not null;autoUpdateTime:false"`
}
