package entity

import "time"

type Note struct {
	ID          int        `gorm:"primaryKey"`
	UserID      int        `gorm:"not null;index"` // References: accounts(id)
	Title       string     `gorm:"size:140"`
	Description string     `gorm:"type:text"`
	Reminder    *time.Time `gorm:"index"`
	Color       string     `gorm:"size:18;not null;default:#00F0FF"`
	ImageKey    string     // S3 object key, empty when no image is attached
	IsPinned    bool       `gorm:"not null;default:false"`
	IsArchived  bool       `gorm:"not null;default:false"`
	IsTrashed   bool       `gorm:"not null;default:false"`
	CreatedAt   int64      `gorm:"not null"`
	UpdatedAt   int64      `gorm:"not null;autoUpdateTime:false"`

	// Relations
	User          Account   `gorm:"foreignKey:UserID;references:ID"`
	Labels        []Label   `gorm:"many2many:note_labels"`
	Collaborators []Account `gorm:"many2many:note_collaborators"`
}

// SoftDelete moves the note to the trash. Trashed notes stay in storage
// and are excluded from every listing except the trash view.
func (n *Note) SoftDelete() {
	n.IsTrashed = true
}
