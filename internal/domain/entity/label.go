package entity

// Label is a user-owned tag attached to notes. Names are unique across
// all owners, not per owner.
type Label struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"size:130;uniqueIndex;not null"`
	UserID    int    `gorm:"not null;index"` // References: accounts(id)
	IsDeleted bool   `gorm:"not null;default:false"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}

func (l *Label) SoftDelete() {
	l.IsDeleted = true
}
