package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	FirstName    string    `gorm:"size:150" json:"first_name"`
	LastName     string    `gorm:"size:150" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Recipes      []Recipe  `gorm:"foreignKey:AuthorID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Follow is a subscription of one user to another's recipes.
// A user cannot follow themselves; the pair is unique.
type Follow struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_following" json:"user_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_following;check:chk_no_self_follow,user_id <> author_id" json:"author_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Author    User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
