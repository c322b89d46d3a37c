package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account able to log in and author recipes.
type User struct {
	ID        string         `gorm:"type:varchar(36);primaryKey"`
	Username  string         `gorm:"uniqueIndex;not null"`
	Password  PasswordDigest `gorm:"column:password_hash;type:varchar(255);not null"`
	ImageURL  *string
	Bio       *string
	Recipes   []Recipe `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserView is the part of a User that may be sent to clients.
type UserView struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

// NewUser validates and builds a user. The password is set separately.
func NewUser(username string, imageURL, bio *string) (*User, error) {
	u := &User{
		Username: strings.TrimSpace(username),
		ImageURL: imageURL,
		Bio:      bio,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user's field rules.
func (u *User) Validate() error {
	vErr := &ValidationError{}
	if strings.TrimSpace(u.Username) == "" {
		vErr.add("Username must be present")
	}
	return vErr.errOrNil()
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if !u.Password.isSet() {
		return NewValidationError("Password must be present")
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	return u.Validate()
}

// PublicView renders the user without credentials.
func (u *User) PublicView() UserView {
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
	}
}
