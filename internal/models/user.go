package models

import "time"

// User back-office staff account
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                 // primary key
	Username     string     `gorm:"type:varchar(120);index;not null" json:"username"`     // display/login name
	Email        string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`  // unique email, login identifier
	PasswordHash string     `gorm:"not null" json:"-"`                                    // bcrypt hash; legacy rows may hold plain text until next login
	Role         string     `gorm:"type:varchar(32);index;not null" json:"role"`          // staff role
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                          // bumped on logout/password change to revoke tokens
	LastLoginAt  *time.Time `json:"last_login_at"`                                        // last login
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                              // created at
	UpdatedAt    time.Time  `json:"updated_at"`                                           // updated at
}

// TableName table name
func (User) TableName() string {
	return "users"
}
