package models

// Role determines what a user is allowed to do. Admins resolve action
// requests and may trade on behalf of any user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents the user model in the database
type User struct {
	Base
	Email       string       `gorm:"uniqueIndex;not null" json:"email"`
	Password    string       `gorm:"not null" json:"-"`
	Role        Role         `gorm:"not null;default:'USER'" json:"role"`
	Positions   []Position   `gorm:"foreignKey:UserID" json:"positions,omitempty"`
	FundAccount *FundAccount `gorm:"foreignKey:UserID" json:"fund_account,omitempty"`
}

// Username returns the local part of the user's email address.
func (u *User) Username() string {
	for i, r := range u.Email {
		if r == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
