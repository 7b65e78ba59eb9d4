package domain

// User represents a registered EcoScan account
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash, never exposed in JSON
	Name     string `json:"name" gorm:"not null;default:''"`
	Email    string `json:"email" gorm:"not null;default:''"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// NewUser is the candidate passed to CreateUser. Password must already be hashed.
type NewUser struct {
	Username string
	Password string
	Name     string
	Email    string
}
