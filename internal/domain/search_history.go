package domain

// SearchHistory is one entry of a user's append-only search log
type SearchHistory struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    *uint  `json:"userId" gorm:"index"`
	Query     string `json:"query" gorm:"not null"`
	CreatedAt string `json:"createdAt" gorm:"index;not null"`
}

// TableName specifies the table name
func (SearchHistory) TableName() string {
	return "search_history"
}

// NewSearchHistory is the candidate passed to AddSearchHistory
type NewSearchHistory struct {
	UserID    *uint
	Query     string
	CreatedAt string
}
