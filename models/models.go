package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `json:"name"`
	Email     string         `gorm:"unique" json:"email"`
	Password  string         `json:"-"` // hide from JSON response
	Items     []Item         `gorm:"foreignKey:UserID" json:"items,omitempty"`
	Locations []Location     `gorm:"foreignKey:UserID" json:"locations,omitempty"`
	Reminders []Reminder     `gorm:"foreignKey:UserID" json:"reminders,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Location is a node in the owner's storage hierarchy. ParentID is a
// back-reference: nil means root, otherwise it must point at another
// location of the same owner.
type Location struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageUrl    string     `json:"image_url"`
	ParentID    *uint      `gorm:"index" json:"parent_id"`
	UserID      uint       `gorm:"index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
	Items       []Item     `gorm:"foreignKey:LocationID" json:"items,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LocationNode is a Location annotated with its recursively resolved
// children, as returned by the tree endpoint.
type LocationNode struct {
	Location
	Children []LocationNode `json:"children"`
}

type Item struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"index" json:"name"`
	Description  string         `json:"description"`
	Categories   pq.StringArray `gorm:"type:text[]" json:"categories"`
	Quantity     int            `gorm:"default:1" json:"quantity"`
	Price        *float64       `json:"price"`
	PurchaseDate *time.Time     `json:"purchase_date"`
	ExpiryDate   *time.Time     `json:"expiry_date"`
	ImageUrl     string         `json:"image_url"`
	UserID       uint           `gorm:"index" json:"user_id"`
	User         User           `gorm:"foreignKey:UserID" json:"-"`
	LocationID   *uint          `gorm:"index" json:"location_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// RepeatType enumerates the supported reminder repeat schedules.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

func (r RepeatType) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

type Reminder struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `gorm:"index" json:"due_date"`
	RepeatType  RepeatType `gorm:"default:none" json:"repeat_type"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	ItemID      *uint      `gorm:"index" json:"item_id"`
	UserID      uint       `gorm:"index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ItemFilter describes an item search. All predicates are ANDed together;
// Categories matches items carrying at least one of the given labels.
type ItemFilter struct {
	UserID      uint
	Query       string
	LocationIDs []uint
	Categories  []string
	Offset      int
	Limit       int
}

// LocationItemCount is a stats row: a location and how many items it holds.
type LocationItemCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
