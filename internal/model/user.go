package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Entitlement grants a user visibility of one goods item in one store
type Entitlement struct {
	GoodID    string `json:"good_id"`
	StoreID   string `json:"store_id"`
	GoodName  string `json:"good_name"`
	StoreName string `json:"store_name"`
}

// User represents an operator of the reporting backend
type User struct {
	ID          uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string                           `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email       string                           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string                           `gorm:"type:varchar(255);not null" json:"-"`
	Role        string                           `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // admin, user
	IsActive    bool                             `gorm:"not null" json:"is_active"`
	GoodsStores datatypes.JSONSlice[Entitlement] `json:"goods_stores"`
	CreatedAt   time.Time                        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt                   `gorm:"index" json:"-"`
}

// BeforeCreate assigns the UUID in Go so the schema does not depend on a
// database-side generator.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user sees all data
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EntitledGoodsIDs returns the distinct good ids of the entitlement list, in order
func (u *User) EntitledGoodsIDs() []string {
	seen := make(map[string]struct{}, len(u.GoodsStores))
	ids := make([]string, 0, len(u.GoodsStores))
	for _, e := range u.GoodsStores {
		if e.GoodID == "" {
			continue
		}
		if _, ok := seen[e.GoodID]; ok {
			continue
		}
		seen[e.GoodID] = struct{}{}
		ids = append(ids, e.GoodID)
	}
	return ids
}
