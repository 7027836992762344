package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
)

// Valid 角色是否合法（仅三种）
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser || r == RoleOwner
}

// HomePath 角色对应的落地页（登录成功/越权时给前端跳转用）
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleOwner:
		return "/owner/dashboard"
	default:
		return "/stores"
	}
}

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:64" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191" json:"email"`
	Address      string    `gorm:"size:400" json:"address"`
	PasswordHash string    `gorm:"size:191" json:"-"`
	Role         Role      `gorm:"size:16" json:"role"`
	StoreID      *string   `gorm:"size:36" json:"storeId,omitempty"` // 仅 owner 有
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error) // 查不到返回 (nil, nil)
	List() ([]User, error)
	Count() (int64, error)
	UpdatePassword(id, newHash string) error
}
