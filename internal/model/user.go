package model

import "time"

// User 账号；用户名全局唯一
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(254)" json:"-"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	FirstName string    `gorm:"type:varchar(150)" json:"first_name,omitempty"`
	LastName  string    `gorm:"type:varchar(150)" json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// DisplayName 优先显示全名
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" || u.LastName != "" {
		if u.LastName == "" {
			return u.FirstName
		}
		if u.FirstName == "" {
			return u.LastName
		}
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}
