package staff

import (
	"time"
)

// Staff 馆员账号实体
// 密码只保存bcrypt哈希，原文不落库
type Staff struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
