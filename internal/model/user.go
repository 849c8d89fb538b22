package model

import (
	"encoding/json"
	"strings"
)

// User Explore 中的用户卡片
type User struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	AvatarColor string `json:"avatarColor"`
	Followers   int    `json:"followers" validate:"gte=0"`
	Following   int    `json:"following" validate:"gte=0"`
}

// Account 登录会话中的账户（只读，由会话存储提供）
type Account struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UnmarshalJSON 后端返回的 id 可能是数字
func (a *Account) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Name  string          `json:"name"`
		Email string          `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Name, a.Email, a.ID = raw.Name, raw.Email, ""
	if len(raw.ID) == 0 || string(raw.ID) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.ID, &s); err == nil {
		a.ID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.ID, &n); err != nil {
		return err
	}
	a.ID = strings.TrimSpace(n.String())
	return nil
}
