package model

import "time"

// Blob 键值存储中的一条记录（对应浏览器 localStorage 的一个 key）
type Blob struct {
	Key       string `gorm:"primaryKey;type:varchar(191)"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Blob) TableName() string { return "explore_blobs" }
