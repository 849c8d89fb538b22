package model

import "time"

// PostType 动态类型
type PostType string

const (
	PostTypeActivity PostType = "activity"
	PostTypeMeal     PostType = "meal"
)

// Post 一条运动或餐食动态
type Post struct {
	ID        string              `json:"id" validate:"required"`
	UserID    string              `json:"userId" validate:"required"`
	Type      PostType            `json:"type" validate:"oneof=activity meal"`
	Title     string              `json:"title"`
	Summary   string              `json:"summary"`
	Calories  float64             `json:"calories" validate:"gte=0"`
	Protein   float64             `json:"protein,omitempty" validate:"gte=0"`
	Carbs     float64             `json:"carbs,omitempty" validate:"gte=0"`
	Fats      float64             `json:"fats,omitempty" validate:"gte=0"`
	Duration  float64             `json:"duration,omitempty" validate:"gte=0"`
	CreatedAt time.Time           `json:"createdAt"`
	Likes     []string            `json:"likes"`
	Reactions map[string][]string `json:"reactions"`
	Comments  []Comment           `json:"comments" validate:"dive"`
}

// Comment 动态下的评论，只追加
type Comment struct {
	ID        string    `json:"id" validate:"required"`
	UserID    string    `json:"userId" validate:"required"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostDraft 发帖表单，数值字段保持原始字符串
type PostDraft struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fats     string `json:"fats"`
	Duration string `json:"duration"`
}

// Score 互动热度 = 点赞 + 各表情人数 + 评论数
func (p *Post) Score() int {
	n := len(p.Likes) + len(p.Comments)
	for _, ids := range p.Reactions {
		n += len(ids)
	}
	return n
}

// LikedBy 是否被 userID 点赞
func (p *Post) LikedBy(userID string) bool {
	return containsID(p.Likes, userID)
}

// ReactionOf 返回 userID 当前持有的表情，没有则为空串
func (p *Post) ReactionOf(userID string) string {
	for emoji, ids := range p.Reactions {
		if containsID(ids, userID) {
			return emoji
		}
	}
	return ""
}

// ToggleLike 切换 userID 的点赞；返回切换后是否点赞
func (p *Post) ToggleLike(userID string) bool {
	if containsID(p.Likes, userID) {
		p.Likes = removeID(p.Likes, userID)
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// ToggleReaction 同一表情再次点击即取消；否则先从其他表情桶移除再加入，
// 保证每个用户在一条动态上最多一个表情。空桶会被删除。
func (p *Post) ToggleReaction(userID, emoji string) bool {
	if p.Reactions == nil {
		p.Reactions = map[string][]string{}
	}
	if containsID(p.Reactions[emoji], userID) {
		p.dropReaction(emoji, userID)
		return false
	}
	for other := range p.Reactions {
		if other != emoji {
			p.dropReaction(other, userID)
		}
	}
	p.Reactions[emoji] = append(p.Reactions[emoji], userID)
	return true
}

func (p *Post) dropReaction(emoji, userID string) {
	ids := removeID(p.Reactions[emoji], userID)
	if len(ids) == 0 {
		delete(p.Reactions, emoji)
		return
	}
	p.Reactions[emoji] = ids
}

// Clone 深拷贝
func (p *Post) Clone() Post {
	cp := *p
	cp.Likes = copyIDs(p.Likes)
	if p.Comments != nil {
		cp.Comments = make([]Comment, len(p.Comments))
		copy(cp.Comments, p.Comments)
	}
	if p.Reactions != nil {
		cp.Reactions = make(map[string][]string, len(p.Reactions))
		for emoji, ids := range p.Reactions {
			cp.Reactions[emoji] = copyIDs(ids)
		}
	}
	return cp
}

func copyIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
