package model

// ExploreState 持久化单元：用户、动态、关注集合、私信
type ExploreState struct {
	Users     []User               `json:"users" validate:"dive"`
	Posts     []Post               `json:"posts" validate:"dive"`
	Following []string             `json:"following"`
	Messages  map[string][]Message `json:"messages" validate:"dive,dive"`
}

// User 按 ID 查找，返回切片内元素指针
func (s *ExploreState) User(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// Post 按 ID 查找，返回切片内元素指针
func (s *ExploreState) Post(id string) *Post {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return &s.Posts[i]
		}
	}
	return nil
}

// Clone 深拷贝，读接口只返回副本
func (s *ExploreState) Clone() *ExploreState {
	if s == nil {
		return nil
	}
	cp := &ExploreState{Following: copyIDs(s.Following)}
	if s.Users != nil {
		cp.Users = make([]User, len(s.Users))
		copy(cp.Users, s.Users)
	}
	if s.Posts != nil {
		cp.Posts = make([]Post, len(s.Posts))
		for i := range s.Posts {
			cp.Posts[i] = s.Posts[i].Clone()
		}
	}
	if s.Messages != nil {
		cp.Messages = make(map[string][]Message, len(s.Messages))
		for k, msgs := range s.Messages {
			cp.Messages[k] = make([]Message, len(msgs))
			copy(cp.Messages[k], msgs)
		}
	}
	return cp
}

// Normalize 补齐 nil 集合，保证序列化为 [] / {} 而不是 null
func (s *ExploreState) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Posts == nil {
		s.Posts = []Post{}
	}
	if s.Following == nil {
		s.Following = []string{}
	}
	if s.Messages == nil {
		s.Messages = map[string][]Message{}
	}
	for i := range s.Posts {
		p := &s.Posts[i]
		if p.Likes == nil {
			p.Likes = []string{}
		}
		if p.Reactions == nil {
			p.Reactions = map[string][]string{}
		}
		if p.Comments == nil {
			p.Comments = []Comment{}
		}
	}
}
