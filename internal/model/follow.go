package model

// IsFollowing 当前用户是否关注了 userID
func (s *ExploreState) IsFollowing(userID string) bool {
	return containsID(s.Following, userID)
}

// ToggleFollowing 关注集合中不存在则加入，存在则移除；返回切换后是否处于关注状态
func (s *ExploreState) ToggleFollowing(userID string) bool {
	if containsID(s.Following, userID) {
		s.Following = removeID(s.Following, userID)
		return false
	}
	s.Following = append(s.Following, userID)
	return true
}
