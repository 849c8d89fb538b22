package service

import (
	"sort"

	"github.com/d60-Lab/calora-explore/internal/model"
)

// DefaultTrendingLimit 热门榜默认条数
const DefaultTrendingLimit = 3

// ReactionCount 表情聚合
type ReactionCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// Feed 按 createdAt 倒序
func Feed(st *model.ExploreState) []model.Post {
	posts := append([]model.Post(nil), st.Posts...)
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts
}

// FollowingFeed 只含已关注用户与自己的动态
func FollowingFeed(st *model.ExploreState, currentUserID string) []model.Post {
	out := make([]model.Post, 0, len(st.Posts))
	for _, p := range Feed(st) {
		if p.UserID == currentUserID || st.IsFollowing(p.UserID) {
			out = append(out, p)
		}
	}
	return out
}

// Trending 按互动热度倒序，同分保持输入顺序，取前 n 条
func Trending(st *model.ExploreState, n int) []model.Post {
	if n <= 0 {
		n = DefaultTrendingLimit
	}
	posts := append([]model.Post(nil), st.Posts...)
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Score() > posts[j].Score() })
	if len(posts) > n {
		posts = posts[:n]
	}
	return posts
}

// PostCounts userId -> 发帖数
func PostCounts(st *model.ExploreState) map[string]int {
	counts := make(map[string]int, len(st.Users))
	for _, p := range st.Posts {
		counts[p.UserID]++
	}
	return counts
}

// Suggestions 未关注的其他用户，按发帖数、粉丝数排序
func Suggestions(st *model.ExploreState, currentUserID string, n int) []model.User {
	counts := PostCounts(st)
	out := make([]model.User, 0, len(st.Users))
	for _, u := range st.Users {
		if u.ID == currentUserID || st.IsFollowing(u.ID) {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := counts[out[i].ID], counts[out[j].ID]
		if ci != cj {
			return ci > cj
		}
		return out[i].Followers > out[j].Followers
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Conversation a 与 b 之间的消息，按时间正序；与参数顺序无关
func Conversation(st *model.ExploreState, a, b string) []model.Message {
	msgs := append([]model.Message(nil), st.Messages[model.ConversationKey(a, b)]...)
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	return msgs
}

// Inbox userID 参与的每个会话一条摘要，最近活跃在前
func Inbox(st *model.ExploreState, userID string) []model.ConversationSummary {
	out := make([]model.ConversationSummary, 0)
	for key, msgs := range st.Messages {
		if len(msgs) == 0 {
			continue
		}
		first := msgs[0]
		var with string
		switch userID {
		case first.From:
			with = first.To
		case first.To:
			with = first.From
		default:
			continue
		}
		last := msgs[0]
		for _, m := range msgs[1:] {
			if !m.CreatedAt.Before(last.CreatedAt) {
				last = m
			}
		}
		out = append(out, model.ConversationSummary{Key: key, WithUserID: with, LastMessage: last, Count: len(msgs)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastMessage.CreatedAt.Equal(out[j].LastMessage.CreatedAt) {
			return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ReactionSummary 表情人数倒序，同数按表情排序
func ReactionSummary(p model.Post) []ReactionCount {
	out := make([]ReactionCount, 0, len(p.Reactions))
	for emoji, ids := range p.Reactions {
		if len(ids) > 0 {
			out = append(out, ReactionCount{Emoji: emoji, Count: len(ids)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Emoji < out[j].Emoji
	})
	return out
}
