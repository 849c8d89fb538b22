package seed

import (
	"time"

	"github.com/d60-Lab/calora-explore/internal/model"
)

// loadedAt 所有种子时间戳的基准：包加载时刻，而不是固定的墙钟常量
var loadedAt = time.Now()

// DefaultFollowing 种子数据中当前用户默认关注的人
var DefaultFollowing = []string{"u1", "u3"}

// Generate 以包加载时刻为基准生成种子状态
func Generate() *model.ExploreState {
	return GenerateAt(loadedAt)
}

// GenerateAt 固定的示例用户与动态，时间戳为 base 往前的偏移
func GenerateAt(base time.Time) *model.ExploreState {
	ago := func(d time.Duration) time.Time { return base.Add(-d) }

	users := []model.User{
		{ID: "u1", Name: "Maya Chen", Handle: "@mayamoves", Title: "Marathon trainee", AvatarColor: "#f97316", Followers: 1284, Following: 312},
		{ID: "u2", Name: "Leo Martins", Handle: "@leolifts", Title: "Strength coach", AvatarColor: "#22c55e", Followers: 5420, Following: 198},
		{ID: "u3", Name: "Priya Nair", Handle: "@priyaplates", Title: "Registered dietitian", AvatarColor: "#6366f1", Followers: 8731, Following: 420},
		{ID: "u4", Name: "Sam Okafor", Handle: "@samcycles", Title: "Weekend cyclist", AvatarColor: "#0ea5e9", Followers: 642, Following: 275},
		{ID: "u5", Name: "Hana Sato", Handle: "@hanabalance", Title: "Yoga & mobility", AvatarColor: "#ec4899", Followers: 2310, Following: 501},
	}

	posts := []model.Post{
		{
			ID: "p1", UserID: "u1", Type: model.PostTypeActivity,
			Title: "Tempo run by the river", Summary: "8 km with the last 3 at goal pace. Legs felt fresh.",
			Calories: 610, Duration: 48, CreatedAt: ago(35 * time.Minute),
			Likes:     []string{"u2", "u3", "u5"},
			Reactions: map[string][]string{"🔥": {"u2", "u4"}, "💪": {"u3"}},
			Comments: []model.Comment{
				{ID: "c1", UserID: "u3", Text: "Great pacing! Refuel with carbs + protein within the hour.", CreatedAt: ago(20 * time.Minute)},
			},
		},
		{
			ID: "p2", UserID: "u3", Type: model.PostTypeMeal,
			Title: "Salmon quinoa bowl", Summary: "Meal prep for three days. Lemon tahini dressing.",
			Calories: 540, Protein: 38, Carbs: 46, Fats: 22, CreatedAt: ago(2 * time.Hour),
			Likes:     []string{"u1", "u4"},
			Reactions: map[string][]string{"😋": {"u1", "u5"}},
			Comments:  []model.Comment{},
		},
		{
			ID: "p3", UserID: "u2", Type: model.PostTypeActivity,
			Title: "Deadlift PR", Summary: "Finally hit 180 kg. Form held up on every rep.",
			Calories: 420, Duration: 70, CreatedAt: ago(5 * time.Hour),
			Likes:     []string{"u1", "u3", "u4", "u5"},
			Reactions: map[string][]string{"💪": {"u1", "u4", "u5"}},
			Comments: []model.Comment{
				{ID: "c2", UserID: "u4", Text: "Beast mode.", CreatedAt: ago(4 * time.Hour)},
				{ID: "c3", UserID: "u1", Text: "Congrats Leo!", CreatedAt: ago(3 * time.Hour)},
			},
		},
		{
			ID: "p4", UserID: "u5", Type: model.PostTypeActivity,
			Title: "Sunrise flow", Summary: "30 minutes of hip openers before work.",
			Calories: 150, Duration: 30, CreatedAt: ago(9 * time.Hour),
			Likes:     []string{"u3"},
			Reactions: map[string][]string{},
			Comments:  []model.Comment{},
		},
		{
			ID: "p5", UserID: "u4", Type: model.PostTypeMeal,
			Title: "Post-ride pancakes", Summary: "Oat and banana pancakes with greek yogurt.",
			Calories: 680, Protein: 31, Carbs: 92, Fats: 18, CreatedAt: ago(26 * time.Hour),
			Likes:     []string{},
			Reactions: map[string][]string{"😋": {"u2"}},
			Comments: []model.Comment{
				{ID: "c4", UserID: "u5", Text: "Recipe please!", CreatedAt: ago(25 * time.Hour)},
			},
		},
		{
			ID: "p6", UserID: "u3", Type: model.PostTypeMeal,
			Title: "High-protein breakfast", Summary: "Egg white omelette, spinach, sourdough.",
			Calories: 390, Protein: 34, Carbs: 30, Fats: 12, CreatedAt: ago(2 * 24 * time.Hour),
			Likes:     []string{"u1", "u2"},
			Reactions: map[string][]string{},
			Comments:  []model.Comment{},
		},
	}

	messages := map[string][]model.Message{
		model.ConversationKey("u1", "u3"): {
			{ID: "m1", From: "u1", To: "u3", Text: "Any tips for carb loading before a half?", CreatedAt: ago(3 * time.Hour)},
			{ID: "m2", From: "u3", To: "u1", Text: "Start two days out, mostly rice and pasta, keep fiber low.", CreatedAt: ago(150 * time.Minute)},
		},
	}

	return &model.ExploreState{
		Users:     users,
		Posts:     posts,
		Following: append([]string(nil), DefaultFollowing...),
		Messages:  messages,
	}
}
