package service

import "errors"

var (
	ErrFollowSelf   = errors.New("cannot follow self")
	ErrEmptyTitle   = errors.New("title is required")
	ErrEmptySummary = errors.New("summary is required")
	ErrEmptyComment = errors.New("comment cannot be empty")
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrEmptyEmoji   = errors.New("reaction emoji is required")
)

var validationErrors = []error{
	ErrFollowSelf, ErrEmptyTitle, ErrEmptySummary, ErrEmptyComment, ErrEmptyMessage, ErrEmptyEmoji,
}

// IsValidationError 用户输入错误，提示给用户而不是当作服务端故障
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
