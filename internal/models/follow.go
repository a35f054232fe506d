package models

import "time"

// Follow represents a follower -> followee edge. At most one edge exists
// per ordered pair; follower and following counts are always derived by
// counting edges, never stored on the profile.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
