package entities

import "time"

// Follow é uma aresta direcionada "FollowerID segue FollowingID"
type Follow struct {
	ID          string
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}
