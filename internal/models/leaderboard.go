package models

type LeaderboardItem struct {
	StarID   string  `json:"star_id"`
	StarName string  `json:"star_name"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank,omitempty"`
	Avatar   *string `json:"avatar"`
}

type LeaderboardResponse struct {
	Leaderboard []*LeaderboardItem `json:"leaderboard"`
	Me          *LeaderboardItem   `json:"me"`
}
