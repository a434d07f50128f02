package models

import "time"

// Summaries is the payload returned by the Warzone match history endpoint.
type Summaries struct {
	Summary SummaryStats   `json:"summary"`
	Matches []MatchSummary `json:"matches"`
}

type SummaryStats struct {
	All struct {
		Kills             float64 `json:"kills"`
		Deaths            float64 `json:"deaths"`
		KdRatio           float64 `json:"kdRatio"`
		DamageDone        float64 `json:"damageDone"`
		DamageTaken       float64 `json:"damageTaken"`
		Headshots         float64 `json:"headshots"`
		TimePlayed        float64 `json:"timePlayed"`
		MatchesPlayed     float64 `json:"matchesPlayed"`
		AvgLifeTime       float64 `json:"avgLifeTime"`
		ScorePerMinute    float64 `json:"scorePerMinute"`
		WallBangs         float64 `json:"wallBangs"`
		DistanceTraveled  float64 `json:"distanceTraveled"`
		ObjectiveTeamWipe float64 `json:"objectiveTeamWiped"`
	} `json:"all"`
}

type MatchSummary struct {
	MatchID         string      `json:"matchID"`
	UtcStartSeconds int64       `json:"utcStartSeconds"`
	UtcEndSeconds   int64       `json:"utcEndSeconds"`
	Map             string      `json:"map"`
	Mode            string      `json:"mode"`
	Duration        int64       `json:"duration"`
	PlayerCount     int         `json:"playerCount"`
	TeamCount       int         `json:"teamCount"`
	Player          MatchPlayer `json:"player"`
	PlayerStats     PlayerStats `json:"playerStats"`
}

func (m MatchSummary) StartedAt() time.Time {
	return time.Unix(m.UtcStartSeconds, 0).UTC()
}

func (m MatchSummary) EndedAt() time.Time {
	return time.Unix(m.UtcEndSeconds, 0).UTC()
}

type MatchPlayer struct {
	Team     string `json:"team"`
	Username string `json:"username"`
	Uno      string `json:"uno"`
	ClanTag  string `json:"clantag"`
}

type PlayerStats struct {
	Kills         float64 `json:"kills"`
	Deaths        float64 `json:"deaths"`
	KdRatio       float64 `json:"kdRatio"`
	DamageDone    float64 `json:"damageDone"`
	DamageTaken   float64 `json:"damageTaken"`
	Headshots     float64 `json:"headshots"`
	Score         float64 `json:"score"`
	TimePlayed    float64 `json:"timePlayed"`
	TeamPlacement float64 `json:"teamPlacement"`
	Assists       float64 `json:"assists"`
	GulagKills    float64 `json:"gulagKills"`
	GulagDeaths   float64 `json:"gulagDeaths"`
}
