// Package config provides the Terminal Heist settings record, its ordered
// key/value serialization, and YAML/JSON loading with embedded defaults.
package config

// GameConfig contains every designer-tunable value for a heist run.
// Consumers read fields directly; persistence goes through ToMap and FromMap.
type GameConfig struct {
	// Grid & level
	GridWidth  int `yaml:"grid_width" json:"grid_width"`
	GridHeight int `yaml:"grid_height" json:"grid_height"`
	FloorCount int `yaml:"floor_count" json:"floor_count"`

	// Guard AI
	GuardMaxChaseTurns int `yaml:"guard_max_chase_turns" json:"guard_max_chase_turns"`
	GuardLOSRange      int `yaml:"guard_los_range" json:"guard_los_range"`
	GuardsPerFloorBase int `yaml:"guards_per_floor_base" json:"guards_per_floor_base"`

	// Balance
	KeycardsRequiredToWin int `yaml:"keycards_required_to_win" json:"keycards_required_to_win"`
	ShardScoreBonus       int `yaml:"shard_score_bonus" json:"shard_score_bonus"`
	FloorCompletionBonus  int `yaml:"floor_completion_bonus" json:"floor_completion_bonus"`
	TurnPenalty           int `yaml:"turn_penalty" json:"turn_penalty"`

	// Presentation: color names resolved by core.ParseColor
	ColorPlayer     string `yaml:"color_player" json:"color_player"`
	ColorGuard      string `yaml:"color_guard" json:"color_guard"`
	ColorWall       string `yaml:"color_wall" json:"color_wall"`
	ColorFloor      string `yaml:"color_floor" json:"color_floor"`
	ColorDoorOpen   string `yaml:"color_door_open" json:"color_door_open"`
	ColorDoorClosed string `yaml:"color_door_closed" json:"color_door_closed"`
	ColorKeycard    string `yaml:"color_keycard" json:"color_keycard"`
	ColorShard      string `yaml:"color_shard" json:"color_shard"`
	ColorExit       string `yaml:"color_exit" json:"color_exit"`
}

// DefaultGameConfig returns the designer defaults.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		GridWidth:  20,
		GridHeight: 12,
		FloorCount: 3,

		GuardMaxChaseTurns: 5,
		GuardLOSRange:      8,
		GuardsPerFloorBase: 2,

		KeycardsRequiredToWin: 1,
		ShardScoreBonus:       500,
		FloorCompletionBonus:  100,
		TurnPenalty:           1,

		ColorPlayer:     "aqua",
		ColorGuard:      "red",
		ColorWall:       "gray",
		ColorFloor:      "white",
		ColorDoorOpen:   "green",
		ColorDoorClosed: "yellow",
		ColorKeycard:    "blue",
		ColorShard:      "gold",
		ColorExit:       "lime",
	}
}
