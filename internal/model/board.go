package model

import "fmt"

// Position identifies a tile on the board
type Position struct {
	X int `json:"x"` // 0-indexed from left
	Y int `json:"y"` // 0-indexed from top
}

// Key returns the "x,y" form used to index destination maps
func (p Position) Key() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Neighbours returns the four orthogonally adjacent positions
func (p Position) Neighbours() [4]Position {
	return [4]Position{
		{X: p.X, Y: p.Y - 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y},
	}
}

// RoomName names a room on the board. It doubles as the room card title.
type RoomName string

// TileConfig is one walkable tile in the board configuration
type TileConfig struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"` // Empty for corridor tiles
}

// StartConfig places a character token at the beginning of a game
type StartConfig struct {
	Character Character `json:"character"`
	Position  Position  `json:"position"`
}

// BoardConfig is the externally supplied, immutable board description
type BoardConfig struct {
	Width  int                   `json:"width"`
	Height int                   `json:"height"`
	Tiles  []TileConfig          `json:"tiles"`
	Rooms  map[RoomName][]string `json:"rooms"` // Room name -> tile labels
	Starts []StartConfig         `json:"starts"`
}

// MoveValidation is the board's verdict on a requested move
type MoveValidation struct {
	CanMove bool
	NewPos  Position
	Room    RoomName // Set when the destination is a room tile
}

// DiceCombination is the result of rolling two dice
type DiceCombination [2]int

// Sum returns the number of steps the roll allows
func (d DiceCombination) Sum() int {
	return d[0] + d[1]
}

// IsValid reports whether both dice show a face of a six-sided die
func (d DiceCombination) IsValid() bool {
	return d[0] >= 1 && d[0] <= 6 && d[1] >= 1 && d[1] <= 6
}
