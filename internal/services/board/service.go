package board

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/mcoot/cluegame-go/internal/model"
)

// tile is a walkable board square
type tile struct {
	pos  model.Position
	room model.RoomName // Empty for corridor tiles
}

// Service validates and enumerates token movement on a fixed board.
// It is immutable after construction and safe for concurrent reads.
type Service struct {
	width  int
	height int
	tiles  map[model.Position]tile
	rooms  []model.RoomName
	starts []model.StartConfig
}

// New builds a board from its configuration
func New(cfg model.BoardConfig) (*Service, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: board dimensions must be positive", model.ErrInvalidBoardConfig)
	}

	labelRooms := make(map[string]model.RoomName)
	rooms := make([]model.RoomName, 0, len(cfg.Rooms))
	for room, labels := range cfg.Rooms {
		if len(labels) == 0 {
			return nil, fmt.Errorf("%w: room %q has no tile labels", model.ErrInvalidBoardConfig, room)
		}
		for _, label := range labels {
			if other, dup := labelRooms[label]; dup {
				return nil, fmt.Errorf("%w: label %q belongs to %q and %q", model.ErrInvalidBoardConfig, label, other, room)
			}
			labelRooms[label] = room
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })

	s := &Service{
		width:  cfg.Width,
		height: cfg.Height,
		tiles:  make(map[model.Position]tile, len(cfg.Tiles)),
		rooms:  rooms,
	}

	for _, tc := range cfg.Tiles {
		pos := model.Position{X: tc.X, Y: tc.Y}
		if !s.inBounds(pos) {
			return nil, fmt.Errorf("%w: tile %s is out of bounds", model.ErrInvalidBoardConfig, pos.Key())
		}
		if _, dup := s.tiles[pos]; dup {
			return nil, fmt.Errorf("%w: tile %s is listed twice", model.ErrInvalidBoardConfig, pos.Key())
		}

		t := tile{pos: pos}
		if tc.Label != "" {
			room, ok := labelRooms[tc.Label]
			if !ok {
				return nil, fmt.Errorf("%w: tile label %q belongs to no room", model.ErrInvalidBoardConfig, tc.Label)
			}
			t.room = room
		}
		s.tiles[pos] = t
	}

	for _, start := range cfg.Starts {
		if !s.IsWalkable(start.Position) {
			return nil, fmt.Errorf("%w: start of %s at %s is not walkable", model.ErrInvalidBoardConfig, start.Character, start.Position.Key())
		}
	}
	s.starts = append([]model.StartConfig(nil), cfg.Starts...)

	return s, nil
}

// PossibleDestinations returns every tile reachable from `from` in exactly
// stepCount orthogonal steps without revisiting a tile or entering an
// occupied one. A room tile ends the move as soon as it is reached, so it is
// a destination whatever budget remains.
func (s *Service) PossibleDestinations(stepCount int, from model.Position, occupied []model.Position) map[string]model.Position {
	destinations := make(map[string]model.Position)
	if stepCount <= 0 {
		return destinations
	}

	blocked := mapset.New[model.Position]()
	for _, pos := range occupied {
		blocked.Put(pos)
	}

	visited := mapset.New[model.Position]()
	visited.Put(from)
	s.walk(from, stepCount, blocked, visited, destinations)
	return destinations
}

// walk extends the current path by one step in every direction
func (s *Service) walk(pos model.Position, remaining int, blocked, visited mapset.Set[model.Position], out map[string]model.Position) {
	for _, next := range pos.Neighbours() {
		t, ok := s.tiles[next]
		if !ok || blocked.Has(next) || visited.Has(next) {
			continue
		}

		if t.room != "" || remaining == 1 {
			out[next.Key()] = next
			continue
		}

		visited.Put(next)
		s.walk(next, remaining-1, blocked, visited, out)
		visited.Remove(next)
	}
}

// ValidateMove checks that target is one of the possible destinations
func (s *Service) ValidateMove(stepCount int, from model.Position, occupied []model.Position, target model.Position) model.MoveValidation {
	destinations := s.PossibleDestinations(stepCount, from, occupied)
	if _, ok := destinations[target.Key()]; !ok {
		return model.MoveValidation{CanMove: false}
	}

	return model.MoveValidation{
		CanMove: true,
		NewPos:  target,
		Room:    s.tiles[target].room,
	}
}

// IsWalkable returns true if the position is a configured tile
func (s *Service) IsWalkable(pos model.Position) bool {
	_, ok := s.tiles[pos]
	return ok
}

// RoomAt returns the room a tile belongs to, if any
func (s *Service) RoomAt(pos model.Position) (model.RoomName, bool) {
	t, ok := s.tiles[pos]
	if !ok || t.room == "" {
		return "", false
	}
	return t.room, true
}

// Rooms returns the configured room names in sorted order
func (s *Service) Rooms() []model.RoomName {
	return append([]model.RoomName(nil), s.rooms...)
}

// StartPositions returns the configured character starts in board order
func (s *Service) StartPositions() []model.StartConfig {
	return append([]model.StartConfig(nil), s.starts...)
}

// Size returns the board width and height
func (s *Service) Size() (int, int) {
	return s.width, s.height
}

func (s *Service) inBounds(pos model.Position) bool {
	return pos.X >= 0 && pos.X < s.width && pos.Y >= 0 && pos.Y < s.height
}

// Interface for dependency injection
type ServiceInterface interface {
	PossibleDestinations(stepCount int, from model.Position, occupied []model.Position) map[string]model.Position
	ValidateMove(stepCount int, from model.Position, occupied []model.Position, target model.Position) model.MoveValidation
	IsWalkable(pos model.Position) bool
	RoomAt(pos model.Position) (model.RoomName, bool)
	Rooms() []model.RoomName
	StartPositions() []model.StartConfig
}

var _ ServiceInterface = (*Service)(nil)
