package handlers

import (
	"fmt"
	"math"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/hintsweeper/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type CreateBoardDTO struct {
	Size  int `schema:"size,required"`
	Mines int `schema:"mines,required"`
	// milliseconds
	HintDuration *int64 `schema:"hint_duration"`
}

func (dto CreateBoardDTO) Hint() *time.Duration {
	if dto.HintDuration == nil {
		return nil
	}
	d := time.Duration(*dto.HintDuration) * time.Millisecond
	return &d
}

// maxHintMillis is the longest hint_duration that fits a time.Duration.
const maxHintMillis = math.MaxInt64 / int64(time.Millisecond)

func ParseCreateBoardDTO(src map[string][]string) (CreateBoardDTO, error) {
	var dto CreateBoardDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	if dto.HintDuration != nil && *dto.HintDuration > maxHintMillis {
		return dto, fmt.Errorf("hint_duration must not exceed %d", maxHintMillis)
	}
	return dto, nil
}

type PositionDTO struct {
	Row    int `schema:"row,required"`
	Column int `schema:"column,required"`
}

func ParsePositionDTO(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type CreatedBoardDTO struct {
	Board *session.BoardView `json:"board"`
	Token string             `json:"token"`
}
