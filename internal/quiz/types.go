package quiz

import "encoding/json"

type newQuestionRequest struct {
	Content string            `json:"content" binding:"required,notblank"`
	Options []json.RawMessage `json:"options" binding:"required"`
	Index   *int              `json:"index" binding:"required,min=0"`
}

type createGameRequest struct {
	Title     string               `json:"title" binding:"required,notblank,max=255"`
	Questions []newQuestionRequest `json:"questions" binding:"required,dive"`
}

type gameURI struct {
	GameID uint `uri:"gameId" binding:"required,min=1"`
}

type questionURI struct {
	GameID uint `uri:"gameId" binding:"required,min=1"`
	Index  int  `uri:"index" binding:"min=0"`
}

type gameSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type questionView struct {
	ID      uint              `json:"id"`
	Index   int               `json:"index"`
	Content string            `json:"content"`
	Options []json.RawMessage `json:"options"`
}

type gameView struct {
	Title     string         `json:"title"`
	Questions []questionView `json:"questions"`
}

type countResponse struct {
	Count int `json:"count"`
}

type countEvent struct {
	Type       string `json:"type"`
	GameID     uint   `json:"game_id"`
	QuestionID uint   `json:"question_id"`
	Index      int    `json:"index"`
	Count      int    `json:"count"`
}
