package partition

import (
	"encoding/json"
	"time"

	"retailsync/internal/domain/partition"
)

type loadInput struct {
	Body loadRequest
}

type loadRequest struct {
	Username string `json:"username,omitempty" doc:"Имя пользователя"`
}

type loadOutput struct {
	Body loadResponse
}

type loadResponse struct {
	Success   bool                    `json:"success"`
	Data      partition.UserPartition `json:"data"`
	Source    string                  `json:"source,omitempty" enum:"remote,local,empty"`
	Timestamp time.Time               `json:"timestamp"`
	Error     string                  `json:"error,omitempty"`
}

type saveInput struct {
	Body saveRequest
}

type saveRequest struct {
	Username string          `json:"username,omitempty" doc:"Имя пользователя"`
	Data     json.RawMessage `json:"data,omitempty" doc:"Раздел пользователя целиком"`
}

type saveOutput struct {
	Body saveResponse
}

type saveResponse struct {
	Success    bool      `json:"success"`
	Synced     bool      `json:"synced"`
	Message    string    `json:"message"`
	LastUpdate time.Time `json:"lastUpdate"`
}
