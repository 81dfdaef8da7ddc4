package health

import "retailsync/internal/domain/sync"

const (
	StatusOK       = "OK"
	StatusDegraded = "DEGRADED"
)

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status string       `json:"status" enum:"OK,DEGRADED" doc:"DEGRADED - общий документ недоступен, работа идет с локальным зеркалом"`
	Sync   *sync.Status `json:"sync,omitempty" doc:"Состояние локального зеркала и общего документа"`
}
