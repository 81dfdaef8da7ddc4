package admin

import "retailsync/internal/domain/usage"

type usageInput struct {
	Body usageRequest
}

type usageRequest struct {
	Username string `json:"username,omitempty" doc:"Должно быть admin"`
	Action   string `json:"action,omitempty" doc:"getUsage" enum:"getUsage"`
	Password string `json:"password,omitempty" doc:"Пароль администратора, если он настроен"`
}

type usageOutput struct {
	Body *usage.Report
}
