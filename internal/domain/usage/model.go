package usage

import (
	"time"

	"retailsync/internal/domain/partition"
)

// DefaultCapacity - лимит размера общего документа у хостинга JSON-документов
const DefaultCapacity = 100 * 1024

// nearLimitPercent - порог, после которого документ считается почти заполненным
const nearLimitPercent = 80.0

// LegacyUsername - имя записи для документа старого формата
const LegacyUsername = "(legacy)"

// Report - потребление места в общем документе
type Report struct {
	TotalUsage      TotalUsage  `json:"totalUsage"`
	PerUserUsage    []UserUsage `json:"perUserUsage"`
	RemoteAvailable bool        `json:"remoteAvailable"`
}

// TotalUsage - общий размер документа относительно лимита
type TotalUsage struct {
	Size       int     `json:"size"`
	Limit      int     `json:"limit"`
	Percentage float64 `json:"percentage"`
	NearLimit  bool    `json:"nearLimit"`
	Users      int     `json:"users"`
	Items      int     `json:"items"`
}

// UserUsage - размер и наполнение раздела одного пользователя
type UserUsage struct {
	Username   string           `json:"username"`
	Size       int              `json:"size"`
	Counts     partition.Counts `json:"counts"`
	LastUpdate *time.Time       `json:"lastUpdate,omitempty"`
	Legacy     bool             `json:"legacy,omitempty"`
	Error      string           `json:"error,omitempty"`
}
