package partition

import (
	"encoding/json"
	"time"
)

// Названия коллекций раздела пользователя в том виде, в каком они лежат в документе
const (
	CollectionItems               = "items"
	CollectionGroups              = "groups"
	CollectionServiceGroups       = "serviceGroups"
	CollectionCosts               = "costs"
	CollectionGoals               = "goals"
	CollectionCompletedSales      = "completedSales"
	CollectionPendingOrders       = "pendingOrders"
	CollectionServiceAppointments = "serviceAppointments"
)

// legacyCollections - ключи верхнего уровня, по которым распознается документ до разделения на пользователей
var legacyCollections = []string{
	CollectionItems,
	CollectionGroups,
	CollectionCosts,
	CollectionGoals,
}

// UserPartition - данные одного пользователя внутри общего документа
type UserPartition struct {
	Items               []json.RawMessage `json:"items"`
	Groups              []json.RawMessage `json:"groups"`
	ServiceGroups       []json.RawMessage `json:"serviceGroups"`
	Costs               []json.RawMessage `json:"costs"`
	Goals               []json.RawMessage `json:"goals"`
	CompletedSales      []json.RawMessage `json:"completedSales"`
	PendingOrders       []json.RawMessage `json:"pendingOrders"`
	ServiceAppointments []json.RawMessage `json:"serviceAppointments"`
	LastUpdate          time.Time         `json:"lastUpdate,omitzero"`
}

// Empty возвращает раздел, в котором все коллекции пустые
func Empty() UserPartition {
	p := UserPartition{}
	p.Normalize()
	return p
}

// Normalize заменяет отсутствующие коллекции пустыми срезами
func (p *UserPartition) Normalize() {
	for _, c := range p.collections() {
		if *c == nil {
			*c = []json.RawMessage{}
		}
	}
}

// Counts возвращает количество элементов в каждой коллекции
func (p UserPartition) Counts() Counts {
	return Counts{
		Items:               len(p.Items),
		Groups:              len(p.Groups),
		ServiceGroups:       len(p.ServiceGroups),
		Costs:               len(p.Costs),
		Goals:               len(p.Goals),
		CompletedSales:      len(p.CompletedSales),
		PendingOrders:       len(p.PendingOrders),
		ServiceAppointments: len(p.ServiceAppointments),
	}
}

func (p *UserPartition) collections() []*[]json.RawMessage {
	return []*[]json.RawMessage{
		&p.Items,
		&p.Groups,
		&p.ServiceGroups,
		&p.Costs,
		&p.Goals,
		&p.CompletedSales,
		&p.PendingOrders,
		&p.ServiceAppointments,
	}
}

// Counts - размеры коллекций раздела
type Counts struct {
	Items               int `json:"items"`
	Groups              int `json:"groups"`
	ServiceGroups       int `json:"serviceGroups"`
	Costs               int `json:"costs"`
	Goals               int `json:"goals"`
	CompletedSales      int `json:"completedSales"`
	PendingOrders       int `json:"pendingOrders"`
	ServiceAppointments int `json:"serviceAppointments"`
}

// DecodePartition разбирает раздел и нормализует его коллекции
func DecodePartition(data []byte) (UserPartition, error) {
	var p UserPartition
	if err := json.Unmarshal(data, &p); err != nil {
		return UserPartition{}, &MalformedError{Err: err}
	}
	p.Normalize()
	return p, nil
}
