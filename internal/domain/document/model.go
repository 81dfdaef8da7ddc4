package document

import (
	"encoding/json"
	"time"
)

// Document - JSON-документ, размещенный на сервере
type Document struct {
	ID        string
	Data      json.RawMessage
	Version   int64
	UpdatedAt time.Time
}
