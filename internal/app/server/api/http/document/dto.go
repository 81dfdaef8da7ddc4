package document

import "encoding/json"

type getInput struct {
	ID string `path:"id" maxLength:"64" doc:"Идентификатор документа"`
}

type getOutput struct {
	ETag string `header:"ETag"`
	Body json.RawMessage
}

type putInput struct {
	ID          string `path:"id" maxLength:"64" doc:"Идентификатор документа"`
	IfMatch     string `header:"If-Match" doc:"ETag версии, поверх которой разрешена запись"`
	IfNoneMatch string `header:"If-None-Match" doc:"* - только создать документ, если его еще нет"`
	RawBody     []byte `contentType:"application/json"`
}

type putOutput struct {
	ETag string `header:"ETag"`
	Body putResponse
}

type putResponse struct {
	Success bool  `json:"success"`
	Version int64 `json:"version"`
}
