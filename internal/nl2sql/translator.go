package nl2sql

import "context"

type Request struct {
	Question   string `json:"question"`
	SchemaText string `json:"schema_text"`
}

type Result struct {
	SQL      string `json:"sql"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type Translator interface {
	Translate(ctx context.Context, req Request) (Result, error)
}
