package models

type ContentType string

const (
	VideoContent    ContentType = "video"
	DocumentContent ContentType = "document"
	UnknownContent  ContentType = ""
)
