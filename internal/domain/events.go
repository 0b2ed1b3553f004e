package domain

import "subgrip/internal/subtitle"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDocumentLoaded    EventType = "DocumentLoaded"
	EventDocumentSaved     EventType = "DocumentSaved"
	EventLineEdited        EventType = "LineEdited"
	EventLinesRemoved      EventType = "LinesRemoved"
	EventFileChangedOnDisk EventType = "FileChangedOnDisk"
	EventConfigChanged     EventType = "ConfigChanged"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DocumentLoadedEvent is emitted when a subtitle file has been read into a document
type DocumentLoadedEvent struct {
	Path  string
	Lines int
}

func (e DocumentLoadedEvent) Type() EventType { return EventDocumentLoaded }

// DocumentSavedEvent is emitted after a successful save
type DocumentSavedEvent struct {
	Path string
}

func (e DocumentSavedEvent) Type() EventType { return EventDocumentSaved }

// LineEditedEvent is emitted when a dialogue line's content or timing changed
type LineEditedEvent struct {
	Line subtitle.LineID
}

func (e LineEditedEvent) Type() EventType { return EventLineEdited }

// LinesRemovedEvent is emitted when lines are deleted from the document
type LinesRemovedEvent struct {
	Lines []subtitle.LineID
}

func (e LinesRemovedEvent) Type() EventType { return EventLinesRemoved }

// FileChangedOnDiskEvent is emitted when the open file is modified outside
// the editor
type FileChangedOnDiskEvent struct {
	Path string
}

func (e FileChangedOnDiskEvent) Type() EventType { return EventFileChangedOnDisk }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	RecentFiles []string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
