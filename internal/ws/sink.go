package ws

import (
	"encoding/json"

	"go-procurement-fixtures/internal/model"
	"go-procurement-fixtures/internal/repository"
)

type broadcastSink struct {
	next repository.ArtifactSink
	hub  *Hub
}

// NewBroadcastSink announces every successful write on next to the hub's clients.
func NewBroadcastSink(next repository.ArtifactSink, hub *Hub) repository.ArtifactSink {
	return &broadcastSink{next: next, hub: hub}
}

func (s *broadcastSink) Write(path string, content []byte) error {
	if err := s.next.Write(path, content); err != nil {
		return err
	}
	msg, err := json.Marshal(model.ArtifactEvent{
		Type:  "artifact_written",
		Kind:  model.KindOf(path),
		Path:  path,
		Bytes: len(content),
	})
	if err != nil {
		return err
	}
	s.hub.Publish(msg)
	return nil
}
