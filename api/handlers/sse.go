package handlers

import (
	"encoding/json"
	"io"

	"github.com/gin-contrib/sse"

	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// writeEvent encodes a progress event as one server-sent-event frame. Log
// events go out as plain data frames; terminal events carry an explicit
// event name so clients can bind error/complete listeners.
func writeEvent(w io.Writer, ev domain.ProgressEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	frame := sse.Event{Data: string(payload)}
	if ev.IsTerminal() {
		frame.Event = string(ev.Type)
	}
	return sse.Encode(w, frame)
}
