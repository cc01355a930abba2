package webhook

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Payload is the JSON body posted for every game event.
type Payload struct {
	Event     string         `json:"event"`
	Fields    map[string]any `json:"fields,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Sender posts game events to a configured URL. It satisfies the
// engine's Emitter interface; delivery is fire-and-forget and never
// blocks the game call that produced the event.
type Sender struct {
	url string
}

func NewSender(url string) *Sender {
	return &Sender{url: url}
}

func (s *Sender) Emit(event string, fields map[string]any) {
	if s == nil || s.url == "" {
		return
	}

	payload := Payload{
		Event:     event,
		Fields:    fields,
		Timestamp: time.Now(),
	}

	// Send asynchronously
	go func(targetURL string, p Payload) {
		jsonBytes, _ := json.Marshal(p)

		client := http.Client{
			Timeout: 5 * time.Second,
		}

		resp, err := client.Post(targetURL, "application/json", bytes.NewBuffer(jsonBytes))
		if err != nil {
			log.Printf("Failed to deliver %s event webhook: %v", p.Event, err)
			return
		}
		defer resp.Body.Close()
	}(s.url, payload)
}

// Test posts a probe event synchronously so the admin can verify the
// URL when configuring it.
func Test(url string) error {
	payload := Payload{
		Event:     "test",
		Timestamp: time.Now(),
	}
	jsonBytes, _ := json.Marshal(payload)
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonBytes))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
