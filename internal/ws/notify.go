package ws

import (
	"encoding/json"
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

type TaskEvent struct {
	Type        string `json:"type"`
	TaskID      string `json:"task_id"`
	Status      string `json:"status"`
	ResultCount int    `json:"result_count"`
	Error       string `json:"error,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// TaskNotifier returns the callback the scrape manager fires when a
// task reaches a terminal state. Results stay on the poll endpoint;
// the event only says the task is done.
func TaskNotifier(hub *Hub) func(t scrape.Task) {
	return func(t scrape.Task) {
		if hub == nil || !t.Status.Terminal() {
			return
		}

		evt := TaskEvent{
			Type:        "scrape_task_finished",
			TaskID:      t.ID,
			Status:      string(t.Status),
			ResultCount: len(t.Results),
			Error:       t.Error,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}
		b, err := json.Marshal(evt)
		if err != nil {
			return
		}
		hub.Broadcast(b)
	}
}
