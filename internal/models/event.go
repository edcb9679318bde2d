package models

// TaskEvent is the payload published to Kafka for every task mutation.
type TaskEvent struct {
	EventID   string `json:"event_id"`
	Operation string `json:"operation"` // "create", "update" or "delete"
	TaskID    int64  `json:"task_id"`
	OwnerID   int64  `json:"owner_id"`
	Timestamp int64  `json:"timestamp"`
}
