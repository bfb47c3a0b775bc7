package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyTask     = errors.New("model: task text is required")
	ErrEmptyID       = errors.New("model: item id is required")
	ErrInvalidStatus = errors.New("model: invalid item status")
)

type Status string

const (
	StatusTodo Status = "todo"
	// StatusInProgress is accepted when decoding but never produced by an operation.
	StatusInProgress Status = "inProgress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Toggled returns the status a completion toggle moves to.
func (s Status) Toggled() Status {
	if s == StatusDone {
		return StatusTodo
	}
	return StatusDone
}

type Item struct {
	ID     string `json:"id"`
	Task   string `json:"task"`
	Status Status `json:"status"`
}

func (i Item) Done() bool { return i.Status == StatusDone }

func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(i.Task) == "" {
		return ErrEmptyTask
	}
	if !i.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, i.Status)
	}
	return nil
}

// UnmarshalJSON accepts numeric ids as written by older list blobs.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     json.RawMessage `json:"id"`
		Task   string          `json:"task"`
		Status Status          `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	i.ID = id
	i.Task = raw.Task
	i.Status = raw.Status
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", fmt.Errorf("model: decode item id: %w", err)
	}
	if v, err := n.Int64(); err == nil {
		return strconv.FormatInt(v, 10), nil
	}
	return n.String(), nil
}
