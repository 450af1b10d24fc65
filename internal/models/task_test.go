package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTaskValidation_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty name should fail",
			task:    Task{Name: "", StoryID: "s1"},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "whitespace name should fail",
			task:    Task{Name: "   ", StoryID: "s1"},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "missing story ID should fail",
			task:    Task{Name: "Suttree", StoryID: ""},
			wantErr: true,
			errMsg:  "story_id is required",
		},
		{
			name:    "unknown status should fail",
			task:    Task{Name: "Suttree", StoryID: "s1", Status: Status(7)},
			wantErr: true,
			errMsg:  "status must be 'Incomplete' or 'Complete'",
		},
		{
			name:    "valid task should pass",
			task:    Task{Name: "Suttree", StoryID: "s1"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				} else if err.Error() != tt.errMsg {
					t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestTask_DefaultStatusIsIncomplete(t *testing.T) {
	var task Task
	if task.Status != StatusIncomplete {
		t.Errorf("expected zero status to be Incomplete, got %v", task.Status)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{name: "Incomplete", input: "Incomplete", want: StatusIncomplete},
		{name: "Complete", input: "Complete", want: StatusComplete},
		{name: "lowercase is rejected", input: "complete", wantErr: true},
		{name: "empty is rejected", input: "", wantErr: true},
		{name: "unknown is rejected", input: "Done", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStatus) {
					t.Errorf("expected ErrUnknownStatus, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got.String() != tt.input {
				t.Errorf("expected String() %q, got %q", tt.input, got.String())
			}
		})
	}
}

func TestStatus_JSON(t *testing.T) {
	b, err := json.Marshal(Task{ID: "t1", StoryID: "s1", Name: "Suttree", Status: StatusComplete})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Status != "Complete" {
		t.Errorf("expected status Complete on the wire, got %q", decoded.Status)
	}

	var status Status
	if err := json.Unmarshal([]byte(`"Incomplete"`), &status); err != nil {
		t.Fatalf("unmarshal status failed: %v", err)
	}
	if status != StatusIncomplete {
		t.Errorf("expected Incomplete, got %v", status)
	}

	if err := json.Unmarshal([]byte(`"Finished"`), &status); err == nil {
		t.Error("expected error for unknown status")
	}
}
