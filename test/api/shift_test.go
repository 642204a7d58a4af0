package api_test

import (
	"fmt"
	"testing"
	"time"
)

func TestShiftLifecycle(t *testing.T) {
	shiftID, shiftName := createTestShift(t)
	if shiftID == "" {
		t.Fatal("Shift creation returned no id")
	}

	listResp := makeRequest("GET", "/shifts", nil, authToken)
	if !listResp.IsSuccess() {
		t.Fatalf("Failed to list shifts: %s", listResp.Message)
	}

	found := false
	for _, shift := range listItems(listResp) {
		if shift["name"] == shiftName {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Created shift %s not present in listing", shiftName)
	}
}

func TestShiftAssignmentFlow(t *testing.T) {
	shiftID, _ := createTestShift(t)
	profileID := createTestProfile(t)

	date := time.Now().AddDate(0, 0, 1).UTC().Format(time.RFC3339)
	createResp := makeRequest("POST", "/shift-assignments", map[string]interface{}{
		"profile": profileID,
		"shift":   shiftID,
		"date":    date,
	}, authToken)
	if !createResp.IsSuccess() {
		t.Skipf("Failed to create assignment: %s", createResp.Message)
	}
	assignmentID := createResp.GetString("id")

	// A second assignment for the same profile, shift and date is a
	// duplicate.
	dupResp := makeRequest("POST", "/shift-assignments", map[string]interface{}{
		"profile": profileID,
		"shift":   shiftID,
		"date":    date,
	}, authToken)
	if dupResp.IsSuccess() {
		t.Fatal("Duplicate assignment must be rejected")
	}

	getResp := makeRequest("GET", fmt.Sprintf("/shift-assignments/%s", assignmentID), nil, authToken)
	if !getResp.IsSuccess() {
		t.Fatalf("Failed to fetch assignment: %s", getResp.Message)
	}
	if status, ok := getResp.Data["status"].(map[string]interface{}); ok {
		if name, _ := status["name"].(string); name != "" && name != "Pending" {
			t.Fatalf("New assignment should be Pending, got %s", name)
		}
	}
}
