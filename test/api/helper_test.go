package api_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

// Helper function to generate unique names
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// List endpoints return a bare array in data.
func listItems(resp TestResponse) []map[string]interface{} {
	var items []map[string]interface{}
	if err := json.Unmarshal([]byte(resp.RawData), &items); err != nil {
		return nil
	}
	return items
}

// Helper to create a test room
func createTestRoom(t *testing.T) string {
	resp := makeRequest("POST", "/rooms", map[string]interface{}{
		"room_number":     uniqueName("R"),
		"price_per_night": 120.0,
	}, authToken)

	if !resp.IsSuccess() {
		t.Skipf("Failed to create test room: %s", resp.Message)
	}
	return resp.GetString("id")
}

// Helper to create a test shift
func createTestShift(t *testing.T) (string, string) {
	name := uniqueName("Shift")
	resp := makeRequest("POST", "/shifts", map[string]interface{}{
		"name":       name,
		"start_time": "08:00",
		"end_time":   "16:00",
	}, authToken)

	if !resp.IsSuccess() {
		t.Skipf("Failed to create test shift: %s", resp.Message)
	}
	return resp.GetString("id"), name
}

// Helper to create a test guest
func createTestGuest(t *testing.T) string {
	resp := makeRequest("POST", "/guests", map[string]interface{}{
		"full_name":    uniqueName("Guest"),
		"email":        fmt.Sprintf("guest_%d@example.com", time.Now().UnixNano()),
		"phone_number": "+1234567890",
	}, authToken)

	if !resp.IsSuccess() {
		t.Skipf("Failed to create test guest: %s", resp.Message)
	}
	return resp.GetString("id")
}

// Helper to create a user with a profile, returns the profile id
func createTestProfile(t *testing.T) string {
	userResp := makeRequest("POST", "/users", map[string]interface{}{
		"username":   uniqueName("staff"),
		"first_name": "Test",
		"last_name":  "Staff",
		"password":   "changeme123",
	}, authToken)
	if !userResp.IsSuccess() {
		t.Skipf("Failed to create test user: %s", userResp.Message)
	}

	profileResp := makeRequest("POST", "/profiles", map[string]interface{}{
		"full_name": uniqueName("Test Staff"),
		"user_id":   userResp.GetString("id"),
	}, authToken)
	if !profileResp.IsSuccess() {
		t.Skipf("Failed to create test profile: %s", profileResp.Message)
	}
	return profileResp.GetString("id")
}
