package api_test

import (
	"fmt"
	"testing"
	"time"
)

func TestGuestRegistration(t *testing.T) {
	guestID := createTestGuest(t)

	getResp := makeRequest("GET", fmt.Sprintf("/guests/%s", guestID), nil, authToken)
	if !getResp.IsSuccess() {
		t.Fatalf("Failed to fetch guest: %s", getResp.Message)
	}
	if getResp.GetString("id") != guestID {
		t.Fatal("Fetched guest id does not match created guest")
	}
}

func TestBookingFlow(t *testing.T) {
	guestID := createTestGuest(t)
	roomID := createTestRoom(t)

	checkIn := time.Now().AddDate(0, 0, 1).UTC().Truncate(time.Hour)
	createResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"check_in":  checkIn.Format(time.RFC3339),
		"check_out": checkIn.AddDate(0, 0, 3).Format(time.RFC3339),
		"guest_id":  guestID,
		"room_id":   roomID,
	}, authToken)
	if !createResp.IsSuccess() {
		t.Skipf("Failed to create booking: %s", createResp.Message)
	}
	bookingID := createResp.GetString("id")

	// The room is now occupied, so a second overlapping booking for the
	// same room must fail.
	overlapResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"check_in":  checkIn.Format(time.RFC3339),
		"check_out": checkIn.AddDate(0, 0, 2).Format(time.RFC3339),
		"guest_id":  guestID,
		"room_id":   roomID,
	}, authToken)
	if overlapResp.IsSuccess() {
		t.Fatal("Booking an occupied room must be rejected")
	}

	extendResp := makeRequest("POST", "/bookings/extend", map[string]interface{}{
		"booking_id": bookingID,
		"num_days":   2,
	}, authToken)
	if !extendResp.IsSuccess() {
		t.Fatalf("Failed to extend booking: %s", extendResp.Message)
	}
}

func TestComplaintFlow(t *testing.T) {
	guestID := createTestGuest(t)

	createResp := makeRequest("POST", "/complaints", map[string]interface{}{
		"guest_id":    guestID,
		"title":       uniqueName("Noisy corridor"),
		"description": "Guest reports noise from the service corridor at night",
	}, authToken)
	if !createResp.IsSuccess() {
		t.Skipf("Failed to create complaint: %s", createResp.Message)
	}

	listResp := makeRequest("GET", "/complaints", nil, authToken)
	if !listResp.IsSuccess() {
		t.Fatalf("Failed to list complaints: %s", listResp.Message)
	}
	if len(listItems(listResp)) == 0 {
		t.Fatal("Complaint listing is empty after creating one")
	}
}
