package api_test

import (
	"fmt"
	"testing"
)

func TestCatalogCRUD(t *testing.T) {
	name := uniqueName("Floor")
	createResp := makeRequest("POST", "/catalogs/floors", map[string]interface{}{
		"name": name,
	}, authToken)
	if !createResp.IsSuccess() {
		t.Skipf("Failed to create catalog entry: %s", createResp.Message)
	}
	entryID := createResp.GetString("id")

	listResp := makeRequest("GET", "/catalogs/floors", nil, authToken)
	if !listResp.IsSuccess() {
		t.Fatalf("Failed to list floors: %s", listResp.Message)
	}
	found := false
	for _, entry := range listItems(listResp) {
		if entry["name"] == name {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Created floor %s not present in listing", name)
	}

	delResp := makeRequest("DELETE", fmt.Sprintf("/catalogs/floors/%s", entryID), nil, authToken)
	if !delResp.IsSuccess() {
		t.Fatalf("Failed to delete floor: %s", delResp.Message)
	}
}

func TestUnknownCatalogRejected(t *testing.T) {
	resp := makeRequest("GET", "/catalogs/users", nil, authToken)
	if resp.IsSuccess() {
		t.Fatal("Listing an unknown catalog must fail")
	}
}
