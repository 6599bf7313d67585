//go:build integration
// +build integration

package fetcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"parking-analytics/config"
	"parking-analytics/utils"
)

// TestFetchLots_Integration seeds a throwaway collection in the Firestore
// emulator and reads it back.
func TestFetchLots_Integration(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, &config.Config{ProjectID: "parking-test"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	collection := "lots_it_" + t.Name()
	docs := map[string]map[string]interface{}{
		"a-north": {
			"name": "North", "capacity": 100, "permit": "Staff", "count_now": 42,
			"historicalData": map[string]interface{}{
				"averageByHour": map[string]interface{}{"8": 50, "12": 80},
			},
		},
		"b-south": {"name": "South", "capacity": 20, "permit": "Student", "count_now": 3},
	}
	for id, data := range docs {
		if _, err := client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
	t.Cleanup(func() {
		for id := range docs {
			_, _ = client.Collection(collection).Doc(id).Delete(ctx)
		}
	})

	f := New(client, collection, utils.NewLoggerWithLevel(io.Discard, slog.LevelDebug))
	lots, err := f.FetchLots(ctx)
	if err != nil {
		t.Fatalf("FetchLots() error = %v", err)
	}
	if len(lots) != 2 {
		t.Fatalf("FetchLots() returned %d lots, want 2", len(lots))
	}
	if lots[0]["name"] != "North" {
		t.Errorf("first lot = %v, want North (document id order)", lots[0]["name"])
	}
	if lots[0]["capacity"] != int64(100) {
		t.Errorf("capacity = %#v, want int64(100)", lots[0]["capacity"])
	}
	hist, ok := lots[0]["historicalData"].(map[string]interface{})
	if !ok {
		t.Fatalf("historicalData = %T, want map", lots[0]["historicalData"])
	}
	if _, ok := hist["averageByHour"].(map[string]interface{}); !ok {
		t.Errorf("averageByHour = %T, want map", hist["averageByHour"])
	}

}
