package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	rec := BattleRecord{
		StageID:       1,
		StageName:     "Border Skirmish",
		Frames:        1800,
		Outcome:       "player",
		PlayerSpawned: 12,
		EnemySpawned:  9,
		PlayerLost:    4,
		EnemyLost:     9,
		PeakCost:      100,
		DurationMS:    (42 * time.Second).Milliseconds(),
	}

	id, err := store.SaveBattle(rec)
	if err != nil {
		t.Fatalf("SaveBattle() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive row id, got %d", id)
	}

	records, err := store.RecentBattles(10)
	if err != nil {
		t.Fatalf("RecentBattles() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.StageID != 1 || got.StageName != "Border Skirmish" {
		t.Errorf("Stage identity mismatch: %d %q", got.StageID, got.StageName)
	}
	if got.Frames != 1800 || got.Outcome != "player" {
		t.Errorf("Outcome mismatch: %d frames, %q", got.Frames, got.Outcome)
	}
	if got.PlayerSpawned != 12 || got.EnemySpawned != 9 {
		t.Errorf("Spawn counts mismatch: %d/%d", got.PlayerSpawned, got.EnemySpawned)
	}
	if got.PlayerLost != 4 || got.EnemyLost != 9 {
		t.Errorf("Loss counts mismatch: %d/%d", got.PlayerLost, got.EnemyLost)
	}
	if got.PeakCost != 100 {
		t.Errorf("Expected peak cost 100, got %v", got.PeakCost)
	}
	if got.DurationMS != 42000 {
		t.Errorf("Expected duration 42000ms, got %d", got.DurationMS)
	}
}

func TestStoreRecentBattlesOrderAndLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		_, err := store.SaveBattle(BattleRecord{
			StageID:   1,
			StageName: "Stage",
			Frames:    (i + 1) * 100,
			Outcome:   "draw",
		})
		if err != nil {
			t.Fatalf("SaveBattle() failed: %v", err)
		}
	}

	records, err := store.RecentBattles(3)
	if err != nil {
		t.Fatalf("RecentBattles() failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records with limit, got %d", len(records))
	}

	// Newest first: 500, 400, 300
	if records[0].Frames != 500 || records[1].Frames != 400 || records[2].Frames != 300 {
		t.Errorf("Records not in newest-first order: %d, %d, %d",
			records[0].Frames, records[1].Frames, records[2].Frames)
	}
}

func TestStoreStageBattlesFiltered(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveBattle(BattleRecord{StageID: 1, StageName: "One", Outcome: "player"})
	store.SaveBattle(BattleRecord{StageID: 2, StageName: "Two", Outcome: "enemy"})
	store.SaveBattle(BattleRecord{StageID: 1, StageName: "One", Outcome: "enemy"})

	records, err := store.StageBattles(1, 10)
	if err != nil {
		t.Fatalf("StageBattles() failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records for stage 1, got %d", len(records))
	}
	for _, rec := range records {
		if rec.StageID != 1 {
			t.Errorf("Stage filter leaked record for stage %d", rec.StageID)
		}
	}
}

func TestStoreStageStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No battles yet
	stats, err := store.GetStageStats(7)
	if err != nil {
		t.Fatalf("GetStageStats() failed: %v", err)
	}
	if stats.Battles != 0 || stats.PlayerWins != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveBattle(BattleRecord{StageID: 7, StageName: "S", Frames: 100, Outcome: "player"})
	store.SaveBattle(BattleRecord{StageID: 7, StageName: "S", Frames: 300, Outcome: "enemy"})
	store.SaveBattle(BattleRecord{StageID: 8, StageName: "T", Frames: 900, Outcome: "player"})

	stats, err = store.GetStageStats(7)
	if err != nil {
		t.Fatalf("GetStageStats() failed: %v", err)
	}
	if stats.Battles != 2 {
		t.Errorf("Expected 2 battles, got %d", stats.Battles)
	}
	if stats.PlayerWins != 1 {
		t.Errorf("Expected 1 player win, got %d", stats.PlayerWins)
	}
	if stats.AvgFrames != 200 {
		t.Errorf("Expected average 200 frames, got %v", stats.AvgFrames)
	}
}

func TestStoreClearBattles(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveBattle(BattleRecord{StageID: 1, StageName: "One", Outcome: "player"})
	store.SaveBattle(BattleRecord{StageID: 2, StageName: "Two", Outcome: "player"})

	if err := store.ClearBattles(1); err != nil {
		t.Fatalf("ClearBattles() failed: %v", err)
	}

	one, _ := store.StageBattles(1, 10)
	if len(one) != 0 {
		t.Errorf("Expected 0 records for stage 1 after clear, got %d", len(one))
	}

	two, _ := store.StageBattles(2, 10)
	if len(two) != 1 {
		t.Error("Stage 2 records should not be affected by clearing stage 1")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
