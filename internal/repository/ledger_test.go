package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"moneytracker/internal/model"
)

func TestFile_LoadAbsentFile(t *testing.T) {
	repo := NewFile(filepath.Join(t.TempDir(), "expenses.json"))

	ledger, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, ledger)
	require.Empty(t, ledger)
}

func TestFile_SaveLoadRoundTrip(t *testing.T) {
	repo := NewFile(filepath.Join(t.TempDir(), "expenses.json"))

	ledger := model.Ledger{
		"100": model.UserLedger{
			"2024-05-01": []model.Entry{
				{Label: "coffee", Amount: 5, Category: model.Food},
				{Label: "lunch", Amount: 12.50, Category: model.Food},
			},
			"2024-05-02": []model.Entry{
				{Label: "bus", Amount: 2.40, Category: model.Transport},
			},
		},
		"200": model.UserLedger{
			"2024-05-01": []model.Entry{
				{Label: "cinema", Amount: 11, Category: model.Entertainment},
			},
		},
	}

	require.NoError(t, repo.Save(ledger))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, ledger, loaded)
}

func TestFile_SaveOverwrites(t *testing.T) {
	repo := NewFile(filepath.Join(t.TempDir(), "expenses.json"))

	require.NoError(t, repo.Save(model.Ledger{
		"100": model.UserLedger{
			"2024-05-01": []model.Entry{{Label: "coffee", Amount: 5, Category: model.Food}},
		},
	}))

	second := model.Ledger{
		"100": model.UserLedger{
			"2024-05-01": []model.Entry{{Label: "coffee", Amount: 5, Category: model.Food}},
			"2024-05-02": []model.Entry{{Label: "beer", Amount: 4, Category: model.Drinks}},
		},
	}
	require.NoError(t, repo.Save(second))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, second, loaded)
}

func TestFile_LoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFile(path).Load()
	require.Error(t, err)
}

func TestFile_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewFile(filepath.Join(dir, "expenses.json"))

	require.NoError(t, repo.Save(model.Ledger{}))
	require.NoError(t, repo.Save(model.Ledger{}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "expenses.json", files[0].Name())
}
