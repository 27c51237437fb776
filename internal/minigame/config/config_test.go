package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDefaultConfig(t *testing.T) {
	cfg := createDefaultConfig()

	assert.Equal(t, 59, cfg.Game.PickableBalls)
	assert.Equal(t, 6, cfg.Game.SelectionCapacity)
	assert.Equal(t, time.Second, cfg.Game.AutoPickInterval)
	assert.Equal(t, 20, cfg.Game.FlickerCount)
	assert.Equal(t, 100*time.Millisecond, cfg.Game.FlickerInterval)
	assert.Equal(t, 750*time.Millisecond, cfg.Game.ButtonSlideDuration)
}

func TestCreateDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("PICKABLE_BALLS", "49")
	t.Setenv("SELECTION_CAPACITY", "5")
	t.Setenv("FLICKER_INTERVAL", "50ms")
	t.Setenv("RANDOM_SEED", "1234")
	t.Setenv("SERVER_MODE", "prod")

	cfg := createDefaultConfig()

	assert.Equal(t, 49, cfg.Game.PickableBalls)
	assert.Equal(t, 5, cfg.Game.SelectionCapacity)
	assert.Equal(t, 50*time.Millisecond, cfg.Game.FlickerInterval)
	assert.Equal(t, int64(1234), cfg.Game.RandomSeed)
	assert.False(t, cfg.IsDevelopment())

	settings := cfg.GameSettings()
	assert.Equal(t, 49, settings.PoolSize)
	assert.Equal(t, 5, settings.Capacity)
}

func TestLoadGameTableDefaults(t *testing.T) {
	table, err := LoadGameTable("")
	require.NoError(t, err)
	assert.Equal(t, gameflow.DefaultPrizeTiers(), table.Prizes)
	assert.Equal(t, gameflow.DefaultColorThresholds(), table.BallColors)

	table, err = LoadGameTable(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, gameflow.DefaultPrizeTiers(), table.Prizes)
}

func TestLoadGameTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	content := `
prizes:
  - matches: 2
    prize: "10"
  - matches: 4
    prize: "1000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadGameTable(path)
	require.NoError(t, err)
	assert.Equal(t, []gameflow.PrizeTier{{Matches: 2, Prize: "10"}, {Matches: 4, Prize: "1000"}}, table.Prizes)
	assert.Equal(t, gameflow.DefaultColorThresholds(), table.BallColors, "缺少的球色表使用預設值")
}

func TestLoadGameTableRejectsInvalidTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	content := `
prizes:
  - matches: 4
    prize: "100"
  - matches: 3
    prize: "50"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadGameTable(path)
	assert.ErrorIs(t, err, gameflow.ErrInvalidPrizeTable)

	require.NoError(t, os.WriteFile(path, []byte("prizes: [oops"), 0o644))
	_, err = LoadGameTable(path)
	assert.Error(t, err)
}

func TestAppConfigValidate(t *testing.T) {
	valid := func() *AppConfig {
		cfg := createDefaultConfig()
		cfg.LogLevel = "info"
		cfg.Server.Mode = "dev"
		cfg.Game.Prizes = gameflow.DefaultPrizeTiers()
		cfg.Game.BallColors = gameflow.DefaultColorThresholds()
		return cfg
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(cfg *AppConfig)
		field  string
	}{
		{"選號數量超過球數", func(cfg *AppConfig) { cfg.Game.SelectionCapacity = 60 }, "selectionCapacity"},
		{"球數為零", func(cfg *AppConfig) { cfg.Game.PickableBalls = 0 }, "pickableBalls"},
		{"無效的模式", func(cfg *AppConfig) { cfg.Server.Mode = "staging" }, "mode"},
		{"無效的日誌級別", func(cfg *AppConfig) { cfg.LogLevel = "trace" }, "logLevel"},
		{"端口超出範圍", func(cfg *AppConfig) { cfg.Server.Port = 70000 }, "port"},
		{"沒有獎金表", func(cfg *AppConfig) { cfg.Game.Prizes = nil }, "prizes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var ves utils.ValidationErrors
			require.True(t, errors.As(err, &ves))
			fields := make([]string, 0, len(ves))
			for _, ve := range ves {
				fields = append(fields, ve.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}
