package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/pkg/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ===== 配置結構定義 =====

// AppConfig 應用程式配置結構
type AppConfig struct {
	Server   ServerConfig `json:"server"`
	Game     GameConfig   `json:"game"`
	LogLevel string       `json:"logLevel" validate:"oneof=debug info warn error"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	ServiceName string `json:"serviceName" validate:"required"`
	Host        string `json:"host"`
	Port        int    `json:"port" validate:"gt=0,lte=65535"`
	Mode        string `json:"mode" validate:"oneof=dev prod"`
}

// GameConfig 遊戲配置
type GameConfig struct {
	PickableBalls       int           `json:"pickableBalls" validate:"gt=0"`
	SelectionCapacity   int           `json:"selectionCapacity" validate:"gt=0,ltefield=PickableBalls"`
	AutoPickInterval    time.Duration `json:"autoPickInterval" validate:"gte=0"`
	FlickerCount        int           `json:"flickerCount" validate:"gte=0"`
	FlickerInterval     time.Duration `json:"flickerInterval" validate:"gte=0"`
	PanelFadeDuration   time.Duration `json:"panelFadeDuration" validate:"gte=0"`
	ButtonSlideDuration time.Duration `json:"buttonSlideDuration" validate:"gte=0"`
	RandomSeed          int64         `json:"randomSeed"`
	TableFile           string        `json:"tableFile"`

	Prizes     []gameflow.PrizeTier      `json:"prizes" validate:"required,min=1"`
	BallColors []gameflow.ColorThreshold `json:"ballColors"`
}

// GameTable 獎金表與球色表檔案格式
type GameTable struct {
	Prizes     []gameflow.PrizeTier      `yaml:"prizes"`
	BallColors []gameflow.ColorThreshold `yaml:"ballColors"`
}

// ===== 環境變量工具函數 =====

// getEnv 從環境變量獲取字符串值，如果不存在則返回默認值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 從環境變量獲取整數值，如果不存在或無法解析則返回默認值
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 從環境變量獲取 int64 值
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration 從環境變量獲取時間間隔，格式如 "750ms"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ===== 配置加載主要函數 =====

// LoadConfig 從 .env、環境變量與遊戲表檔案加載配置
func LoadConfig() (*AppConfig, error) {
	// 嘗試加載 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("警告: 找不到 .env 文件: %v", err)
	}

	config := createDefaultConfig()

	table, err := LoadGameTable(config.Game.TableFile)
	if err != nil {
		return nil, err
	}
	config.Game.Prizes = table.Prizes
	config.Game.BallColors = table.BallColors

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// createDefaultConfig 創建默認配置，環境變量優先
func createDefaultConfig() *AppConfig {
	defaults := gameflow.DefaultSettings()

	return &AppConfig{
		LogLevel: getEnv("LOG_LEVEL", "debug"),
		Server: ServerConfig{
			ServiceName: getEnv("SERVICE_NAME", "g38_lotto_minigame"),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVICE_PORT", 8080),
			Mode:        getEnv("SERVER_MODE", "dev"),
		},
		Game: GameConfig{
			PickableBalls:       getEnvAsInt("PICKABLE_BALLS", defaults.PoolSize),
			SelectionCapacity:   getEnvAsInt("SELECTION_CAPACITY", defaults.Capacity),
			AutoPickInterval:    getEnvAsDuration("AUTO_PICK_INTERVAL", defaults.AutoPickInterval),
			FlickerCount:        getEnvAsInt("FLICKER_COUNT", defaults.FlickerCount),
			FlickerInterval:     getEnvAsDuration("FLICKER_INTERVAL", defaults.FlickerInterval),
			PanelFadeDuration:   getEnvAsDuration("PANEL_FADE_DURATION", defaults.PanelFadeDuration),
			ButtonSlideDuration: getEnvAsDuration("BUTTON_SLIDE_DURATION", defaults.ButtonSlideDuration),
			RandomSeed:          getEnvAsInt64("RANDOM_SEED", 0),
			TableFile:           getEnv("GAME_TABLE_FILE", ""),
		},
	}
}

// LoadGameTable 讀取 YAML 遊戲表，未指定或檔案不存在時使用預設值
// 檔案中缺少的部分同樣使用預設值
func LoadGameTable(path string) (*GameTable, error) {
	table := &GameTable{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("警告: 找不到遊戲表檔案 %s，使用預設值", path)
		case err != nil:
			return nil, fmt.Errorf("讀取遊戲表檔案失敗: %w", err)
		default:
			if err := yaml.Unmarshal(data, table); err != nil {
				return nil, fmt.Errorf("解析遊戲表檔案失敗: %w", err)
			}
		}
	}

	if len(table.Prizes) == 0 {
		table.Prizes = gameflow.DefaultPrizeTiers()
	}
	if len(table.BallColors) == 0 {
		table.BallColors = gameflow.DefaultColorThresholds()
	}

	if _, err := gameflow.NewPrizeTable(table.Prizes); err != nil {
		return nil, fmt.Errorf("獎金表無效: %w", err)
	}
	if _, err := gameflow.NewBallColorTable(table.BallColors); err != nil {
		return nil, fmt.Errorf("球色表無效: %w", err)
	}
	return table, nil
}

// Validate 驗證配置
func (c *AppConfig) Validate() error {
	if err := utils.GetValidator().Validate(c); err != nil {
		return fmt.Errorf("配置驗證失敗: %w", err)
	}
	return c.GameSettings().Validate()
}

// IsDevelopment 是否為開發模式
func (c *AppConfig) IsDevelopment() bool {
	return c.Server.Mode == "dev"
}

// GameSettings 轉換為遊戲參數
func (c *AppConfig) GameSettings() gameflow.Settings {
	return gameflow.Settings{
		PoolSize:            c.Game.PickableBalls,
		Capacity:            c.Game.SelectionCapacity,
		AutoPickInterval:    c.Game.AutoPickInterval,
		FlickerCount:        c.Game.FlickerCount,
		FlickerInterval:     c.Game.FlickerInterval,
		PanelFadeDuration:   c.Game.PanelFadeDuration,
		ButtonSlideDuration: c.Game.ButtonSlideDuration,
	}
}
