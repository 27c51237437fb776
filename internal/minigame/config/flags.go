package config

import (
	"flag"
	"log"
	"os"
	"strconv"
)

// CommandLineArgs 存儲從命令行解析的參數
type CommandLineArgs struct {
	// 服務設定
	ServiceName string
	ServicePort string
	ServerMode  string
	LogLevel    string

	// 遊戲設定
	GameTableFile string
	RandomSeed    int64

	// 是否已處理命令行參數
	parsed bool
}

// 全局變量，用於存儲解析後的命令行參數
var Args CommandLineArgs

// InitFlags 初始化並解析命令行參數
func InitFlags() {
	// 如果已經解析過命令行參數，則直接返回
	if Args.parsed {
		return
	}

	registerFlags(flag.CommandLine, &Args)
	flag.Parse()

	// 將解析後的命令行參數設置到環境變量中
	setEnvironmentVariables(&Args)

	Args.parsed = true

	if Args.ServerMode == "dev" {
		log.Println("已解析的命令行參數:")
		log.Printf("  服務名稱: %s", Args.ServiceName)
		log.Printf("  服務端口: %s", Args.ServicePort)
		log.Printf("  服務器模式: %s", Args.ServerMode)
		log.Printf("  日誌級別: %s", Args.LogLevel)
		log.Printf("  遊戲表檔案: %s", Args.GameTableFile)
		log.Printf("  隨機種子: %d", Args.RandomSeed)
	}
}

// registerFlags 註冊命令行參數，預設值取自環境變量
func registerFlags(fs *flag.FlagSet, args *CommandLineArgs) {
	fs.StringVar(&args.ServiceName, "service_name", getEnv("SERVICE_NAME", "g38_lotto_minigame"), "Service name")
	fs.StringVar(&args.ServicePort, "service_port", getEnv("SERVICE_PORT", "8080"), "Service port")
	fs.StringVar(&args.ServerMode, "server_mode", getEnv("SERVER_MODE", "dev"), "Server mode (dev, prod)")
	fs.StringVar(&args.LogLevel, "log_level", getEnv("LOG_LEVEL", "debug"), "Log level")
	fs.StringVar(&args.GameTableFile, "game_table", getEnv("GAME_TABLE_FILE", ""), "Prize and ball color table (YAML)")
	fs.Int64Var(&args.RandomSeed, "random_seed", getEnvAsInt64("RANDOM_SEED", 0), "Random seed, 0 uses current time")
}

// setEnvironmentVariables 將解析後的命令行參數設置到環境變量中
func setEnvironmentVariables(args *CommandLineArgs) {
	os.Setenv("SERVICE_NAME", args.ServiceName)
	os.Setenv("SERVICE_PORT", args.ServicePort)
	os.Setenv("SERVER_MODE", args.ServerMode)
	os.Setenv("LOG_LEVEL", args.LogLevel)
	os.Setenv("GAME_TABLE_FILE", args.GameTableFile)
	os.Setenv("RANDOM_SEED", strconv.FormatInt(args.RandomSeed, 10))
}
