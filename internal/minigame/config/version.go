package config

import (
	"runtime"
)

// 構建信息，通過 ldflags 在編譯時注入
var (
	AppVersion string
	BuildTime  string
	GitHash    string
)

// Version 應用版本信息
type Version struct {
	Version   string `json:"version"`
	AppName   string `json:"app_name"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	BuildEnv  string `json:"build_env"`
}

// GetVersion 返回當前版本信息，未注入時使用環境變量或預設值
func GetVersion(cfg *AppConfig) Version {
	version := AppVersion
	if version == "" {
		version = getEnv("APP_VERSION", "0.1.0")
	}

	return Version{
		Version:   version,
		AppName:   cfg.Server.ServiceName,
		BuildTime: BuildTime,
		GitCommit: GitHash,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		BuildEnv:  cfg.Server.Mode,
	}
}
