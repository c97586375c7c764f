package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/crafthub/crafthub-backend/internal/utils"
	"github.com/crafthub/crafthub-backend/internal/utils/logger"
	"github.com/joho/godotenv"
)

var (
	_config *Config

	DataDir string
)

type Config struct {
	ConfigBaseDir  string
	ConfigFileName string
	ConfigFilePath string
	Loaded         bool
	ConfigData     ConfigData
}

type ConfigData struct {
	Version  string `json:"version"`
	HTTPBind string `json:"http_bind"`

	// AuthorLabel is the fixed author attached to every catalog record.
	AuthorLabel string `json:"author_label"`

	// MaxUploadMB caps content file uploads before any storage call.
	MaxUploadMB int64 `json:"max_upload_mb"`

	Database struct {
		Host string `json:"host"`
		Port int    `json:"port"`
		DB   string `json:"database"`
		User string `json:"username"`
		Pass string `json:"password"`
	} `json:"db"`

	Redis struct {
		Addr string `json:"addr"`
		DB   int    `json:"database"`
	} `json:"redis"`
}

func (config *Config) LoadConfigData() error {
	basePath := filepath.Dir(config.ConfigFilePath)

	if err := utils.CreateFolder(basePath); err != nil {
		utils.CheckError(err)
	}

	if !utils.CheckFileExists(config.ConfigFilePath) {
		file, err := os.Create(config.ConfigFilePath)
		if err != nil {
			return err
		}
		file.Close()

		config.Loaded = true

		config.SetDefaultValues()
		if err := config.SaveConfigData(); err != nil {
			return err
		}
		return nil
	}

	f, err := os.Open(config.ConfigFilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	byteValue, _ := io.ReadAll(f)

	if err := json.Unmarshal(byteValue, &config.ConfigData); err != nil {
		return err
	}

	config.Loaded = true
	config.SetDefaultValues()
	if err := config.SaveConfigData(); err != nil {
		return err
	}
	return nil
}

func (config *Config) SetDefaultValues() {

	godotenv.Load(".env", ".env.local")

	config.ConfigData.Version = "v1.0.0"

	config.ConfigData.Database.Host = os.Getenv("DB_HOST")
	config.ConfigData.Database.DB = os.Getenv("DB_DB")
	config.ConfigData.Database.Port, _ = strconv.Atoi(os.Getenv("DB_PORT"))
	config.ConfigData.Database.User = os.Getenv("DB_USER")
	config.ConfigData.Database.Pass = os.Getenv("DB_PASS")

	config.ConfigData.Redis.Addr = os.Getenv("REDIS_ADDR")
	if config.ConfigData.Redis.Addr == "" {
		config.ConfigData.Redis.Addr = "localhost:6379"
	}
	config.ConfigData.Redis.DB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	config.ConfigData.AuthorLabel = os.Getenv("HUB_AUTHOR_LABEL")
	if config.ConfigData.AuthorLabel == "" {
		config.ConfigData.AuthorLabel = "CraftHub Team"
	}

	if config.ConfigData.MaxUploadMB == 0 {
		config.ConfigData.MaxUploadMB = 50
	}

	config.ConfigData.HTTPBind = ":3000"
	if os.Getenv("HOST_PORT") != "" {
		config.ConfigData.HTTPBind = os.Getenv("HOST_PORT")
	}
}

func (config *Config) SaveConfigData() error {
	data, err := GetConfigData()

	if err != nil {
		return err
	}

	file, _ := json.MarshalIndent(data, "", "    ")

	if err := os.WriteFile(config.ConfigFilePath, file, 0755); err != nil {
		return err
	}
	return nil
}

func InitConfig() error {

	HomeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	DataDir = filepath.Join(HomeDir, "crafthub_data")

	_config = &Config{}
	_config.ConfigBaseDir = filepath.Join(DataDir, "config")
	_config.ConfigFileName = "CraftHub.config.json"
	_config.ConfigFilePath = filepath.Join(_config.ConfigBaseDir, _config.ConfigFileName)

	if err := _config.LoadConfigData(); err != nil {
		return err
	}

	logDir := filepath.Join(DataDir, "logs")
	logger.SetupLoggers("CraftHub", logDir)

	logger.GetInfoLogger().Printf("Config Location: %s", GetConfig().ConfigFilePath)
	return nil
}

func GetConfig() *Config {
	if _config == nil {
		_config = &Config{}
	}

	return _config
}

func GetConfigData() (*ConfigData, error) {
	if GetConfig() == nil {
		return nil, fmt.Errorf("error getting config data, config is nil")
	}

	if !GetConfig().Loaded {
		return nil, fmt.Errorf("error getting config data, config is not loaded")
	}

	return &GetConfig().ConfigData, nil
}
