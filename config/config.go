package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	JwtExpire int    `yaml:"jwt_expire" json:"jwt_expire"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// StorageConfig selects the object storage backend. Type is either
// "cloudinary" (URL carries credentials) or "memory" for local development.
type StorageConfig struct {
	Type   string `yaml:"type" json:"type"`
	URL    string `yaml:"url" json:"url"`
	Folder string `yaml:"folder" json:"folder"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	NotifyTo string `yaml:"notify_to" json:"notify_to"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Storage  StorageConfig `yaml:"storage" json:"storage"`
	Smtp     SmtpConfig    `yaml:"smtp" json:"smtp"`
	Logger   LogConfig     `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Jutehus",
		Location: "Europe/Copenhagen",
		Workdir:  "/var/jutehus",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		Secret:    "9b6de5cc-0001-1203-xxtt-0f568ac9da37",
		JwtExpire: 120,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "jutehus",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Storage: StorageConfig{
		Type:   "memory",
		Folder: "jutehus",
	},
	Smtp: SmtpConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@jutehus.dk",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/jutehus/jutehus.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}

	p, err := strconv.ParseInt(evalue, 10, 64)
	if err == nil {
		f(p)
	}
}

// LoadConfig reads the YAML configuration file and applies JUTEHUS_*
// environment overrides on top of it.
func LoadConfig(cfile string) *AppConfig {
	appconfig := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, appconfig)
		}
	}

	setEnvValue("JUTEHUS_SYSTEM_WORKDIR", func(v string) { appconfig.System.Workdir = v })
	setEnvBoolValue("JUTEHUS_SYSTEM_DEBUG", func(v bool) { appconfig.System.Debug = v })

	setEnvValue("JUTEHUS_DB_HOST", func(v string) { appconfig.Database.Host = v })
	setEnvValue("JUTEHUS_DB_NAME", func(v string) { appconfig.Database.Name = v })
	setEnvValue("JUTEHUS_DB_USER", func(v string) { appconfig.Database.User = v })
	setEnvValue("JUTEHUS_DB_PWD", func(v string) { appconfig.Database.Passwd = v })
	setEnvIntValue("JUTEHUS_DB_PORT", func(v int64) { appconfig.Database.Port = int(v) })
	setEnvBoolValue("JUTEHUS_DB_DEBUG", func(v bool) { appconfig.Database.Debug = v })

	setEnvValue("JUTEHUS_WEB_HOST", func(v string) { appconfig.Web.Host = v })
	setEnvValue("JUTEHUS_WEB_SECRET", func(v string) { appconfig.Web.Secret = v })
	setEnvIntValue("JUTEHUS_WEB_PORT", func(v int64) { appconfig.Web.Port = int(v) })

	setEnvValue("JUTEHUS_STORAGE_TYPE", func(v string) { appconfig.Storage.Type = v })
	setEnvValue("JUTEHUS_STORAGE_URL", func(v string) { appconfig.Storage.URL = v })
	setEnvValue("JUTEHUS_STORAGE_FOLDER", func(v string) { appconfig.Storage.Folder = v })

	setEnvValue("JUTEHUS_SMTP_HOST", func(v string) { appconfig.Smtp.Host = v })
	setEnvValue("JUTEHUS_SMTP_USERNAME", func(v string) { appconfig.Smtp.Username = v })
	setEnvValue("JUTEHUS_SMTP_PASSWORD", func(v string) { appconfig.Smtp.Password = v })
	setEnvIntValue("JUTEHUS_SMTP_PORT", func(v int64) { appconfig.Smtp.Port = int(v) })

	return appconfig
}
