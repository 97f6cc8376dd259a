package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 数据源类型
const (
	SourceAstra    = "astra"
	SourcePostgres = "postgres"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Astra    AstraConfig    `yaml:"astra"`
	Database DatabaseConfig `yaml:"database"`
	Langflow LangflowConfig `yaml:"langflow"`
	Nacos    NacosConfig    `yaml:"nacos"`
	// RecordSource 互动数据来源: astra 或 postgres
	RecordSource string `yaml:"record_source"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `yaml:"port"`
}

// AstraConfig Astra DB Data API配置
type AstraConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	Token       string `yaml:"token"`
	Keyspace    string `yaml:"keyspace"`
	Collection  string `yaml:"collection"`
}

// DatabaseConfig Postgres数据源配置
type DatabaseConfig struct {
	URL              string `yaml:"url"`
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	User             string `yaml:"user"`
	Password         string `yaml:"password"`
	DBName           string `yaml:"dbname"`
	SSLMode          string `yaml:"sslmode"`
	Table            string `yaml:"table"`
	ContentKeyColumn string `yaml:"content_key_column"`
}

// LangflowConfig 流程服务配置
type LangflowConfig struct {
	BaseURL    string `yaml:"base_url"`
	LangflowID string `yaml:"langflow_id"`
	FlowID     string `yaml:"flow_id"`
	// Token 为空时使用Astra的应用令牌
	Token string `yaml:"token"`
}

// NacosConfig Nacos配置
type NacosConfig struct {
	ServerAddr  string            `yaml:"server_addr"`
	NamespaceID string            `yaml:"namespace_id"`
	Group       string            `yaml:"group"`
	ServiceName string            `yaml:"service_name"`
	Enable      bool              `yaml:"enable"`
	Metadata    map[string]string `yaml:"metadata"`
	LogDir      string            `yaml:"log_dir"`
	CacheDir    string            `yaml:"cache_dir"`
}

// DatabaseDSN 获取数据库连接字符串
func (c *DatabaseConfig) DatabaseDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// FlowToken 调用流程服务使用的令牌
func (c *Config) FlowToken() string {
	if c.Langflow.Token != "" {
		return c.Langflow.Token
	}
	return c.Astra.Token
}

// Load 加载配置: 先读取.env，再读取YAML文件(可选)，最后用环境变量覆盖
func Load() (*Config, error) {
	// .env不存在时忽略
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	return LoadConfig(path)
}

// LoadConfig 从指定文件加载配置，文件不存在时仅使用环境变量和默认值
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	applyEnv(config)
	setDefaults(config)

	switch config.RecordSource {
	case SourceAstra, SourcePostgres:
	default:
		return nil, fmt.Errorf("不支持的数据源类型: %s", config.RecordSource)
	}

	return config, nil
}

func applyEnv(c *Config) {
	setString(&c.Server.Port, "PORT")

	setString(&c.Astra.APIEndpoint, "DB_API_ENDPOINT")
	setString(&c.Astra.Token, "ASTRA_DB_APPLICATION_TOKEN")
	setString(&c.Astra.Keyspace, "ASTRA_DB_KEYSPACE")
	setString(&c.Astra.Collection, "TABLE_NAME")

	setString(&c.RecordSource, "RECORD_SOURCE")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Database.Table, "TABLE_NAME")
	setString(&c.Database.ContentKeyColumn, "CONTENT_KEY_COLUMN")

	setString(&c.Langflow.BaseURL, "BASE_API_URL")
	setString(&c.Langflow.LangflowID, "LANGFLOW_ID")
	setString(&c.Langflow.FlowID, "FLOW_ID")
	setString(&c.Langflow.Token, "LANGFLOW_TOKEN")

	setString(&c.Nacos.ServerAddr, "NACOS_SERVER_ADDR")
	setString(&c.Nacos.NamespaceID, "NACOS_NAMESPACE_ID")
	setString(&c.Nacos.Group, "NACOS_GROUP")
	setString(&c.Nacos.ServiceName, "NACOS_SERVICE_NAME")
	if v := os.Getenv("NACOS_ENABLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Nacos.Enable = b
		}
	}
}

func setDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}
	if c.RecordSource == "" {
		c.RecordSource = SourceAstra
	}
	if c.Astra.Keyspace == "" {
		c.Astra.Keyspace = "default_keyspace"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.ContentKeyColumn == "" {
		c.Database.ContentKeyColumn = "content_key"
	}
	if c.Nacos.ServiceName == "" {
		c.Nacos.ServiceName = "engagement-service"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
