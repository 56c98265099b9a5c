// Package config 负责加载和管理整个流水线的配置。
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// 全局配置变量，进程启动时加载一次，此后只读。
var Conf Config

// Config 是整个流水线的配置结构体，与 config.yaml 文件结构对应。
// 每个字段都支持环境变量覆盖，未设置时使用默认值。
type Config struct {
	Log           LogConfig           `mapstructure:"log"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	RavenDB       RavenDBConfig       `mapstructure:"ravendb"`
	Spark         SparkConfig         `mapstructure:"spark"`
	Nessie        NessieConfig        `mapstructure:"nessie"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Embedding     EmbeddingConfig     `mapstructure:"embedding"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Export        ExportConfig        `mapstructure:"export"`
	Seed          SeedConfig          `mapstructure:"seed"`
	Console       ConsoleConfig       `mapstructure:"console"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// RavenDBConfig 存储源文档数据库的配置。
type RavenDBConfig struct {
	URL        string `mapstructure:"url"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// SparkConfig 存储外部计算引擎（Spark）作业提交的配置。
// Container 非空时通过 docker exec 在容器内提交，否则直接调用本地 spark-sql。
type SparkConfig struct {
	Container string `mapstructure:"container"`
	SQLBin    string `mapstructure:"sql_bin"`
	Packages  string `mapstructure:"packages"`
}

// NessieConfig 存储 Iceberg 目录服务（Nessie）的配置。
type NessieConfig struct {
	URI       string `mapstructure:"uri"`
	Ref       string `mapstructure:"ref"`
	Warehouse string `mapstructure:"warehouse"`
	// S3Endpoint 是 Spark 容器内部访问对象存储的地址（与 MinIO.Endpoint 网络视角不同）。
	S3Endpoint string `mapstructure:"s3_endpoint"`
}

// ElasticsearchConfig 存储向量索引（Elasticsearch）的配置。
type ElasticsearchConfig struct {
	Addresses string `mapstructure:"addresses"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	IndexName string `mapstructure:"index_name"`
	// Dims 与 Similarity 在索引创建时生效，Dims 必须与 Embedding.Dimensions 一致。
	Dims       int    `mapstructure:"dims"`
	Similarity string `mapstructure:"similarity"`
}

// EmbeddingConfig 存储 Embedding 模型相关的配置。
type EmbeddingConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	Dimensions int    `mapstructure:"dimensions"`
	BatchSize  int    `mapstructure:"batch_size"`
}

// KafkaConfig 存储流水线审计事件的 Kafka 配置。Brokers 为空时禁用事件发布。
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// ExportConfig 存储导出阶段的配置。
type ExportConfig struct {
	// ReadyAttempts / ReadyDelaySeconds 仅用于启动时等待外部服务就绪，不构成操作级重试。
	ReadyAttempts     int `mapstructure:"ready_attempts"`
	ReadyDelaySeconds int `mapstructure:"ready_delay_seconds"`
}

// SeedConfig 存储样例数据生成的配置。
type SeedConfig struct {
	NumOrders int `mapstructure:"num_orders"`
}

// ConsoleConfig 存储只读控制台服务的配置。
type ConsoleConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// 环境变量绑定，变量名沿用既有部署脚本的约定。
var envBindings = map[string]string{
	"minio.endpoint":          "MINIO_URL",
	"minio.access_key_id":     "AWS_ACCESS_KEY_ID",
	"minio.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"minio.bucket_name":       "LAKEHOUSE_BUCKET",
	"ravendb.url":             "RAVENDB_URL",
	"ravendb.database":        "RAVENDB_DATABASE",
	"spark.container":         "SPARK_CONTAINER",
	"nessie.uri":              "NESSIE_URI",
	"nessie.ref":              "NESSIE_REF",
	"nessie.s3_endpoint":      "NESSIE_S3_ENDPOINT",
	"elasticsearch.addresses": "ES_ADDRESSES",
	"embedding.api_key":       "EMBEDDING_API_KEY",
	"embedding.base_url":      "EMBEDDING_BASE_URL",
	"kafka.brokers":           "KAFKA_BROKERS",
	"log.level":               "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_path", "")

	v.SetDefault("minio.endpoint", "localhost:9100")
	v.SetDefault("minio.access_key_id", "admin")
	v.SetDefault("minio.secret_access_key", "password")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket_name", "lakehouse")

	v.SetDefault("ravendb.url", "http://localhost:8080")
	v.SetDefault("ravendb.database", "Northwind")
	v.SetDefault("ravendb.collection", "Orders")

	v.SetDefault("spark.container", "spark-iceberg")
	v.SetDefault("spark.sql_bin", "/opt/spark/bin/spark-sql")
	v.SetDefault("spark.packages",
		"org.apache.iceberg:iceberg-spark-runtime-3.5_2.12:1.4.2,"+
			"org.projectnessie.nessie-integrations:nessie-spark-extensions-3.5_2.12:0.74.0,"+
			"org.apache.hadoop:hadoop-aws:3.3.4")

	v.SetDefault("nessie.uri", "http://nessie:19120/api/v1")
	v.SetDefault("nessie.ref", "main")
	v.SetDefault("nessie.warehouse", "s3a://lakehouse/warehouse")
	v.SetDefault("nessie.s3_endpoint", "http://minio:9000")

	v.SetDefault("elasticsearch.addresses", "http://localhost:9200")
	v.SetDefault("elasticsearch.index_name", "order_vectors")
	v.SetDefault("elasticsearch.dims", 384)
	v.SetDefault("elasticsearch.similarity", "cosine")

	v.SetDefault("embedding.base_url", "http://localhost:11434/v1")
	v.SetDefault("embedding.model", "all-minilm")
	v.SetDefault("embedding.dimensions", 384)
	v.SetDefault("embedding.batch_size", 32)

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "lakehouse-pipeline-events")

	v.SetDefault("export.ready_attempts", 30)
	v.SetDefault("export.ready_delay_seconds", 2)

	v.SetDefault("seed.num_orders", 500)

	v.SetDefault("console.port", "8090")
	v.SetDefault("console.mode", "release")
}

// Load 构建一份配置：默认值 < 配置文件（可选） < 环境变量。
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	return cfg, nil
}

// Init 初始化全局配置。配置文件不存在时仅依赖默认值与环境变量。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Errorf("初始化配置失败: %w", err))
	}
	Conf = cfg
}
