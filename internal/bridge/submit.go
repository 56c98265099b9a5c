package bridge

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"lakehouse-go/internal/config"
	"lakehouse-go/pkg/log"
)

// sparkExtensions 启用 Iceberg 与 Nessie 的 SQL 扩展。
const sparkExtensions = "org.apache.iceberg.spark.extensions.IcebergSparkSessionExtensions," +
	"org.projectnessie.spark.extensions.NessieSparkSessionExtensions"

// Driver 负责向外部 Spark 提交合并作业。
type Driver struct {
	sparkCfg  config.SparkConfig
	nessieCfg config.NessieConfig
	minioCfg  config.MinIOConfig
}

// NewDriver 创建一个新的 Driver 实例。
func NewDriver(sparkCfg config.SparkConfig, nessieCfg config.NessieConfig, minioCfg config.MinIOConfig) *Driver {
	return &Driver{
		sparkCfg:  sparkCfg,
		nessieCfg: nessieCfg,
		minioCfg:  minioCfg,
	}
}

// SubmitArgs 构造一次 spark-sql 调用的完整命令行。
// 目录、存储端点与凭证都是计算引擎的配置面，不是本组件的内部状态。
func (d *Driver) SubmitArgs(script string) (string, []string) {
	confs := []string{
		"spark.sql.extensions=" + sparkExtensions,
		"spark.sql.catalog." + Catalog + "=org.apache.iceberg.spark.SparkCatalog",
		"spark.sql.catalog." + Catalog + ".catalog-impl=org.apache.iceberg.nessie.NessieCatalog",
		"spark.sql.catalog." + Catalog + ".uri=" + d.nessieCfg.URI,
		"spark.sql.catalog." + Catalog + ".ref=" + d.nessieCfg.Ref,
		"spark.sql.catalog." + Catalog + ".warehouse=" + d.nessieCfg.Warehouse,
		"spark.hadoop.fs.s3a.endpoint=" + d.nessieCfg.S3Endpoint,
		"spark.hadoop.fs.s3a.access.key=" + d.minioCfg.AccessKeyID,
		"spark.hadoop.fs.s3a.secret.key=" + d.minioCfg.SecretAccessKey,
		"spark.hadoop.fs.s3a.path.style.access=true",
		"spark.hadoop.fs.s3a.impl=org.apache.hadoop.fs.s3a.S3AFileSystem",
	}

	args := []string{}
	name := d.sparkCfg.SQLBin
	if d.sparkCfg.Container != "" {
		name = "docker"
		args = append(args, "exec", d.sparkCfg.Container, d.sparkCfg.SQLBin)
	}
	args = append(args, "--packages", d.sparkCfg.Packages)
	for _, conf := range confs {
		args = append(args, "--conf", conf)
	}
	args = append(args, "-e", script)
	return name, args
}

// Submit 提交脚本并等待作业结束。作业输出直接透传给操作员。
// 合并中途失败时的表一致性完全依赖 Iceberg 的快照原子性，这里不做任何重试。
func (d *Driver) Submit(ctx context.Context, script string) error {
	name, args := d.SubmitArgs(script)
	log.Infof("[Bridge] 提交 Spark 作业: %s (%d 个参数)", name, len(args))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("Spark 作业执行失败: %w", err)
	}
	log.Info("[Bridge] Spark 作业执行成功")
	return nil
}

// RunJob 按名称执行一个合并作业。
func (d *Driver) RunJob(ctx context.Context, job string) error {
	var script string
	switch job {
	case "orders":
		script = BuildOrdersScript(d.minioCfg.BucketName)
	case "inventory":
		script = BuildInventoryScript(d.minioCfg.BucketName)
	default:
		return fmt.Errorf("未知的合并作业: %q (可选: orders, inventory)", job)
	}
	log.Infof("[Bridge] 作业 '%s' SQL 脚本:\n%s", job, script)
	return d.Submit(ctx, script)
}
