package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse-go/internal/config"
)

func testDriver(container string) *Driver {
	return NewDriver(
		config.SparkConfig{
			Container: container,
			SQLBin:    "/opt/spark/bin/spark-sql",
			Packages:  "org.apache.iceberg:iceberg-spark-runtime-3.5_2.12:1.4.2",
		},
		config.NessieConfig{
			URI:        "http://nessie:19120/api/v1",
			Ref:        "main",
			Warehouse:  "s3a://lakehouse/warehouse",
			S3Endpoint: "http://minio:9000",
		},
		config.MinIOConfig{
			AccessKeyID:     "admin",
			SecretAccessKey: "password",
			BucketName:      "lakehouse",
		},
	)
}

func TestSubmitArgsInContainer(t *testing.T) {
	name, args := testDriver("spark-iceberg").SubmitArgs("SELECT 1;")

	assert.Equal(t, "docker", name)
	require.GreaterOrEqual(t, len(args), 3)
	assert.Equal(t, []string{"exec", "spark-iceberg", "/opt/spark/bin/spark-sql"}, args[:3])

	// 脚本作为最后一个参数传给 -e
	assert.Equal(t, "SELECT 1;", args[len(args)-1])
	assert.Equal(t, "-e", args[len(args)-2])
}

func TestSubmitArgsLocal(t *testing.T) {
	name, args := testDriver("").SubmitArgs("SELECT 1;")

	assert.Equal(t, "/opt/spark/bin/spark-sql", name)
	assert.Equal(t, "--packages", args[0])
}

func TestSubmitArgsCarryEngineConfiguration(t *testing.T) {
	_, args := testDriver("spark-iceberg").SubmitArgs("SELECT 1;")
	joined := ""
	for _, arg := range args {
		joined += arg + "\n"
	}

	// 目录、存储端点与凭证都通过引擎配置传入
	assert.Contains(t, joined, "spark.sql.catalog.nessie.uri=http://nessie:19120/api/v1")
	assert.Contains(t, joined, "spark.sql.catalog.nessie.ref=main")
	assert.Contains(t, joined, "spark.sql.catalog.nessie.warehouse=s3a://lakehouse/warehouse")
	assert.Contains(t, joined, "spark.hadoop.fs.s3a.endpoint=http://minio:9000")
	assert.Contains(t, joined, "spark.hadoop.fs.s3a.access.key=admin")
	assert.Contains(t, joined, "spark.hadoop.fs.s3a.secret.key=password")
	assert.Contains(t, joined, "spark.hadoop.fs.s3a.path.style.access=true")
	assert.Contains(t, joined, "spark.sql.extensions="+sparkExtensions)
}

func TestRunJobRejectsUnknownJob(t *testing.T) {
	err := testDriver("").RunJob(context.Background(), "nope")
	assert.Error(t, err)
}
