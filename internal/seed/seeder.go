package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"lakehouse-go/internal/model"
	"lakehouse-go/pkg/log"
	pkgravendb "lakehouse-go/pkg/ravendb"
)

// Run 向源数据库批量写入 numOrders 条样例订单。
// 订单标识符固定为 orders/%04d-A，重复执行会覆盖同一批文档（按标识符幂等）。
func Run(numOrders int) error {
	log.Infof("开始生成 %d 条样例订单...", numOrders)

	generator := NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now())

	bulk := pkgravendb.Store.BulkInsert("")
	for i := 0; i < numOrders; i++ {
		order := generator.Generate(i)
		if err := bulk.StoreWithID(order, OrderID(i), nil); err != nil {
			_ = bulk.Abort()
			return fmt.Errorf("批量写入订单 %s 失败: %w", OrderID(i), err)
		}
		if (i+1)%100 == 0 {
			log.Infof("  已写入 %d 条订单...", i+1)
		}
	}
	if err := bulk.Close(); err != nil {
		return fmt.Errorf("提交批量写入失败: %w", err)
	}

	log.Infof("成功写入 %d 条订单", numOrders)
	return logSample(OrderID(0))
}

// logSample 读出一条样例订单打印到日志，用于人工确认数据形状。
func logSample(id string) error {
	session, err := pkgravendb.Store.OpenSession("")
	if err != nil {
		return fmt.Errorf("打开会话失败: %w", err)
	}
	defer session.Close()

	var order *model.Order
	if err := session.Load(&order, id); err != nil {
		return fmt.Errorf("读取样例订单 %s 失败: %w", id, err)
	}
	if order == nil {
		return fmt.Errorf("样例订单 %s 不存在", id)
	}

	sample, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return err
	}
	log.Infof("样例订单 (%s):\n%s", id, string(sample))
	return nil
}
