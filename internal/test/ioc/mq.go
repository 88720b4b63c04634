package testioc

import (
	"context"
	"sync"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
)

var (
	q          mq.MQ
	mqInitOnce sync.Once
)

// InitMQ 用内存实现，测试不依赖 Kafka
func InitMQ() mq.MQ {
	mqInitOnce.Do(func() {
		qq := memory.NewMQ()
		// 与 internal/interview/internal/event.InterviewCompletedTopic 保持一致
		err := qq.CreateTopic(context.Background(), "interview_completed_events", 1)
		if err != nil {
			panic(err)
		}
		q = qq
	})
	return q
}
