package kafka

import (
	"os"

	"github.com/Shopify/sarama"
	"github.com/rs/zerolog/log"
)

const (
	__DefaultWindow   = 8
	__DefaultClientID = "file-flow"
)

// Config Kafka投递配置
type Config struct {
	Brokers  []string `json:"brokers"`
	Topic    string   `json:"topic"`
	Key      string   `json:"key"`    // 消息键, 同一文件的数据块落在同一分区以保证顺序
	Window   int64    `json:"window"` // 预取的数据块数量
	ClientID string   `json:"client_id"`
}

func (cfg *Config) window() int64 {
	if cfg.Window <= 0 {
		return __DefaultWindow
	}
	return cfg.Window
}

// NewConfig 生成同步生产者所需的sarama配置.
func NewConfig(cfg *Config) *sarama.Config {
	conf := sarama.NewConfig()
	conf.ClientID = cfg.ClientID
	if conf.ClientID == "" {
		conf.ClientID = __DefaultClientID
	}
	// chunks of one file must not be reordered
	conf.Producer.RequiredAcks = sarama.WaitForAll
	conf.Producer.Return.Successes = true
	conf.Producer.Return.Errors = true
	conf.Net.MaxOpenRequests = 1
	GetKafkaAccessEnv(conf)
	return conf
}

// GetKafkaAccessEnv 从环境变量 KAFKA_USERNAME / KAFKA_PASSWORD 读取SASL/PLAIN认证信息,
// 两者缺一则不启用SASL. 返回是否启用了SASL.
func GetKafkaAccessEnv(cfg *sarama.Config) bool {
	usr, pwd := os.Getenv("KAFKA_USERNAME"), os.Getenv("KAFKA_PASSWORD")
	if usr == "" || pwd == "" {
		log.Warn().Msg("KAFKA_USERNAME or KAFKA_PASSWORD unset, publish without SASL")
		return false
	}

	sasl := &cfg.Net.SASL
	sasl.Enable = true
	sasl.Handshake = true
	sasl.Version = sarama.SASLHandshakeV1
	sasl.Mechanism = sarama.SASLTypePlaintext
	sasl.User, sasl.Password = usr, pwd
	log.Debug().Str("user", usr).Msg("publish with SASL/PLAIN")
	return true
}
