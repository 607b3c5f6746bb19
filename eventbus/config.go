package eventbus

import (
	"errors"

	"idea-feed/config"
)

var (
	ErrNoBrokers = errors.New("kafka bootstrap servers are not configured (kafka.bootstrap_servers or KAFKA_BOOTSTRAP_SERVERS)")
	ErrNoGroupID = errors.New("kafka group id is not configured (kafka.group_id or KAFKA_GROUP_ID)")
)

// GetBrokers returns Kafka bootstrap servers from config (env KAFKA_BOOTSTRAP_SERVERS overrides)
func GetBrokers() (string, error) {
	v := config.GetConfig().Kafka.BootstrapServers
	if v == "" {
		return "", ErrNoBrokers
	}
	return v, nil
}

// GetGroupID returns consumer group id from config (env KAFKA_GROUP_ID overrides)
func GetGroupID() (string, error) {
	v := config.GetConfig().Kafka.GroupID
	if v == "" {
		return "", ErrNoGroupID
	}
	return v, nil
}
