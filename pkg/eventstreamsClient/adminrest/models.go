package adminrest

// TopicDetail describes one topic. Unlike the rest of the admin API its wire
// keys are camelCase.
type TopicDetail struct {
	Name               *string             `json:"name"`
	Partitions         *int64              `json:"partitions"`
	ReplicationFactor  *int64              `json:"replicationFactor"`
	RetentionMs        *int64              `json:"retentionMs"`
	CleanupPolicy      *string             `json:"cleanupPolicy"`
	Configs            *TopicConfigs       `json:"configs"`
	ReplicaAssignments []ReplicaAssignment `json:"replicaAssignments"`
}

// TopicConfigs carries the topic config properties addressed by their Kafka names.
type TopicConfigs struct {
	RetentionBytes    *string `json:"retention.bytes"`
	SegmentBytes      *string `json:"segment.bytes"`
	SegmentIndexBytes *string `json:"segment.index.bytes"`
	SegmentMs         *string `json:"segment.ms"`
}

type ReplicaAssignment struct {
	// ID is the partition ID.
	ID      *int64          `json:"id"`
	Brokers *ReplicaBrokers `json:"brokers"`
}

type ReplicaBrokers struct {
	Replicas []int64 `json:"replicas"`
}

// ConfigCreate is one config property set when creating a topic.
type ConfigCreate struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

// ConfigUpdate is one config property changed on an existing topic. Valid names
// are cleanup.policy, retention.ms, retention.bytes, segment.bytes, segment.ms
// and segment.index.bytes.
type ConfigUpdate struct {
	Name           *string `json:"name"`
	Value          *string `json:"value"`
	ResetToDefault *bool   `json:"reset_to_default"`
}

// RecordDelete removes every record of Partition with an offset lower than BeforeOffset.
type RecordDelete struct {
	Partition    *int64 `json:"partition"`
	BeforeOffset *int64 `json:"before_offset"`
}

type BrokerSummary struct {
	ID   *int64  `json:"id"`
	Host *string `json:"host"`
	Port *int64  `json:"port"`
	Rack *string `json:"rack"`
}

type BrokerDetail struct {
	ID      *int64         `json:"id"`
	Host    *string        `json:"host"`
	Port    *int64         `json:"port"`
	Rack    *string        `json:"rack"`
	Configs []BrokerConfig `json:"configs"`
}

// Summary drops the configs of d.
func (d BrokerDetail) Summary() BrokerSummary {
	return BrokerSummary{ID: d.ID, Host: d.Host, Port: d.Port, Rack: d.Rack}
}

type BrokerConfig struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
	// IsSensitive values are returned without Value.
	IsSensitive *bool `json:"is_sensitive"`
}

type Cluster struct {
	ID         *string         `json:"id"`
	Controller *BrokerSummary  `json:"controller"`
	Brokers    []BrokerSummary `json:"brokers"`
}

type QuotaDetail struct {
	ProducerByteRate *int64 `json:"producer_byte_rate"`
	ConsumerByteRate *int64 `json:"consumer_byte_rate"`
}

type EntityQuotaDetail struct {
	EntityName       string `json:"entity_name" validate:"required"`
	ProducerByteRate *int64 `json:"producer_byte_rate"`
	ConsumerByteRate *int64 `json:"consumer_byte_rate"`
}

type QuotaList struct {
	Data []EntityQuotaDetail `json:"data"`
}

type GroupDetail struct {
	GroupID *string                `json:"group_id"`
	State   *string                `json:"state"`
	Members []Member               `json:"members"`
	Offsets []TopicPartitionOffset `json:"offsets"`
}

type Member struct {
	ConsumerID  *string            `json:"consumer_id"`
	ClientID    *string            `json:"client_id"`
	Host        *string            `json:"host"`
	Assignments []MemberAssignment `json:"assignments"`
}

type MemberAssignment struct {
	Topic     *string `json:"topic"`
	Partition *int64  `json:"partition"`
}

type TopicPartitionOffset struct {
	Topic         *string `json:"topic"`
	Partition     *int64  `json:"partition"`
	CurrentOffset *int64  `json:"current_offset"`
	EndOffset     *int64  `json:"end_offset"`
}

// GroupResetResult is the offset of one partition after a consumer group reset,
// or the offset it would get when the reset was not executed.
type GroupResetResult struct {
	Topic     *string `json:"topic"`
	Partition *int64  `json:"partition"`
	Offset    *int64  `json:"offset"`
}

type MirroringTopicSelection struct {
	Includes []string `json:"includes"`
}

type MirroringActiveTopics struct {
	ActiveTopics []string `json:"active_topics"`
}

// request bodies

type topicCreateRequest struct {
	Name           *string        `json:"name"`
	Partitions     *int64         `json:"partitions"`
	PartitionCount *int64         `json:"partition_count"`
	Configs        []ConfigCreate `json:"configs"`
}

type topicUpdateRequest struct {
	NewTotalPartitionCount *int64         `json:"new_total_partition_count"`
	Configs                []ConfigUpdate `json:"configs"`
}

type recordDeleteRequest struct {
	RecordsToDelete []RecordDelete `json:"records_to_delete"`
}

type groupResetRequest struct {
	Topic   *string          `json:"topic"`
	Mode    *OffsetResetMode `json:"mode"`
	Value   *string          `json:"value"`
	Execute *bool            `json:"execute"`
}
