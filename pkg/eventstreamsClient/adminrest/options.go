package adminrest

import (
	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/core"
)

// OffsetResetMode selects where UpdateConsumerGroup moves the offsets.
type OffsetResetMode string

const (
	OffsetResetEarliest OffsetResetMode = "earliest"
	OffsetResetLatest   OffsetResetMode = "latest"
	// OffsetResetDatetime needs a timestamp in UpdateConsumerGroupOptions.Value.
	OffsetResetDatetime OffsetResetMode = "datetime"
)

type AliveOptions struct {
	core.CallOptions
}

type CreateTopicOptions struct {
	Name       *string `json:"name"`
	Partitions *int64  `json:"partitions"`
	// PartitionCount takes precedence over Partitions on the server, defaults to 1.
	PartitionCount *int64         `json:"partition_count"`
	Configs        []ConfigCreate `json:"configs"`
	core.CallOptions
}

// ListTopicsOptions.TopicFilter accepts a glob with '*' wildcards ("topic-name*")
// or a regular expression between slashes ("/topic-name.*/"). It is passed
// through as is.
type ListTopicsOptions struct {
	TopicFilter *string `json:"topic_filter"`
	PerPage     *int64  `json:"per_page"`
	// Page starts at 1.
	Page *int64 `json:"page"`
	core.CallOptions
}

type GetTopicOptions struct {
	TopicName *string `json:"topic_name" validate:"required,nonempty"`
	core.CallOptions
}

func NewGetTopicOptions(topicName string) *GetTopicOptions {
	return &GetTopicOptions{TopicName: core.StringPtr(topicName)}
}

type DeleteTopicOptions struct {
	TopicName *string `json:"topic_name" validate:"required,nonempty"`
	core.CallOptions
}

func NewDeleteTopicOptions(topicName string) *DeleteTopicOptions {
	return &DeleteTopicOptions{TopicName: core.StringPtr(topicName)}
}

// UpdateTopicOptions.NewTotalPartitionCount may only grow, which the server enforces.
type UpdateTopicOptions struct {
	TopicName              *string        `json:"topic_name" validate:"required,nonempty"`
	NewTotalPartitionCount *int64         `json:"new_total_partition_count"`
	Configs                []ConfigUpdate `json:"configs"`
	core.CallOptions
}

func NewUpdateTopicOptions(topicName string) *UpdateTopicOptions {
	return &UpdateTopicOptions{TopicName: core.StringPtr(topicName)}
}

type DeleteTopicRecordsOptions struct {
	TopicName       *string        `json:"topic_name" validate:"required,nonempty"`
	RecordsToDelete []RecordDelete `json:"records_to_delete"`
	core.CallOptions
}

func NewDeleteTopicRecordsOptions(topicName string) *DeleteTopicRecordsOptions {
	return &DeleteTopicRecordsOptions{TopicName: core.StringPtr(topicName)}
}

// QuotaOptions is shared by CreateQuota and UpdateQuota. EntityName is either
// "default" or an IAM service ID starting with "iam-ServiceId".
type QuotaOptions struct {
	EntityName       *string `json:"entity_name" validate:"required,nonempty"`
	ProducerByteRate *int64  `json:"producer_byte_rate"`
	ConsumerByteRate *int64  `json:"consumer_byte_rate"`
	core.CallOptions
}

func NewQuotaOptions(entityName string) *QuotaOptions {
	return &QuotaOptions{EntityName: core.StringPtr(entityName)}
}

type QuotaEntityOptions struct {
	EntityName *string `json:"entity_name" validate:"required,nonempty"`
	core.CallOptions
}

func NewQuotaEntityOptions(entityName string) *QuotaEntityOptions {
	return &QuotaEntityOptions{EntityName: core.StringPtr(entityName)}
}

type ListQuotasOptions struct {
	core.CallOptions
}

type ListBrokersOptions struct {
	core.CallOptions
}

type GetBrokerOptions struct {
	BrokerID *int64 `json:"broker_id" validate:"required"`
	core.CallOptions
}

func NewGetBrokerOptions(brokerID int64) *GetBrokerOptions {
	return &GetBrokerOptions{BrokerID: core.Int64Ptr(brokerID)}
}

type GetBrokerConfigOptions struct {
	BrokerID *int64 `json:"broker_id" validate:"required"`
	// ConfigFilter uses the same grammar as ListTopicsOptions.TopicFilter.
	ConfigFilter *string `json:"config_filter"`
	// Verbose adds the source of every config, its scope and whether it is dynamic.
	Verbose *bool `json:"verbose"`
	core.CallOptions
}

func NewGetBrokerConfigOptions(brokerID int64) *GetBrokerConfigOptions {
	return &GetBrokerConfigOptions{BrokerID: core.Int64Ptr(brokerID)}
}

type GetClusterOptions struct {
	core.CallOptions
}

type ListConsumerGroupsOptions struct {
	GroupFilter *string `json:"group_filter"`
	PerPage     *int64  `json:"per_page"`
	Page        *int64  `json:"page"`
	core.CallOptions
}

type ConsumerGroupOptions struct {
	GroupID *string `json:"group_id" validate:"required,nonempty"`
	core.CallOptions
}

func NewConsumerGroupOptions(groupID string) *ConsumerGroupOptions {
	return &ConsumerGroupOptions{GroupID: core.StringPtr(groupID)}
}

type UpdateConsumerGroupOptions struct {
	GroupID *string `json:"group_id" validate:"required,nonempty"`
	// Topic limits the reset to one topic, all topics of the group when nil.
	Topic *string          `json:"topic"`
	Mode  *OffsetResetMode `json:"mode"`
	Value *string          `json:"value"`
	// Execute false previews the resulting offsets without moving them.
	Execute *bool `json:"execute"`
	core.CallOptions
}

func NewUpdateConsumerGroupOptions(groupID string) *UpdateConsumerGroupOptions {
	return &UpdateConsumerGroupOptions{GroupID: core.StringPtr(groupID)}
}

type GetMirroringTopicSelectionOptions struct {
	core.CallOptions
}

// ReplaceMirroringTopicSelectionOptions.Includes replaces the whole selection.
type ReplaceMirroringTopicSelectionOptions struct {
	Includes []string `json:"includes"`
	core.CallOptions
}

type GetMirroringActiveTopicsOptions struct {
	core.CallOptions
}
