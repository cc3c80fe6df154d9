// Package adminrest is the client of the Event Streams administration REST API.
package adminrest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/core"
)

const DefaultServiceName = "adminrest"

type AdminService struct {
	Service *core.BaseService
}

func NewAdminService(options *core.ServiceOptions) (*AdminService, error) {
	service, err := core.NewBaseService(DefaultServiceName, options)
	if err != nil {
		return nil, err
	}
	return &AdminService{Service: service}, nil
}

// NewFromEnvironment reads ADMINREST_URL, ADMINREST_APIKEY and friends.
func NewFromEnvironment() (*AdminService, error) {
	options, err := core.ConfigFromEnvironment(DefaultServiceName)
	if err != nil {
		return nil, err
	}
	return NewAdminService(options)
}

func (a *AdminService) WithRetries(maxRetries int, maxInterval time.Duration) *AdminService {
	return &AdminService{Service: a.Service.WithRetries(maxRetries, maxInterval)}
}

func (a *AdminService) WithoutRetries() *AdminService {
	return &AdminService{Service: a.Service.WithoutRetries()}
}

// Alive is the health check, success is the 2xx status alone.
func (a *AdminService) Alive(ctx context.Context, options *AliveOptions) (*core.DetailedResponse, error) {
	if options == nil {
		options = &AliveOptions{}
	}
	return a.Service.Invoke(ctx, core.Operation{
		ID:     "alive",
		Method: http.MethodGet,
		Path:   "/alive",
	}, options.CallOptions, nil)
}

// CreateTopic answers 202 without a body on success.
func (a *AdminService) CreateTopic(ctx context.Context, options *CreateTopicOptions) (*core.DetailedResponse, error) {
	if options == nil {
		options = &CreateTopicOptions{}
	}
	return a.Service.Invoke(ctx, core.Operation{
		ID:     "create_topic",
		Method: http.MethodPost,
		Path:   "/admin/topics",
		Body: &topicCreateRequest{
			Name:           options.Name,
			Partitions:     options.Partitions,
			PartitionCount: options.PartitionCount,
			Configs:        options.Configs,
		},
	}, options.CallOptions, nil)
}

func (a *AdminService) ListTopics(ctx context.Context, options *ListTopicsOptions) ([]TopicDetail, *core.DetailedResponse, error) {
	if options == nil {
		options = &ListTopicsOptions{}
	}
	result, response, err := core.InvokeAs[[]TopicDetail](ctx, a.Service, core.Operation{
		ID:     "list_topics",
		Method: http.MethodGet,
		Path:   "/admin/topics",
		Query: []core.QueryParam{
			{Name: "topic_filter", Value: options.TopicFilter},
			{Name: "per_page", Value: options.PerPage},
			{Name: "page", Value: options.Page},
		},
		AcceptJSON: true,
	}, options.CallOptions)
	if result == nil {
		return nil, response, err
	}
	return *result, response, err
}

func (a *AdminService) GetTopic(ctx context.Context, options *GetTopicOptions) (*TopicDetail, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getTopicOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[TopicDetail](ctx, a.Service, core.Operation{
		ID:         "get_topic",
		Method:     http.MethodGet,
		Path:       "/admin/topics/{topic_name}",
		PathParams: map[string]string{"topic_name": *options.TopicName},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (a *AdminService) DeleteTopic(ctx context.Context, options *DeleteTopicOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "deleteTopicOptions"); err != nil {
		return nil, err
	}
	return a.Service.Invoke(ctx, core.Operation{
		ID:         "delete_topic",
		Method:     http.MethodDelete,
		Path:       "/admin/topics/{topic_name}",
		PathParams: map[string]string{"topic_name": *options.TopicName},
	}, options.CallOptions, nil)
}

func (a *AdminService) UpdateTopic(ctx context.Context, options *UpdateTopicOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "updateTopicOptions"); err != nil {
		return nil, err
	}
	return a.Service.Invoke(ctx, core.Operation{
		ID:         "update_topic",
		Method:     http.MethodPatch,
		Path:       "/admin/topics/{topic_name}",
		PathParams: map[string]string{"topic_name": *options.TopicName},
		Body: &topicUpdateRequest{
			NewTotalPartitionCount: options.NewTotalPartitionCount,
			Configs:                options.Configs,
		},
	}, options.CallOptions, nil)
}

func (a *AdminService) DeleteTopicRecords(ctx context.Context, options *DeleteTopicRecordsOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "deleteTopicRecordsOptions"); err != nil {
		return nil, err
	}
	return a.Service.Invoke(ctx, core.Operation{
		ID:         "delete_topic_records",
		Method:     http.MethodDelete,
		Path:       "/admin/topics/{topic_name}/records",
		PathParams: map[string]string{"topic_name": *options.TopicName},
		Body:       &recordDeleteRequest{RecordsToDelete: options.RecordsToDelete},
	}, options.CallOptions, nil)
}

func (a *AdminService) CreateQuota(ctx context.Context, options *QuotaOptions) (*core.DetailedResponse, error) {
	return a.writeQuota(ctx, "create_quota", http.MethodPost, options)
}

func (a *AdminService) UpdateQuota(ctx context.Context, options *QuotaOptions) (*core.DetailedResponse, error) {
	return a.writeQuota(ctx, "update_quota", http.MethodPatch, options)
}

func (a *AdminService) writeQuota(ctx context.Context, operationID, method string, options *QuotaOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "quotaOptions"); err != nil {
		return nil, err
	}
	return a.Service.Invoke(ctx, core.Operation{
		ID:         operationID,
		Method:     method,
		Path:       "/admin/quotas/{entity_name}",
		PathParams: map[string]string{"entity_name": *options.EntityName},
		Body: &QuotaDetail{
			ProducerByteRate: options.ProducerByteRate,
			ConsumerByteRate: options.ConsumerByteRate,
		},
	}, options.CallOptions, nil)
}

func (a *AdminService) DeleteQuota(ctx context.Context, options *QuotaEntityOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "deleteQuotaOptions"); err != nil {
		return nil, err
	}
	return a.Service.Invoke(ctx, core.Operation{
		ID:         "delete_quota",
		Method:     http.MethodDelete,
		Path:       "/admin/quotas/{entity_name}",
		PathParams: map[string]string{"entity_name": *options.EntityName},
	}, options.CallOptions, nil)
}

func (a *AdminService) GetQuota(ctx context.Context, options *QuotaEntityOptions) (*QuotaDetail, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getQuotaOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[QuotaDetail](ctx, a.Service, core.Operation{
		ID:         "get_quota",
		Method:     http.MethodGet,
		Path:       "/admin/quotas/{entity_name}",
		PathParams: map[string]string{"entity_name": *options.EntityName},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (a *AdminService) ListQuotas(ctx context.Context, options *ListQuotasOptions) (*QuotaList, *core.DetailedResponse, error) {
	if options == nil {
		options = &ListQuotasOptions{}
	}
	return core.InvokeAs[QuotaList](ctx, a.Service, core.Operation{
		ID:         "list_quotas",
		Method:     http.MethodGet,
		Path:       "/admin/quotas",
		AcceptJSON: true,
	}, options.CallOptions)
}

func (a *AdminService) ListBrokers(ctx context.Context, options *ListBrokersOptions) ([]BrokerSummary, *core.DetailedResponse, error) {
	if options == nil {
		options = &ListBrokersOptions{}
	}
	result, response, err := core.InvokeAs[[]BrokerSummary](ctx, a.Service, core.Operation{
		ID:         "list_brokers",
		Method:     http.MethodGet,
		Path:       "/admin/brokers",
		AcceptJSON: true,
	}, options.CallOptions)
	if result == nil {
		return nil, response, err
	}
	return *result, response, err
}

func (a *AdminService) GetBroker(ctx context.Context, options *GetBrokerOptions) (*BrokerDetail, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getBrokerOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[BrokerDetail](ctx, a.Service, core.Operation{
		ID:         "get_broker",
		Method:     http.MethodGet,
		Path:       "/admin/brokers/{broker_id}",
		PathParams: map[string]string{"broker_id": strconv.FormatInt(*options.BrokerID, 10)},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (a *AdminService) GetBrokerConfig(ctx context.Context, options *GetBrokerConfigOptions) (*BrokerDetail, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getBrokerConfigOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[BrokerDetail](ctx, a.Service, core.Operation{
		ID:         "get_broker_config",
		Method:     http.MethodGet,
		Path:       "/admin/brokers/{broker_id}/configs",
		PathParams: map[string]string{"broker_id": strconv.FormatInt(*options.BrokerID, 10)},
		Query: []core.QueryParam{
			{Name: "config_filter", Value: options.ConfigFilter},
			{Name: "verbose", Value: options.Verbose},
		},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (a *AdminService) GetCluster(ctx context.Context, options *GetClusterOptions) (*Cluster, *core.DetailedResponse, error) {
	if options == nil {
		options = &GetClusterOptions{}
	}
	return core.InvokeAs[Cluster](ctx, a.Service, core.Operation{
		ID:         "get_cluster",
		Method:     http.MethodGet,
		Path:       "/admin/cluster",
		AcceptJSON: true,
	}, options.CallOptions)
}

// ListConsumerGroups returns group IDs only.
func (a *AdminService) ListConsumerGroups(ctx context.Context, options *ListConsumerGroupsOptions) ([]string, *core.DetailedResponse, error) {
	if options == nil {
		options = &ListConsumerGroupsOptions{}
	}
	result, response, err := core.InvokeAs[[]string](ctx, a.Service, core.Operation{
		ID:     "list_consumer_groups",
		Method: http.MethodGet,
		Path:   "/admin/consumergroups",
		Query: []core.QueryParam{
			{Name: "group_filter", Value: options.GroupFilter},
			{Name: "per_page", Value: options.PerPage},
			{Name: "page", Value: options.Page},
		},
		AcceptJSON: true,
	}, options.CallOptions)
	if result == nil {
		return nil, response, err
	}
	return *result, response, err
}

func (a *AdminService) GetConsumerGroup(ctx context.Context, options *ConsumerGroupOptions) (*GroupDetail, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getConsumerGroupOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[GroupDetail](ctx, a.Service, core.Operation{
		ID:         "get_consumer_group",
		Method:     http.MethodGet,
		Path:       "/admin/consumergroups/{group_id}",
		PathParams: map[string]string{"group_id": *options.GroupID},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (a *AdminService) DeleteConsumerGroup(ctx context.Context, options *ConsumerGroupOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "deleteConsumerGroupOptions"); err != nil {
		return nil, err
	}
	return a.Service.Invoke(ctx, core.Operation{
		ID:         "delete_consumer_group",
		Method:     http.MethodDelete,
		Path:       "/admin/consumergroups/{group_id}",
		PathParams: map[string]string{"group_id": *options.GroupID},
	}, options.CallOptions, nil)
}

// UpdateConsumerGroup resets the group's offsets and returns them in server order.
// With Execute set to false nothing is moved and the result is a preview.
func (a *AdminService) UpdateConsumerGroup(ctx context.Context, options *UpdateConsumerGroupOptions) ([]GroupResetResult, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "updateConsumerGroupOptions"); err != nil {
		return nil, nil, err
	}
	result, response, err := core.InvokeAs[[]GroupResetResult](ctx, a.Service, core.Operation{
		ID:         "update_consumer_group",
		Method:     http.MethodPatch,
		Path:       "/admin/consumergroups/{group_id}",
		PathParams: map[string]string{"group_id": *options.GroupID},
		Body: &groupResetRequest{
			Topic:   options.Topic,
			Mode:    options.Mode,
			Value:   options.Value,
			Execute: options.Execute,
		},
		AcceptJSON: true,
	}, options.CallOptions)
	if result == nil {
		return nil, response, err
	}
	return *result, response, err
}

func (a *AdminService) GetMirroringTopicSelection(ctx context.Context, options *GetMirroringTopicSelectionOptions) (*MirroringTopicSelection, *core.DetailedResponse, error) {
	if options == nil {
		options = &GetMirroringTopicSelectionOptions{}
	}
	return core.InvokeAs[MirroringTopicSelection](ctx, a.Service, core.Operation{
		ID:         "get_mirroring_topic_selection",
		Method:     http.MethodGet,
		Path:       "/admin/mirroring/topic-selection",
		AcceptJSON: true,
	}, options.CallOptions)
}

// ReplaceMirroringTopicSelection overwrites the complete set of include patterns.
func (a *AdminService) ReplaceMirroringTopicSelection(ctx context.Context, options *ReplaceMirroringTopicSelectionOptions) (*MirroringTopicSelection, *core.DetailedResponse, error) {
	if options == nil {
		options = &ReplaceMirroringTopicSelectionOptions{}
	}
	return core.InvokeAs[MirroringTopicSelection](ctx, a.Service, core.Operation{
		ID:         "replace_mirroring_topic_selection",
		Method:     http.MethodPost,
		Path:       "/admin/mirroring/topic-selection",
		Body:       &MirroringTopicSelection{Includes: options.Includes},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (a *AdminService) GetMirroringActiveTopics(ctx context.Context, options *GetMirroringActiveTopicsOptions) (*MirroringActiveTopics, *core.DetailedResponse, error) {
	if options == nil {
		options = &GetMirroringActiveTopicsOptions{}
	}
	return core.InvokeAs[MirroringActiveTopics](ctx, a.Service, core.Operation{
		ID:         "get_mirroring_active_topics",
		Method:     http.MethodGet,
		Path:       "/admin/mirroring/active-topics",
		AcceptJSON: true,
	}, options.CallOptions)
}
