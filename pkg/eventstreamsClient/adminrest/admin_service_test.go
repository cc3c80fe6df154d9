package adminrest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/matryer/is"
	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/core"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func initZAP() {
	logger, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(logger)
}

func TestMain(m *testing.M) {
	initZAP()
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

type seenRequest struct {
	method string
	query  map[string][]string
	body   string
}

// capture records the last request a handler saw.
type capture struct {
	calls int32

	mu   sync.Mutex
	last seenRequest
}

func (c *capture) request() seenRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *capture) handler(status int, response string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&c.calls, 1)
		b, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.last = seenRequest{method: r.Method, query: r.URL.Query(), body: string(b)}
		c.mu.Unlock()

		if response != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}
}

func newTestAdmin(t *testing.T, router *mux.Router) *AdminService {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	authenticator, err := core.NewAPIKeyAuthenticator("my-api-key")
	if err != nil {
		t.Fatalf("creating authenticator: %v", err)
	}
	service, err := NewAdminService(&core.ServiceOptions{
		URL:           server.URL,
		Authenticator: authenticator,
	})
	if err != nil {
		t.Fatalf("creating admin service: %v", err)
	}
	return service
}

const topicJSON = `{
	"name": "orders",
	"partitions": 10,
	"replicationFactor": 3,
	"retentionMs": 86400000,
	"cleanupPolicy": "delete",
	"configs": {"retention.bytes": "1073741824", "segment.index.bytes": "10485760"},
	"replicaAssignments": [{"id": 0, "brokers": {"replicas": [0, 1, 2]}}]
}`

func TestAdminService_Alive(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/alive", c.handler(http.StatusOK, "")).Methods(http.MethodGet)

	response, err := newTestAdmin(t, router).Alive(context.Background(), nil)
	is.NoErr(err)
	is.Equal(response.StatusCode, http.StatusOK)
}

func TestAdminService_CreateTopic(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/topics", c.handler(http.StatusAccepted, "")).Methods(http.MethodPost)

	response, err := newTestAdmin(t, router).CreateTopic(context.Background(), &CreateTopicOptions{
		Name:           core.StringPtr("orders"),
		PartitionCount: core.Int64Ptr(1),
		Configs:        []ConfigCreate{},
	})
	is.NoErr(err)
	is.Equal(response.StatusCode, http.StatusAccepted)
	is.Equal(response.Result, nil)
	is.Equal(c.request().body, `{"name":"orders","partition_count":1,"configs":[]}`)
}

func TestAdminService_GetTopic(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/topics/{topic_name}", c.handler(http.StatusOK, topicJSON)).Methods(http.MethodGet)

	topic, response, err := newTestAdmin(t, router).GetTopic(context.Background(), NewGetTopicOptions("orders"))
	is.NoErr(err)
	is.Equal(response.StatusCode, http.StatusOK)

	want := &TopicDetail{
		Name:              core.StringPtr("orders"),
		Partitions:        core.Int64Ptr(10),
		ReplicationFactor: core.Int64Ptr(3),
		RetentionMs:       core.Int64Ptr(86400000),
		CleanupPolicy:     core.StringPtr("delete"),
		Configs: &TopicConfigs{
			RetentionBytes:    core.StringPtr("1073741824"),
			SegmentIndexBytes: core.StringPtr("10485760"),
		},
		ReplicaAssignments: []ReplicaAssignment{{
			ID:      core.Int64Ptr(0),
			Brokers: &ReplicaBrokers{Replicas: []int64{0, 1, 2}},
		}},
	}
	if diff := cmp.Diff(want, topic); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAdminService_GetTopicAbsentOptionals(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/topics/{topic_name}", c.handler(http.StatusOK, `{"name":"orders","partitions":1}`))

	topic, _, err := newTestAdmin(t, router).GetTopic(context.Background(), NewGetTopicOptions("orders"))
	is.NoErr(err)
	is.Equal(*topic.Name, "orders")
	is.True(topic.Configs == nil)
	is.True(topic.ReplicaAssignments == nil)
	is.True(topic.CleanupPolicy == nil)
}

func TestAdminService_RequiredParametersSkipNetwork(t *testing.T) {
	var c capture
	router := mux.NewRouter()
	router.PathPrefix("/").HandlerFunc(c.handler(http.StatusOK, "{}"))
	admin := newTestAdmin(t, router)
	ctx := context.Background()

	testCases := []struct {
		name string
		call func() error
	}{{
		name: "get topic nil options",
		call: func() error { _, _, err := admin.GetTopic(ctx, nil); return err },
	}, {
		name: "get topic empty name",
		call: func() error { _, _, err := admin.GetTopic(ctx, NewGetTopicOptions("")); return err },
	}, {
		name: "delete topic",
		call: func() error { _, err := admin.DeleteTopic(ctx, &DeleteTopicOptions{}); return err },
	}, {
		name: "update quota",
		call: func() error { _, err := admin.UpdateQuota(ctx, &QuotaOptions{ProducerByteRate: core.Int64Ptr(1)}); return err },
	}, {
		name: "get broker",
		call: func() error { _, _, err := admin.GetBroker(ctx, &GetBrokerOptions{}); return err },
	}, {
		name: "update consumer group",
		call: func() error { _, _, err := admin.UpdateConsumerGroup(ctx, &UpdateConsumerGroupOptions{}); return err },
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)

			err := tc.call()
			var validationErr *core.ValidationError
			is.True(errors.As(err, &validationErr))
			var missing *core.MissingParameterError
			is.True(errors.As(err, &missing))
		})
	}
	if calls := atomic.LoadInt32(&c.calls); calls != 0 {
		t.Fatalf("expected no requests, got %d", calls)
	}
}

func TestAdminService_ListTopics(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/topics", c.handler(http.StatusOK, "["+topicJSON+"]")).Methods(http.MethodGet)

	topics, _, err := newTestAdmin(t, router).ListTopics(context.Background(), &ListTopicsOptions{
		TopicFilter: core.StringPtr("orders*"),
		PerPage:     core.Int64Ptr(50),
	})
	is.NoErr(err)
	is.Equal(len(topics), 1)
	is.Equal(*topics[0].Configs.SegmentIndexBytes, "10485760")
	is.Equal(c.request().query["topic_filter"], []string{"orders*"})
	is.Equal(c.request().query["per_page"], []string{"50"})
	_, ok := c.request().query["page"]
	is.True(!ok)
}

func TestAdminService_UpdateTopic(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/topics/{topic_name}", c.handler(http.StatusAccepted, "")).Methods(http.MethodPatch)

	options := NewUpdateTopicOptions("orders")
	options.NewTotalPartitionCount = core.Int64Ptr(4)
	options.Configs = []ConfigUpdate{
		{Name: core.StringPtr("retention.ms"), ResetToDefault: core.BoolPtr(true)},
	}
	_, err := newTestAdmin(t, router).UpdateTopic(context.Background(), options)
	is.NoErr(err)
	is.Equal(c.request().body, `{"new_total_partition_count":4,"configs":[{"name":"retention.ms","reset_to_default":true}]}`)
}

func TestAdminService_DeleteTopicRecords(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/topics/{topic_name}/records", c.handler(http.StatusAccepted, "")).Methods(http.MethodDelete)

	options := NewDeleteTopicRecordsOptions("orders")
	options.RecordsToDelete = []RecordDelete{{Partition: core.Int64Ptr(0), BeforeOffset: core.Int64Ptr(42)}}
	_, err := newTestAdmin(t, router).DeleteTopicRecords(context.Background(), options)
	is.NoErr(err)
	is.Equal(c.request().body, `{"records_to_delete":[{"partition":0,"before_offset":42}]}`)
}

func TestAdminService_Quotas(t *testing.T) {
	is := is.New(t)

	var write, list capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/quotas/{entity_name}", write.handler(http.StatusCreated, "")).Methods(http.MethodPost, http.MethodPatch)
	router.HandleFunc("/admin/quotas", list.handler(http.StatusOK,
		`{"data":[{"entity_name":"default","producer_byte_rate":1024},{"entity_name":"iam-ServiceId-1","consumer_byte_rate":2048}]}`))
	admin := newTestAdmin(t, router)
	ctx := context.Background()

	options := NewQuotaOptions("default")
	options.ProducerByteRate = core.Int64Ptr(1024)
	_, err := admin.CreateQuota(ctx, options)
	is.NoErr(err)
	is.Equal(write.request().method, http.MethodPost)
	is.Equal(write.request().body, `{"producer_byte_rate":1024}`)

	_, err = admin.UpdateQuota(ctx, options)
	is.NoErr(err)
	is.Equal(write.request().method, http.MethodPatch)

	quotas, _, err := admin.ListQuotas(ctx, nil)
	is.NoErr(err)
	want := &QuotaList{Data: []EntityQuotaDetail{
		{EntityName: "default", ProducerByteRate: core.Int64Ptr(1024)},
		{EntityName: "iam-ServiceId-1", ConsumerByteRate: core.Int64Ptr(2048)},
	}}
	if diff := cmp.Diff(want, quotas); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAdminService_ListQuotasMissingEntityName(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/quotas", c.handler(http.StatusOK, `{"data":[{"producer_byte_rate":1024}]}`))

	quotas, response, err := newTestAdmin(t, router).ListQuotas(context.Background(), nil)
	is.True(quotas == nil)
	is.Equal(response.StatusCode, http.StatusOK)

	var missing *core.MissingFieldError
	is.True(errors.As(err, &missing))
	is.Equal(missing.Path, "$.data[0].entity_name")
}

func TestAdminService_GetBrokerConfig(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/brokers/{broker_id}/configs", c.handler(http.StatusOK, `{
		"id": 1,
		"configs": [
			{"name": "log.retention.hours", "value": "168", "is_sensitive": false, "source": "STATIC_BROKER_CONFIG"},
			{"name": "ssl.keystore.password", "is_sensitive": true}
		]
	}`)).Methods(http.MethodGet)

	options := NewGetBrokerConfigOptions(1)
	options.Verbose = core.BoolPtr(true)
	broker, _, err := newTestAdmin(t, router).GetBrokerConfig(context.Background(), options)
	is.NoErr(err)
	is.Equal(c.request().query["verbose"], []string{"true"})
	_, ok := c.request().query["config_filter"]
	is.True(!ok)

	is.Equal(*broker.ID, int64(1))
	is.Equal(len(broker.Configs), 2)
	is.Equal(*broker.Configs[0].Value, "168")
	is.True(*broker.Configs[1].IsSensitive)
	is.True(broker.Configs[1].Value == nil)
}

func TestAdminService_Cluster(t *testing.T) {
	is := is.New(t)

	var brokers, cluster capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/brokers", brokers.handler(http.StatusOK, `[{"id":0,"host":"kafka-0","port":9093,"rack":"a"}]`))
	router.HandleFunc("/admin/cluster", cluster.handler(http.StatusOK,
		`{"id":"cluster-1","controller":{"id":0,"host":"kafka-0","port":9093},"brokers":[{"id":0,"host":"kafka-0","port":9093}]}`))
	admin := newTestAdmin(t, router)

	list, _, err := admin.ListBrokers(context.Background(), nil)
	is.NoErr(err)
	is.Equal(*list[0].Rack, "a")

	detail, _, err := admin.GetCluster(context.Background(), nil)
	is.NoErr(err)
	is.Equal(*detail.ID, "cluster-1")
	is.Equal(*detail.Controller.Host, "kafka-0")
	is.Equal(*detail.Brokers[0].Port, int64(9093))
}

func TestAdminService_GetBroker(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/brokers/{broker_id}", c.handler(http.StatusOK,
		`{"id":2,"host":"kafka-2","port":9093,"rack":"c","configs":[{"name":"broker.rack","value":"c","is_sensitive":false}]}`))

	broker, _, err := newTestAdmin(t, router).GetBroker(context.Background(), NewGetBrokerOptions(2))
	is.NoErr(err)
	is.Equal(len(broker.Configs), 1)

	want := BrokerSummary{
		ID:   core.Int64Ptr(2),
		Host: core.StringPtr("kafka-2"),
		Port: core.Int64Ptr(9093),
		Rack: core.StringPtr("c"),
	}
	if diff := cmp.Diff(want, broker.Summary()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAdminService_UpdateConsumerGroupDryRun(t *testing.T) {
	is := is.New(t)

	var c capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/consumergroups/{group_id}", c.handler(http.StatusOK, `[
		{"topic": "orders", "partition": 1, "offset": 0},
		{"topic": "orders", "partition": 0, "offset": 0}
	]`)).Methods(http.MethodPatch)

	earliest := OffsetResetEarliest
	options := NewUpdateConsumerGroupOptions("billing")
	options.Topic = core.StringPtr("orders")
	options.Mode = &earliest
	options.Execute = core.BoolPtr(false)

	results, _, err := newTestAdmin(t, router).UpdateConsumerGroup(context.Background(), options)
	is.NoErr(err)
	is.Equal(c.request().body, `{"topic":"orders","mode":"earliest","execute":false}`)

	want := []GroupResetResult{
		{Topic: core.StringPtr("orders"), Partition: core.Int64Ptr(1), Offset: core.Int64Ptr(0)},
		{Topic: core.StringPtr("orders"), Partition: core.Int64Ptr(0), Offset: core.Int64Ptr(0)},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAdminService_ConsumerGroups(t *testing.T) {
	is := is.New(t)

	var list, get, del capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/consumergroups", list.handler(http.StatusOK, `["billing","audit"]`)).Methods(http.MethodGet)
	router.HandleFunc("/admin/consumergroups/{group_id}", get.handler(http.StatusOK, `{
		"group_id": "billing",
		"state": "Stable",
		"members": [{"consumer_id": "c-1", "client_id": "app", "host": "/10.0.0.1", "assignments": [{"topic": "orders", "partition": 0}]}],
		"offsets": [{"topic": "orders", "partition": 0, "current_offset": 5, "end_offset": 9}]
	}`)).Methods(http.MethodGet)
	router.HandleFunc("/admin/consumergroups/{group_id}", del.handler(http.StatusAccepted, "")).Methods(http.MethodDelete)
	admin := newTestAdmin(t, router)
	ctx := context.Background()

	groups, _, err := admin.ListConsumerGroups(ctx, &ListConsumerGroupsOptions{GroupFilter: core.StringPtr("b*")})
	is.NoErr(err)
	is.Equal(groups, []string{"billing", "audit"})
	is.Equal(list.request().query["group_filter"], []string{"b*"})

	group, _, err := admin.GetConsumerGroup(ctx, NewConsumerGroupOptions("billing"))
	is.NoErr(err)
	is.Equal(*group.State, "Stable")
	is.Equal(*group.Members[0].Assignments[0].Topic, "orders")
	is.Equal(*group.Offsets[0].EndOffset, int64(9))

	response, err := admin.DeleteConsumerGroup(ctx, NewConsumerGroupOptions("billing"))
	is.NoErr(err)
	is.Equal(response.StatusCode, http.StatusAccepted)
}

func TestAdminService_Mirroring(t *testing.T) {
	is := is.New(t)

	var selection, active capture
	router := mux.NewRouter()
	router.HandleFunc("/admin/mirroring/topic-selection", selection.handler(http.StatusOK, `{"includes":["orders.*"]}`)).
		Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/admin/mirroring/active-topics", active.handler(http.StatusOK, `{"active_topics":["orders.eu"]}`))
	admin := newTestAdmin(t, router)
	ctx := context.Background()

	replaced, _, err := admin.ReplaceMirroringTopicSelection(ctx, &ReplaceMirroringTopicSelectionOptions{
		Includes: []string{"orders.*"},
	})
	is.NoErr(err)
	is.Equal(selection.request().method, http.MethodPost)
	is.Equal(selection.request().body, `{"includes":["orders.*"]}`)
	is.Equal(replaced.Includes, []string{"orders.*"})

	current, _, err := admin.GetMirroringTopicSelection(ctx, nil)
	is.NoErr(err)
	is.Equal(current.Includes, []string{"orders.*"})

	topics, _, err := admin.GetMirroringActiveTopics(ctx, nil)
	is.NoErr(err)
	is.Equal(topics.ActiveTopics, []string{"orders.eu"})
}

func TestAdminService_WithRetries(t *testing.T) {
	is := is.New(t)

	var calls int32
	router := mux.NewRouter()
	router.HandleFunc("/admin/topics/{topic_name}", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, topicJSON)
	})
	admin := newTestAdmin(t, router)

	_, _, err := admin.GetTopic(context.Background(), NewGetTopicOptions("orders"))
	is.Equal(core.StatusCode(err), http.StatusServiceUnavailable)

	retrying := admin.WithRetries(2, 10*time.Millisecond)
	topic, _, err := retrying.GetTopic(context.Background(), NewGetTopicOptions("orders"))
	is.NoErr(err)
	is.Equal(*topic.Name, "orders")
	is.True(!admin.Service.RetriesEnabled())
	is.True(!retrying.WithoutRetries().Service.RetriesEnabled())
}

func TestNewFromEnvironment(t *testing.T) {
	is := is.New(t)

	t.Setenv("ADMINREST_URL", "https://es.example.com")
	t.Setenv("ADMINREST_APIKEY", "my-api-key")

	admin, err := NewFromEnvironment()
	is.NoErr(err)
	is.Equal(admin.Service.ServiceURL(), "https://es.example.com")
	is.Equal(admin.Service.Name(), DefaultServiceName)
}
