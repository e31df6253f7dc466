package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	body := `{
		"requestParameters": {"bucketName": "logs-prod"},
		"responseElements": null,
		"readOnly": false,
		"itemCount": 3,
		"items": ["a", "b"]
	}`

	v, err := ParseValue([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, KindMap, v.Kind())

	params, ok := v.Field("requestParameters")
	require.True(t, ok)
	name, ok := params.Field("bucketName")
	require.True(t, ok)
	text, ok := name.Text()
	require.True(t, ok)
	assert.Equal(t, "logs-prod", text)

	resp, ok := v.Field("responseElements")
	require.True(t, ok)
	assert.True(t, resp.IsNull())

	ro, ok := v.Field("readOnly")
	require.True(t, ok)
	text, ok = ro.Text()
	require.True(t, ok)
	assert.Equal(t, "false", text)

	count, ok := v.Field("itemCount")
	require.True(t, ok)
	text, ok = count.Text()
	require.True(t, ok)
	assert.Equal(t, "3", text)

	items, ok := v.Field("items")
	require.True(t, ok)
	assert.Equal(t, 2, items.Len())
}

func TestParseValue_Invalid(t *testing.T) {
	_, err := ParseValue([]byte(`{not json`))
	assert.Error(t, err)
}

func TestValue_Navigation(t *testing.T) {
	v := Map(map[string]Value{
		"list": List(String("x"), String("y")),
		"name": String("web"),
	})

	t.Run("missing key", func(t *testing.T) {
		_, ok := v.Field("absent")
		assert.False(t, ok)
	})

	t.Run("field on non-map", func(t *testing.T) {
		_, ok := String("x").Field("key")
		assert.False(t, ok)
	})

	t.Run("index in range", func(t *testing.T) {
		list, _ := v.Field("list")
		item, ok := list.Index(1)
		require.True(t, ok)
		text, _ := item.Text()
		assert.Equal(t, "y", text)
	})

	t.Run("index out of range", func(t *testing.T) {
		list, _ := v.Field("list")
		_, ok := list.Index(2)
		assert.False(t, ok)
		_, ok = list.Index(-1)
		assert.False(t, ok)
	})

	t.Run("items on non-list", func(t *testing.T) {
		assert.Nil(t, v.Items())
	})
}

func TestValue_Text(t *testing.T) {
	t.Run("empty string is a miss", func(t *testing.T) {
		_, ok := String("").Text()
		assert.False(t, ok)
	})

	t.Run("integral number has no decimals", func(t *testing.T) {
		text, ok := Number(42).Text()
		require.True(t, ok)
		assert.Equal(t, "42", text)
	})

	t.Run("null and containers are misses", func(t *testing.T) {
		_, ok := Null.Text()
		assert.False(t, ok)
		_, ok = List(String("a")).Text()
		assert.False(t, ok)
		_, ok = Map(nil).Text()
		assert.False(t, ok)
	})
}

func TestRawEvent_ParseBody(t *testing.T) {
	ev := RawEvent{ID: "ev-1", Name: "CreateBucket"}

	ev, err := ev.ParseBody([]byte(`{
		"eventSource": "s3.amazonaws.com",
		"awsRegion": "eu-west-1",
		"requestParameters": {"bucketName": "logs-prod"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "s3.amazonaws.com", ev.Source)
	assert.Equal(t, "eu-west-1", ev.Region)

	params := ev.Section(RequestParameters)
	name, ok := params.Field("bucketName")
	require.True(t, ok)
	text, _ := name.Text()
	assert.Equal(t, "logs-prod", text)
}

func TestRawEvent_ParseBody_KeepsExistingSource(t *testing.T) {
	ev := RawEvent{Name: "CreateCluster", Source: "eks.amazonaws.com"}

	ev, err := ev.ParseBody([]byte(`{"eventSource": "ecs.amazonaws.com"}`))
	require.NoError(t, err)
	assert.Equal(t, "eks.amazonaws.com", ev.Source)
}

func TestRawEvent_MissingSection(t *testing.T) {
	ev := RawEvent{Name: "CreateBucket"}
	ev, err := ev.ParseBody([]byte(`{"eventSource": "s3.amazonaws.com"}`))
	require.NoError(t, err)

	assert.True(t, ev.Section(ResponseElements).IsNull())
}
