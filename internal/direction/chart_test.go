package direction

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeConfig(t *testing.T, raw string) ChartConfig {
	t.Helper()
	var cfg ChartConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	return cfg
}

const lineChart = `{
  "type": "line",
  "data": {"labels": ["a", "b"]},
  "options": {
    "responsive": true,
    "plugins": {
      "legend": {"position": "top", "align": "left"},
      "tooltip": {"titleAlign": "right", "bodyAlign": "center"},
      "title": {"display": true}
    },
    "scales": {
      "x": {"position": "bottom"},
      "y": {"position": "left", "beginAtZero": true},
      "y1": {"position": "right"},
      "r": {"display": false}
    }
  }
}`

func TestAdaptChartConfig_LTRIsIdentity(t *testing.T) {
	cfg := decodeConfig(t, lineChart)
	got := ltr().AdaptChartConfig(cfg)

	// same map, not a copy
	got["marker"] = true
	assert.Equal(t, true, cfg["marker"])
}

func TestAdaptChartConfig_Nil(t *testing.T) {
	assert.Nil(t, rtl().AdaptChartConfig(nil))
}

func TestAdaptChartConfig_RTL(t *testing.T) {
	cfg := decodeConfig(t, lineChart)
	before := decodeConfig(t, lineChart)

	got := rtl().AdaptChartConfig(cfg)

	want := decodeConfig(t, `{
  "type": "line",
  "data": {"labels": ["a", "b"]},
  "options": {
    "responsive": true,
    "plugins": {
      "legend": {"position": "top", "align": "end", "rtl": true},
      "tooltip": {"titleAlign": "start", "bodyAlign": "center", "rtl": true},
      "title": {"display": true}
    },
    "scales": {
      "x": {"position": "bottom"},
      "y": {"position": "right", "beginAtZero": true},
      "y1": {"position": "left"},
      "r": {"display": false}
    }
  }
}`)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AdaptChartConfig mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, cfg); diff != "" {
		t.Errorf("input was modified (-before +after):\n%s", diff)
	}
}

func TestAdaptChartConfig_SharesUntouchedBranches(t *testing.T) {
	cfg := decodeConfig(t, lineChart)
	got := rtl().AdaptChartConfig(cfg)

	data := cfg["data"].(map[string]any)
	data["shared"] = true
	assert.Equal(t, true, got["data"].(map[string]any)["shared"])
}

func TestAdaptChartConfig_DoubleFlipRestoresPosition(t *testing.T) {
	cfg := ChartConfig{"options": map[string]any{"scales": map[string]any{"y": map[string]any{"position": "left"}}}}

	once := rtl().AdaptChartConfig(cfg)
	assert.Equal(t, "right", scalePosition(t, once, "y"))

	twice := rtl().AdaptChartConfig(once)
	assert.Equal(t, "left", scalePosition(t, twice, "y"))

	passthrough := ltr().AdaptChartConfig(cfg)
	assert.Equal(t, "left", scalePosition(t, passthrough, "y"))
}

func TestAdaptChartConfig_DefaultsMissingAlignment(t *testing.T) {
	cfg := ChartConfig{"options": map[string]any{"plugins": map[string]any{
		"legend":  map[string]any{},
		"tooltip": map[string]any{"titleAlign": "bogus"},
	}}}

	got := rtl().AdaptChartConfig(cfg)
	plugins := got["options"].(map[string]any)["plugins"].(map[string]any)

	assert.Equal(t, map[string]any{"rtl": true, "align": "start"}, plugins["legend"])
	assert.Equal(t, map[string]any{"rtl": true, "titleAlign": "start", "bodyAlign": "start"}, plugins["tooltip"])
}

func TestAdaptChartConfig_IgnoresUnexpectedShapes(t *testing.T) {
	cfg := ChartConfig{"options": map[string]any{
		"plugins": map[string]any{"legend": false},
		"scales":  map[string]any{"x": "linear", "y": map[string]any{"position": 3}},
	}}

	got := rtl().AdaptChartConfig(cfg)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("unexpected changes (-want +got):\n%s", diff)
	}

	noOptions := ChartConfig{"type": "bar"}
	assert.Equal(t, noOptions, rtl().AdaptChartConfig(noOptions))
}

func scalePosition(t *testing.T, cfg ChartConfig, key string) string {
	t.Helper()
	options, ok := cfg["options"].(map[string]any)
	require.True(t, ok)
	scales, ok := options["scales"].(map[string]any)
	require.True(t, ok)
	scale, ok := scales[key].(map[string]any)
	require.True(t, ok)
	pos, _ := scale["position"].(string)
	return pos
}
