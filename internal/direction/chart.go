package direction

// ChartConfig is a chart configuration object as decoded from JSON. Only
// options.plugins.legend, options.plugins.tooltip and options.scales.* are
// inspected; everything else is carried through untouched.
type ChartConfig = map[string]any

// AdaptChartConfig mirrors a chart configuration for RTL layouts. In LTR,
// or for a nil config, the input is returned as is. Otherwise the result is
// a copy along the adapted paths only; untouched branches are shared with
// the input and the input itself is never modified.
func (a *Adapter) AdaptChartConfig(config ChartConfig) ChartConfig {
	if !a.isRTL || config == nil {
		return config
	}

	out := shallowCopy(config)
	options, ok := config["options"].(map[string]any)
	if !ok {
		return out
	}
	opts := shallowCopy(options)
	out["options"] = opts

	if plugins, ok := options["plugins"].(map[string]any); ok {
		p := shallowCopy(plugins)
		if legend, ok := plugins["legend"].(map[string]any); ok {
			l := shallowCopy(legend)
			l["rtl"] = true
			l["align"] = a.AdaptAlignment(stringField(legend, "align"))
			p["legend"] = l
		}
		if tooltip, ok := plugins["tooltip"].(map[string]any); ok {
			tt := shallowCopy(tooltip)
			tt["rtl"] = true
			tt["titleAlign"] = a.AdaptAlignment(stringField(tooltip, "titleAlign"))
			tt["bodyAlign"] = a.AdaptAlignment(stringField(tooltip, "bodyAlign"))
			p["tooltip"] = tt
		}
		opts["plugins"] = p
	}

	if scales, ok := options["scales"].(map[string]any); ok {
		s := shallowCopy(scales)
		for key, value := range scales {
			scale, ok := value.(map[string]any)
			if !ok {
				continue
			}
			position, ok := scale["position"].(string)
			if !ok {
				continue
			}
			if flipped := a.AdaptScalePosition(position); flipped != position {
				sc := shallowCopy(scale)
				sc["position"] = flipped
				s[key] = sc
			}
		}
		opts["scales"] = s
	}

	return out
}

func shallowCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
