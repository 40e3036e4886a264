package direction

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
)

func ltr() *Adapter { return NewAdapter("en", i18n.LTR) }
func rtl() *Adapter { return NewAdapter("fa", i18n.RTL) }

func TestNewAdapter(t *testing.T) {
	a := NewAdapter("ar", i18n.RTL)
	assert.True(t, a.IsRTL())
	assert.Equal(t, i18n.RTL, a.Direction())
	assert.Equal(t, "ar", a.Language())

	b := NewAdapter("en", "sideways")
	assert.False(t, b.IsRTL())
	assert.Equal(t, i18n.LTR, b.Direction())
}

func TestForLanguage(t *testing.T) {
	for _, code := range []string{"fa", "ar", "he", "ur", "en", "de", "zh", "xyz", "ar-EG"} {
		assert.Equal(t, i18n.IsRTL(code), ForLanguage(code).IsRTL(), code)
	}
}

func TestAdaptClass(t *testing.T) {
	tests := []struct {
		in      string
		wantLTR string
		wantRTL string
	}{
		{"ml-4", "ms-4", "me-4"},
		{"mr-4", "me-4", "ms-4"},
		{"pl-2", "ps-2", "pe-2"},
		{"pr-2", "pe-2", "ps-2"},
		{"ml-auto", "ms-auto", "me-auto"},
		{"border-l", "border-s", "border-e"},
		{"border-l-2", "border-s-2", "border-e-2"},
		{"border-r-4", "border-e-4", "border-s-4"},
		{"left-0", "start-0", "end-0"},
		{"right-1/2", "end-1/2", "start-1/2"},
		{"text-left", "text-start", "text-end"},
		{"text-right", "text-end", "text-start"},
		{"justify-start", "justify-start", "justify-end"},
		{"justify-end", "justify-end", "justify-start"},
		{"rounded-l", "rounded-s", "rounded-e"},
		{"rounded-l-md", "rounded-s-md", "rounded-e-md"},
		{"rounded-r-lg", "rounded-e-lg", "rounded-s-lg"},
		{"md:ml-4", "md:ms-4", "md:me-4"},
		{"hover:md:text-left", "hover:md:text-start", "hover:md:text-end"},
		// pass-through
		{"flex-wrap", "flex-wrap", "flex-wrap"},
		{"bg-red-500", "bg-red-500", "bg-red-500"},
		{"border-lime-500", "border-lime-500", "border-lime-500"},
		{"border-red-500", "border-red-500", "border-red-500"},
		{"rounded-lg", "rounded-lg", "rounded-lg"},
		{"text-leftish", "text-leftish", "text-leftish"},
		{"-ml-4", "-ml-4", "-ml-4"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.wantLTR, ltr().AdaptClass(tt.in), "ltr")
			assert.Equal(t, tt.wantRTL, rtl().AdaptClass(tt.in), "rtl")
		})
	}
}

func TestAdaptClass_LogicalStartSymmetry(t *testing.T) {
	assert.Equal(t, "ms-4", ltr().AdaptClass("ml-4"))
	assert.Equal(t, "ms-4", rtl().AdaptClass("mr-4"))
}

func TestLayoutClasses(t *testing.T) {
	t.Run("RTL adapts and appends marker", func(t *testing.T) {
		got := rtl().LayoutClasses("ml-2 mr-4 text-left")
		assert.Equal(t, []string{"me-2", "ms-4", "text-end", "rtl"}, strings.Fields(got))
	})

	t.Run("LTR marker", func(t *testing.T) {
		assert.Equal(t, "ms-2 flex ltr", ltr().LayoutClasses("ml-2 flex"))
	})

	t.Run("empty input yields only the marker", func(t *testing.T) {
		assert.Equal(t, "ltr", ltr().LayoutClasses(""))
		assert.Equal(t, "rtl", rtl().LayoutClasses("   "))
	})

	t.Run("token count is input plus one", func(t *testing.T) {
		in := "p-4  ml-2\tborder-l-2\nbg-red-500 flex-wrap"
		got := rtl().LayoutClasses(in)
		assert.Len(t, strings.Fields(got), len(strings.Fields(in))+1)
	})

	t.Run("unknown classes are unchanged in both directions", func(t *testing.T) {
		assert.Equal(t, "flex-wrap bg-red-500 ltr", ltr().LayoutClasses("flex-wrap bg-red-500"))
		assert.Equal(t, "flex-wrap bg-red-500 rtl", rtl().LayoutClasses("flex-wrap bg-red-500"))
	})
}

func TestPhysicalClasses(t *testing.T) {
	got := PhysicalClasses("ml-2 ms-2 justify-start text-right flex md:pl-4 rounded-lg")
	assert.Equal(t, []string{"ml-2", "text-right", "md:pl-4"}, got)
	assert.Empty(t, PhysicalClasses("flex gap-2"))
}

func TestFlexDirection(t *testing.T) {
	assert.Equal(t, "flex-col", ltr().FlexDirection("column"))
	assert.Equal(t, "flex-col", rtl().FlexDirection("column"))
	assert.Equal(t, "flex-row", ltr().FlexDirection("row"))
	assert.Equal(t, "flex-row-reverse", rtl().FlexDirection("row"))
	assert.Equal(t, "flex-row", ltr().FlexDirection(""))
}

func TestTextAlign(t *testing.T) {
	tests := []struct {
		align   string
		wantLTR string
		wantRTL string
	}{
		{"left", "text-start", "text-end"},
		{"right", "text-end", "text-start"},
		{"center", "text-center", "text-center"},
		{"justify", "text-start", "text-start"},
	}
	for _, tt := range tests {
		t.Run(tt.align, func(t *testing.T) {
			assert.Equal(t, tt.wantLTR, ltr().TextAlign(tt.align))
			assert.Equal(t, tt.wantRTL, rtl().TextAlign(tt.align))
		})
	}

	assert.Equal(t, rtl().TextAlign("left"), ltr().TextAlign("right"))
}

func TestMarginPadding(t *testing.T) {
	tests := []struct {
		name     string
		adapter  *Adapter
		property string
		value    string
		want     map[string]string
	}{
		{"margin-left LTR", ltr(), "margin-left", "10px",
			map[string]string{"margin-inline-start": "10px", "margin-inline-end": "0"}},
		{"margin-left RTL", rtl(), "margin-left", "10px",
			map[string]string{"margin-inline-start": "0", "margin-inline-end": "10px"}},
		{"padding-right LTR", ltr(), "padding-right", "1rem",
			map[string]string{"padding-inline-start": "0", "padding-inline-end": "1rem"}},
		{"padding-right RTL", rtl(), "padding-right", "1rem",
			map[string]string{"padding-inline-start": "1rem", "padding-inline-end": "0"}},
		{"bare left", ltr(), "left", "0",
			map[string]string{"inset-inline-start": "0", "inset-inline-end": "0"}},
		{"non-directional", rtl(), "margin-top", "4px",
			map[string]string{"margin-top": "4px"}},
		{"side in the middle LTR", ltr(), "border-left-width", "2px",
			map[string]string{"border-inline-start-width": "2px", "border-inline-end-width": "0"}},
		{"side in the middle RTL", rtl(), "border-right-color", "red",
			map[string]string{"border-inline-start-color": "red", "border-inline-end-color": "0"}},
		{"multi-word prefix", rtl(), "scroll-margin-left", "8px",
			map[string]string{"scroll-margin-inline-start": "0", "scroll-margin-inline-end": "8px"}},
		{"bare right RTL", rtl(), "right", "0",
			map[string]string{"inset-inline-start": "0", "inset-inline-end": "0"}},
		{"side without separator", ltr(), "paddingleft", "1px",
			map[string]string{"padding-inline-start": "1px", "padding-inline-end": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.adapter.MarginPadding(tt.property, tt.value))
		})
	}
}

func TestMarginPadding_ExactlyOneSideGetsValue(t *testing.T) {
	for _, a := range []*Adapter{ltr(), rtl()} {
		for _, prop := range []string{"margin-left", "margin-right", "padding-left", "padding-right", "border-left-width", "scroll-padding-right"} {
			got := a.MarginPadding(prop, "3px")
			require.Len(t, got, 2)
			var withValue, zero int
			for _, v := range got {
				switch v {
				case "3px":
					withValue++
				case "0":
					zero++
				}
			}
			assert.Equal(t, 1, withValue, "%s %s", a.Direction(), prop)
			assert.Equal(t, 1, zero, "%s %s", a.Direction(), prop)
		}
	}
}

func TestAdaptAlignment(t *testing.T) {
	tests := []struct {
		in      string
		wantLTR string
		wantRTL string
	}{
		{"left", "start", "end"},
		{"start", "start", "end"},
		{"right", "end", "start"},
		{"end", "end", "start"},
		{"center", "center", "center"},
		{"", "start", "start"},
		{"middle", "start", "start"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.wantLTR, ltr().AdaptAlignment(tt.in))
			assert.Equal(t, tt.wantRTL, rtl().AdaptAlignment(tt.in))
		})
	}
}

func TestAdaptScalePosition(t *testing.T) {
	assert.Equal(t, "right", rtl().AdaptScalePosition("left"))
	assert.Equal(t, "left", rtl().AdaptScalePosition("right"))
	assert.Equal(t, "top", rtl().AdaptScalePosition("top"))
	assert.Equal(t, "left", ltr().AdaptScalePosition("left"))
	assert.Equal(t, "right", ltr().AdaptScalePosition("right"))
}

func TestDirectionalClasses(t *testing.T) {
	tests := []struct {
		component string
		wantLTR   string
		wantRTL   string
	}{
		{"sidebar", "sidebar-ltr end-0", "sidebar-rtl start-0"},
		{"dropdown", "dropdown-ltr start-0", "dropdown-rtl end-0"},
		{"modal", "modal-ltr text-start", "modal-rtl text-end"},
		{"card", "card-ltr", "card-rtl"},
	}
	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			assert.Equal(t, tt.wantLTR, ltr().DirectionalClasses(tt.component))
			assert.Equal(t, tt.wantRTL, rtl().DirectionalClasses(tt.component))
		})
	}
}

func TestIconClasses(t *testing.T) {
	assert.Equal(t, "btn-icon-start-ltr", ltr().IconClasses(""))
	assert.Equal(t, "btn-icon-start-rtl", rtl().IconClasses("start"))
	assert.Equal(t, "btn-icon-end-rtl", rtl().IconClasses("end"))
}

func TestWithRules(t *testing.T) {
	a := ForLanguage("he", WithRules(
		Rule{Pattern: "float-left", Match: MatchExact, LTR: "float-start", RTL: "float-end"},
		Rule{Pattern: "ml-px", Match: MatchExact, LTR: "ms-px", RTL: "me-0.5"},
	))

	assert.Equal(t, "float-end", a.AdaptClass("float-left"))
	assert.Equal(t, "me-0.5", a.AdaptClass("ml-px"), "longer pattern wins")
	assert.Equal(t, "me-2", a.AdaptClass("ml-2"))

	// default adapters are not affected
	assert.Equal(t, "float-left", ForLanguage("he").AdaptClass("float-left"))
}

func TestAdapterConcurrentUse(t *testing.T) {
	a := rtl()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "me-2 rtl", a.LayoutClasses("ml-2"))
		}()
	}
	wg.Wait()
}
