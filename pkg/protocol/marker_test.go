package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		marker Marker
		want   bool
	}{
		{
			name:   "well formed pair",
			text:   `before [SCHEDULE_SYNC]{"action":"add"}[/SCHEDULE_SYNC] after`,
			marker: MarkerSync,
			want:   true,
		},
		{
			name:   "missing end sentinel",
			text:   `[SCHEDULE_SYNC]{"action":"add"}`,
			marker: MarkerSync,
			want:   false,
		},
		{
			name:   "end before start",
			text:   `[/SCHEDULE_SYNC]{}[SCHEDULE_SYNC]`,
			marker: MarkerSync,
			want:   false,
		},
		{
			name:   "no markers at all",
			text:   "내일 오후 3시 미팅을 등록했어요!",
			marker: MarkerSync,
			want:   false,
		},
		{
			name:   "wrong pair",
			text:   `[SCHEDULE_DATA][][/SCHEDULE_DATA]`,
			marker: MarkerSync,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text, tt.marker))
		})
	}
}

func TestExtract(t *testing.T) {
	payload, ok := Extract(`hello [SCHEDULE_SYNC] {"action":"delete"} [/SCHEDULE_SYNC] bye`, MarkerSync)
	require.True(t, ok)
	assert.Equal(t, `{"action":"delete"}`, string(payload))
}

func TestExtract_FirstOccurrenceWins(t *testing.T) {
	text := `[SCHEDULE_SYNC]one[/SCHEDULE_SYNC] and [SCHEDULE_SYNC]two[/SCHEDULE_SYNC]`
	payload, ok := Extract(text, MarkerSync)
	require.True(t, ok)
	assert.Equal(t, "one", string(payload))
}

func TestExtract_Malformed(t *testing.T) {
	_, ok := Extract(`[SCHEDULE_SYNC]{"action":"add"}`, MarkerSync)
	assert.False(t, ok)

	_, ok = Extract(`[/SCHEDULE_SYNC]...[SCHEDULE_SYNC]`, MarkerSync)
	assert.False(t, ok)
}

func TestStrip_RoundTrip(t *testing.T) {
	text := "일정을 추가했어요!\n[SCHEDULE_SYNC]{\"action\":\"add\"}[/SCHEDULE_SYNC]\n확인해 보세요."
	assert.Equal(t, "일정을 추가했어요!\n확인해 보세요.", Strip(text, MarkerSync))
}

func TestStrip_NoMarkersIsNoop(t *testing.T) {
	text := "  plain text, spacing preserved  "
	assert.Equal(t, text, Strip(text, MarkerSync))
}

func TestStrip_PayloadOnlyYieldsEmpty(t *testing.T) {
	text := `[SCHEDULE_SYNC]{"action":"full_sync","schedules":[]}[/SCHEDULE_SYNC]`
	assert.Equal(t, "", Strip(text, MarkerSync))
}

func TestStrip_MalformedRegionUntouched(t *testing.T) {
	text := `reply [SCHEDULE_SYNC]{"action":"add"}`
	assert.Equal(t, text, Strip(text, MarkerSync))
}

func TestStrip_IdempotentAndCommutative(t *testing.T) {
	text := "intro\n" +
		"[SCHEDULE_DATA][][/SCHEDULE_DATA]\n" +
		"middle\n" +
		"[SCHEDULE_SYNC]{}[/SCHEDULE_SYNC]\n" +
		"outro"

	syncFirst := Strip(Strip(text, MarkerSync), MarkerData)
	dataFirst := Strip(Strip(text, MarkerData), MarkerSync)
	assert.Equal(t, syncFirst, dataFirst)
	assert.Equal(t, "intro\nmiddle\noutro", syncFirst)

	// Re-applying either strip changes nothing.
	assert.Equal(t, syncFirst, Strip(syncFirst, MarkerSync))
	assert.Equal(t, syncFirst, Strip(syncFirst, MarkerData))
}

func TestStripAll(t *testing.T) {
	text := "a [SCHEDULE_SYNC]{}[/SCHEDULE_SYNC] b [SCHEDULE_SYNC]{}[/SCHEDULE_SYNC] c [SCHEDULE_DATA][][/SCHEDULE_DATA]"
	assert.Equal(t, "a\nb\nc", StripAll(text))
}
