package ai

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbook/models"
)

func TestParseSlotJSON(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want models.SlotGuess
	}{
		{
			name: "plain object",
			text: `{"date":"2025-06-25","time":"08:00 - 09:00","duration":"one hour","title":"Meeting"}`,
			want: models.SlotGuess{Date: "2025-06-25", Time: "08:00 - 09:00", Duration: "one hour", Title: "Meeting"},
		},
		{
			name: "fenced with nulls",
			text: "```json\n{\"date\": null, \"time\": \"15:00\", \"duration\": null, \"title\": \"call\"}\n```",
			want: models.SlotGuess{Time: "15:00", Title: "call"},
		},
		{
			name: "chatter around object",
			text: "Sure! Here you go: {\"title\": \"Appointment\"} Hope that helps.",
			want: models.SlotGuess{Title: "Appointment"},
		},
		{
			name: "non-string values",
			text: `{"duration": 30, "title": "null"}`,
			want: models.SlotGuess{Duration: "30"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSlotJSON(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSlotJSON_NoObject(t *testing.T) {
	for _, text := range []string{"", "I cannot help with that.", "{not json}", "} {"} {
		t.Run(text, func(t *testing.T) {
			_, err := parseSlotJSON(text)
			assert.True(t, errors.Is(err, ErrNoSlots))
		})
	}
}

func TestBuildSlotPrompt(t *testing.T) {
	now := time.Date(2025, time.June, 24, 10, 0, 0, 0, time.UTC)
	prompt := buildSlotPrompt("tomorrow 8-9am meeting", now)

	assert.Contains(t, prompt, "Message: tomorrow 8-9am meeting")
	assert.Contains(t, prompt, "Today is 2025-06-24 (Tuesday)")
	assert.Contains(t, prompt, "single JSON object")
}

func TestNoopExtractor(t *testing.T) {
	guess, err := NoopExtractor{}.ExtractSlots(t.Context(), "anything")
	assert.True(t, errors.Is(err, ErrExtractorDisabled))
	assert.True(t, guess.IsEmpty())
}

func TestUnavailableExtractor(t *testing.T) {
	cause := fmt.Errorf("gemini: %w: GOOGLE_GEMINI_API_KEY not set", ErrExtractorDisabled)
	guess, err := UnavailableExtractor{Provider: "gemini", Cause: cause}.ExtractSlots(t.Context(), "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractorUnavailable))
	assert.False(t, errors.Is(err, ErrExtractorDisabled))
	assert.Contains(t, err.Error(), "GOOGLE_GEMINI_API_KEY")
	assert.True(t, guess.IsEmpty())
}

func wavHeader(t *testing.T, channels uint16, rate uint32, bits uint16, dataSize uint32) []byte {
	t.Helper()
	h := waveHeader{
		FileSize:      36 + dataSize,
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   channels,
		SampleRate:    rate,
		ByteRate:      rate * uint32(channels) * uint32(bits/8),
		BlockAlign:    channels * (bits / 8),
		BitsPerSample: bits,
		DataSize:      dataSize,
	}
	copy(h.RiffTag[:], "RIFF")
	copy(h.WaveTag[:], "WAVE")
	copy(h.FmtTag[:], "fmt ")
	copy(h.DataTag[:], "data")

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, h))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestParseWaveHeader(t *testing.T) {
	h, err := parseWaveHeader(wavHeader(t, 1, 16000, 16, 32000))
	require.NoError(t, err)
	assert.True(t, h.isRecognizerReady())
	assert.InDelta(t, 1.0, h.durationSeconds(), 0.001)

	h, err = parseWaveHeader(wavHeader(t, 2, 44100, 16, 0))
	require.NoError(t, err)
	assert.False(t, h.isRecognizerReady())

	_, err = parseWaveHeader([]byte("short"))
	assert.Error(t, err)

	bad := wavHeader(t, 1, 16000, 16, 0)
	copy(bad[0:4], "JUNK")
	_, err = parseWaveHeader(bad)
	assert.Error(t, err)
}

func TestNormalizeAudio_PassesThroughReadyAudio(t *testing.T) {
	wav := wavHeader(t, 1, 16000, 16, 3200)
	out, err := normalizeAudio(wav)
	require.NoError(t, err)
	assert.Equal(t, wav, out)
}

func TestNormalizeAudio_RejectsLongRecordings(t *testing.T) {
	// 61 seconds of 16kHz mono 16-bit audio.
	wav := wavHeader(t, 1, 16000, 16, 61*32000)
	_, err := normalizeAudio(wav)
	assert.Error(t, err)
}
