package ai

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

const (
	MaxDurationSeconds = 60              // 1 minute maximum
	MaxFileSize        = 5 * 1024 * 1024 // 5MB (conservative buffer)
	AllowedExtension   = ".wav"

	targetSampleRate = 16000
)

// Transcriber turns a recorded voice turn into text for the dialogue.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte, language string) (string, error)
}

// GoogleTranscriber uses Cloud Speech-to-Text.
type GoogleTranscriber struct {
	client *speech.Client
}

func NewGoogleTranscriber(ctx context.Context, credentialsFile string) (*GoogleTranscriber, error) {
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &GoogleTranscriber{client: client}, nil
}

func (g *GoogleTranscriber) Close() error {
	return g.client.Close()
}

// Transcribe normalizes the recording to 16kHz mono PCM when needed and
// returns the concatenated transcript.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, wav []byte, language string) (string, error) {
	audio, err := normalizeAudio(wav)
	if err != nil {
		return "", err
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   targetSampleRate,
			LanguageCode:      language,
			AudioChannelCount: 1, // Mono
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audio,
			},
		},
	}

	resp, err := g.client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}
	var header waveHeader
	if err := binary.Read(bytes.NewReader(data[:44]), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}
	return &header, nil
}

// isRecognizerReady reports whether the audio is already 16-bit PCM mono at 16kHz.
func (h *waveHeader) isRecognizerReady() bool {
	return h.AudioFormat == 1 && h.NumChannels == 1 && h.SampleRate == targetSampleRate && h.BitsPerSample == 16
}

func (h *waveHeader) durationSeconds() float64 {
	if h.ByteRate == 0 {
		return 0
	}
	return float64(h.DataSize) / float64(h.ByteRate)
}

func normalizeAudio(wav []byte) ([]byte, error) {
	header, err := parseWaveHeader(wav)
	if err != nil {
		return nil, err
	}
	if header.durationSeconds() > MaxDurationSeconds {
		return nil, fmt.Errorf("audio longer than %d seconds", MaxDurationSeconds)
	}
	if header.isRecognizerReady() {
		return wav, nil
	}

	in, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(in.Name())
	defer in.Close()
	if _, err := in.Write(wav); err != nil {
		return nil, fmt.Errorf("failed to save audio file: %w", err)
	}

	out, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create output temp file: %w", err)
	}
	defer os.Remove(out.Name())
	out.Close()

	if err := convertAudio(in.Name(), out.Name()); err != nil {
		return nil, err
	}
	return os.ReadFile(out.Name())
}

func convertAudio(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}
