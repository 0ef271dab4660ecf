package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/eslsoft/lingoguru/internal/entity"
)

// The TTS model returns raw 16-bit little endian mono PCM at 24 kHz.
const (
	pcmSampleRate    = 24000
	pcmChannels      = 1
	pcmBitsPerSample = 16
)

// SynthesizeSpeech speaks text in German and returns a WAV file.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	sc := &speechConfig{}
	sc.VoiceConfig.PrebuiltVoiceConfig.VoiceName = c.voice
	req := &generateRequest{
		Contents: []content{textContent("", "Speak clearly in German: "+text)},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig:       sc,
		},
	}

	resp, err := c.generate(ctx, c.speechModel, req)
	if err != nil {
		return nil, err
	}
	data := resp.inline()
	if data == nil {
		return nil, fmt.Errorf("%w: no audio data returned", entity.ErrMalformedAIResponse)
	}
	pcm, err := base64.StdEncoding.DecodeString(data.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode audio: %w", entity.ErrMalformedAIResponse, err)
	}
	return wrapWAV(pcm, pcmSampleRate, pcmChannels, pcmBitsPerSample), nil
}

// wrapWAV prefixes PCM samples with a canonical 44 byte RIFF header.
func wrapWAV(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
